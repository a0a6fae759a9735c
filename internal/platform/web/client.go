package web

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/board"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// client is one websocket connection and the game it plays. The game is
// only touched from readPump.
type client struct {
	id     string
	server *Server
	conn   *websocket.Conn
	game   *t2048.Game
	logger *log.Logger

	send chan []byte
	done chan struct{} // closed when writePump exits

	scoreSaved bool
}

func newClient(s *Server, conn *websocket.Conn) *client {
	id := uuid.NewString()
	// No screen: the browser draws the board itself.
	game := t2048.New(s.config.Game, core.RuntimeConfig{Seed: time.Now().UnixNano()})

	return &client{
		id:     id,
		server: s,
		conn:   conn,
		game:   game,
		logger: s.logger.With("session", id),
		send:   make(chan []byte, 16),
		done:   make(chan struct{}),
	}
}

// readPump reads commands, applies them to the game and queues the replies.
func (c *client) readPump() {
	c.logger.Info("session started", "remote", c.conn.RemoteAddr().String())
	defer func() {
		c.finishGame("disconnect")
		close(c.send)
		c.logger.Info("session ended", "moves", c.game.Moves(), "score", c.game.Score())
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	if !c.queue(c.stateMessage(false)) {
		return
	}

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket error", "error", err)
			}
			return
		}

		var reply any
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			reply = ErrorMessage{Type: MessageError, Error: "malformed command"}
		} else {
			reply = c.handle(cmd)
		}
		if !c.queue(reply) {
			return
		}
	}
}

// writePump writes queued replies and keeps the connection alive with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// queue hands a reply to writePump. It reports false once the writer is gone.
func (c *client) queue(v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("could not encode reply", "error", err)
		return false
	}
	select {
	case c.send <- data:
		return true
	case <-c.done:
		return false
	}
}

// handle applies one command and returns the reply.
func (c *client) handle(cmd Command) any {
	switch cmd.Type {
	case CommandKey:
		dir, ok := c.game.DirectionForKey(cmd.Key)
		if !ok {
			return errorf("unknown key %q", cmd.Key)
		}
		return c.move(dir)

	case CommandMove:
		dir, ok := board.ParseDirection(cmd.Direction)
		if !ok {
			return errorf("unknown direction %q", cmd.Direction)
		}
		return c.move(dir)

	case CommandSwipe:
		dir, ok := c.game.DirectionForSwipe(cmd.DX, cmd.DY)
		if !ok {
			// Too short to count; report the unchanged board.
			return c.stateMessage(false)
		}
		return c.move(dir)

	case CommandUndo:
		return c.stateMessage(c.game.Undo())

	case CommandReset:
		c.finishGame("reset")
		c.game.Restart()
		c.scoreSaved = false
		return c.stateMessage(false)

	case CommandContinue:
		c.game.Continue()
		return c.stateMessage(false)
	}
	return errorf("unknown command type %q", cmd.Type)
}

func (c *client) move(dir board.Direction) StateMessage {
	res := c.game.Apply(t2048.ActionFor(dir))
	if res.Milestone != 0 {
		c.logger.Info("milestone reached", "tile", res.Milestone, "score", c.game.Score())
	}
	if res.Moved && res.GameOver {
		c.finishGame("game over")
	}
	return c.stateMessage(res.Moved)
}

func (c *client) stateMessage(moved bool) StateMessage {
	return StateMessage{
		Type:    MessageState,
		Session: c.id,
		Moved:   moved,
		State:   c.game.State(),
	}
}

// finishGame records the current game once. Games without any score are skipped.
func (c *client) finishGame(reason string) {
	if c.scoreSaved || c.game.Score() == 0 {
		return
	}
	c.scoreSaved = true

	st := c.game.State()
	c.logger.Info("game finished",
		"reason", reason,
		"score", st.Score,
		"max_tile", st.MaxTile,
		"moves", st.Moves,
	)
	if c.server.store == nil {
		return
	}
	_, err := c.server.store.SaveScore(storage.Result{
		Size:    st.Size,
		Score:   st.Score,
		MaxTile: st.MaxTile,
		Moves:   st.Moves,
		Player:  "web:" + c.id[:8],
	})
	if err != nil {
		c.logger.Error("could not save score", "error", err)
	}
}

func errorf(format string, args ...any) ErrorMessage {
	return ErrorMessage{Type: MessageError, Error: fmt.Sprintf(format, args...)}
}
