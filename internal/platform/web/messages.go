package web

import (
	"time"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Command types accepted from clients.
const (
	CommandKey      = "key"
	CommandMove     = "move"
	CommandSwipe    = "swipe"
	CommandUndo     = "undo"
	CommandReset    = "reset"
	CommandContinue = "continue"
)

// Message types sent to clients.
const (
	MessageState = "state"
	MessageError = "error"
)

// Command is a client request. Only the fields relevant to Type are read.
type Command struct {
	Type      string  `json:"type"`
	Key       string  `json:"key,omitempty"`       // key: browser or terminal key name
	Direction string  `json:"direction,omitempty"` // move: board direction name
	DX        float64 `json:"dx,omitempty"`        // swipe: end minus start, pixels
	DY        float64 `json:"dy,omitempty"`
}

// StateMessage answers every accepted command with the full game state.
type StateMessage struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	Moved   bool   `json:"moved"`
	t2048.State
}

// ErrorMessage reports a rejected command. The connection stays open.
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// ScoreResponse is one row of GET /api/scores.
type ScoreResponse struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	MaxTile   int       `json:"max_tile"`
	Moves     int       `json:"moves"`
	Player    string    `json:"player,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newScoreResponses(entries []storage.ScoreEntry) []ScoreResponse {
	out := make([]ScoreResponse, 0, len(entries))
	for i, e := range entries {
		out = append(out, ScoreResponse{
			Rank:      i + 1,
			Score:     e.Score,
			MaxTile:   e.MaxTile,
			Moves:     e.Moves,
			Player:    e.Player,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}
