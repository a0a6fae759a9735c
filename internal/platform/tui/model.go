package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Approximate pixel size of a terminal cell, used to turn mouse drags
// into swipe distances.
const (
	pixelsPerColumn = 8
	pixelsPerRow    = 16
)

// Model is the Bubble Tea model for one 2048 game.
type Model struct {
	game   *t2048.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	keys   GameKeyMap
	help   help.Model
	logger *log.Logger
	player string

	dragging   bool
	dragX      int
	dragY      int
	embedded   bool // Back returns to a menu instead of quitting
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current game has been recorded
}

// NewModel creates a new Bubble Tea model with a freshly dealt game.
// store and logger may be nil.
func NewModel(opts t2048.Options, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	gameCfg := cfg
	gameCfg.ScreenH = max(cfg.ScreenH-1, 0) // Last line is the help bar

	m := Model{
		game:   t2048.New(opts, gameCfg),
		screen: core.NewScreen(gameCfg.ScreenW, gameCfg.ScreenH),
		store:  store,
		config: cfg,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		logger: logger,
	}
	m.help.Width = cfg.ScreenW
	m.loadBestScore()
	return m
}

// WithPlayer sets the name recorded with finished games.
func (m Model) WithPlayer(name string) Model {
	m.player = name
	return m
}

// Embedded makes Back return to the surrounding menu.
func (m Model) Embedded() Model {
	m.embedded = true
	return m
}

// Init initializes the model. The game is event driven, so there is no tick loop.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finishGame("quit")
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// The milestone popup is modal
	if m.game.Popup() != 0 {
		switch {
		case key.Matches(msg, m.keys.Continue):
			m.apply(core.ActionContinue)
		case key.Matches(msg, m.keys.NewGame), key.Matches(msg, m.keys.Restart):
			m.apply(core.ActionRestart)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.embedded {
			m.finishGame("menu")
			m.backToMenu = true
		}
	case key.Matches(msg, m.keys.Undo):
		m.apply(core.ActionUndo)
	case key.Matches(msg, m.keys.Restart), key.Matches(msg, m.keys.NewGame):
		m.apply(core.ActionRestart)
	case key.Matches(msg, m.keys.Move):
		if dir, ok := m.game.DirectionForKey(msg.String()); ok {
			m.apply(t2048.ActionFor(dir))
		}
	}
	return m, nil
}

// handleMouse turns a left-button drag into a swipe.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.dragX, m.dragY = msg.X, msg.Y
		}
	case tea.MouseActionRelease:
		if !m.dragging {
			return m, nil
		}
		m.dragging = false
		dx := float64((msg.X - m.dragX) * pixelsPerColumn)
		dy := float64((msg.Y - m.dragY) * pixelsPerRow)
		if dir, ok := m.game.DirectionForSwipe(dx, dy); ok {
			m.apply(t2048.ActionFor(dir))
		}
	}
	return m, nil
}

// handleResize processes window resize events. The board is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := max(msg.Height-1, 0)
	m.screen.Resize(msg.Width, h)
	m.game.Resize(msg.Width, h)
	m.help.Width = msg.Width
	return m, nil
}

// apply runs an action against the game and records finished games.
func (m *Model) apply(a core.Action) {
	if a == core.ActionRestart {
		m.finishGame("restart")
		m.game.Restart()
		m.scoreSaved = false
		return
	}

	res := m.game.Apply(a)
	if a.IsMove() && !res.Moved {
		m.logger.Debug("move had no effect", "action", a)
	}
	if res.Milestone != 0 {
		m.logger.Info("milestone reached", "player", m.player, "tile", res.Milestone, "score", m.game.Score())
	}
	if res.Moved && res.GameOver {
		m.finishGame("game over")
	}
}

// finishGame records the current game once. Games without any score are skipped.
func (m *Model) finishGame(reason string) {
	if m.scoreSaved || m.game.Score() == 0 {
		return
	}
	m.scoreSaved = true

	st := m.game.State()
	m.logger.Info("game finished",
		"player", m.player,
		"reason", reason,
		"score", st.Score,
		"max_tile", st.MaxTile,
		"moves", st.Moves,
	)
	if m.store == nil {
		return
	}
	_, err := m.store.SaveScore(storage.Result{
		Size:    st.Size,
		Score:   st.Score,
		MaxTile: st.MaxTile,
		Moves:   st.Moves,
		Player:  m.player,
	})
	if err != nil {
		m.logger.Error("could not save score", "error", err)
		return
	}
	m.loadBestScore()
}

// loadBestScore refreshes the HUD's best score from storage.
func (m *Model) loadBestScore() {
	if m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.game.Options().Size)
	if err != nil {
		m.logger.Warn("could not load high score", "error", err)
		return
	}
	m.game.SetBestScore(best)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".t2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return err
	}
	m.logger.Info("screenshot saved", "path", path)
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Game returns the underlying game.
func (m Model) Game() *t2048.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone game program.
func Run(opts t2048.Options, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(opts, store, cfg, logger).WithPlayer(os.Getenv("USER"))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse drags become swipes
	)

	_, err := p.Run()
	return err
}
