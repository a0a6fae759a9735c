package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a single game of 2048.

Controls:
  Arrows/WASD/hjkl  - Slide tiles
  Mouse drag        - Swipe
  U/Backspace       - Undo the last move
  R                 - Restart
  C/Enter           - Continue after a milestone
  N                 - New game from a milestone popup
  Ctrl+S            - Save a screenshot
  ?                 - Toggle full help
  Q/Ctrl+C          - Quit

Examples:
  t2048 play
  t2048 play --size 6
  t2048 play --seed 42 --log-file t2048.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, "t2048", true)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(cfg.Storage.DBPath, logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(gameOptions(cfg), store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens score storage. The game still works without it.
func openStore(path string, logger *log.Logger) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "path", path, "error", err)
		return nil
	}
	return store
}
