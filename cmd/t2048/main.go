// t2048 is the 2048 sliding-tile puzzle for the terminal, SSH and the browser.
//
// Usage:
//
//	t2048 play              - Play a single game
//	t2048 menu              - Start the menu (play, high scores)
//	t2048 scores            - Show high scores for the board size
//	t2048 serve             - Start the SSH server
//	t2048 web               - Start the HTTP/WebSocket server
//	t2048 config            - Print the default configuration
//
// Global flags:
//
//	--config <path>    - Config file (default search: ~/.t2048/config.yaml, ./configs/t2048.yaml)
//	--seed <value>     - Set RNG seed for reproducible games
//	--db <path>        - Set database path (default: ~/.t2048/scores.db)
//	--size <n>         - Board size
//	--log-level <lvl>  - debug, info, warn, error
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagSize     int
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle.

Slide the tiles with the arrow keys, WASD or a mouse drag. Equal tiles
merge when they collide; reach 2048 and keep going.

Available commands:
  play     - Play a single game
  menu     - Menu with new game and high scores
  scores   - View high scores
  serve    - Start SSH server for remote play
  web      - Start HTTP/WebSocket server for browser play
  config   - Print the default configuration

Examples:
  t2048 play
  t2048 play --size 5 --seed 42
  t2048 menu
  t2048 serve --ssh :2222
  t2048 web --addr :8080
  t2048 scores --limit 20`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagSize, "size", 0, "Board size (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagSize != 0 {
		cfg.Board.Size = flagSize
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	return cfg, cfg.Validate()
}

// gameOptions converts the config into options for every new game.
func gameOptions(cfg config.Config) t2048.Options {
	return t2048.Options{
		Size:              cfg.Board.Size,
		Milestones:        cfg.Milestones,
		InvertVertical:    cfg.Controls.InvertVertical,
		SwipeThreshold:    cfg.Controls.SwipeThreshold,
		UndoRestoresScore: cfg.Board.UndoRestoresScore,
	}
}

// newLogger builds the logger for a command. Interactive commands own the
// terminal, so without a log file they log nowhere. The returned closer
// releases the log file.
func newLogger(cfg config.Config, prefix string, interactive bool) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	var w io.Writer = os.Stderr
	closer := func() error { return nil }
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = f.Close
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
