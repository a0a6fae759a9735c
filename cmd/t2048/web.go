package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/web"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP/WebSocket server",
	Long: `Start an HTTP server for browser clients.

Endpoints:
  GET /api/health   - Liveness check
  GET /api/scores   - Top scores (?limit=, ?size=)
  GET /ws           - WebSocket; one game per connection

WebSocket commands are JSON objects with a "type" field:
  {"type":"key","key":"ArrowUp"}
  {"type":"move","direction":"left"}
  {"type":"swipe","dx":-42,"dy":3}
  {"type":"undo"} {"type":"reset"} {"type":"continue"}

"move" takes engine direction names: "up" gathers tiles at the bottom
and "down" at the top. "key" and "swipe" follow what the player sees.

Examples:
  t2048 web
  t2048 web --addr :9000`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "HTTP listen address (overrides config)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, "t2048-web", false)
	if err != nil {
		return err
	}
	defer closeLog()

	webCfg := web.Config{
		Address:        cfg.Web.Address,
		AllowedOrigins: cfg.Web.AllowedOrigins,
		Game:           gameOptions(cfg),
	}
	if flagWebAddr != "" {
		webCfg.Address = flagWebAddr
	}

	store, err := openServerStore(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Printf("Starting t2048 web server on %s\n", webCfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return web.NewServer(webCfg, store, logger).ListenAndServe(ctx)
}

// openServerStore opens score storage for a server. Unlike local play, a
// server without its leaderboard refuses to start.
func openServerStore(path string) (*storage.Store, error) {
	store, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening scores database: %w", err)
	}
	return store, nil
}
