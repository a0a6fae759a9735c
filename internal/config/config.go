// Package config provides YAML-based configuration loading for t2048.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid config")

// Config is the complete t2048 configuration.
type Config struct {
	Board      BoardConfig    `yaml:"board"`
	Controls   ControlsConfig `yaml:"controls"`
	Milestones []int          `yaml:"milestones"`
	Storage    StorageConfig  `yaml:"storage"`
	Server     ServerConfig   `yaml:"server"`
	Web        WebConfig      `yaml:"web"`
	Log        LogConfig      `yaml:"log"`
}

// BoardConfig defines the board engine parameters.
type BoardConfig struct {
	Size              int  `yaml:"size"`
	UndoRestoresScore bool `yaml:"undo_restores_score"`
}

// ControlsConfig defines how keys and swipes map to moves.
type ControlsConfig struct {
	InvertVertical bool    `yaml:"invert_vertical"`
	SwipeThreshold float64 `yaml:"swipe_threshold"` // Pixels
}

// StorageConfig defines where finished-game scores are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxTimeout  time.Duration `yaml:"max_timeout"`
}

// WebConfig defines the HTTP/WebSocket server.
type WebConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Validate checks that the configuration describes a playable game.
func (c Config) Validate() error {
	if c.Board.Size < 2 {
		return fmt.Errorf("%w: board.size must be at least 2, got %d", ErrInvalid, c.Board.Size)
	}
	if c.Controls.SwipeThreshold <= 0 {
		return fmt.Errorf("%w: controls.swipe_threshold must be positive, got %g", ErrInvalid, c.Controls.SwipeThreshold)
	}
	prev := 0
	for _, m := range c.Milestones {
		if m < 2 || m&(m-1) != 0 {
			return fmt.Errorf("%w: milestone %d is not a power of two", ErrInvalid, m)
		}
		if m <= prev {
			return fmt.Errorf("%w: milestones must be ascending, %d follows %d", ErrInvalid, m, prev)
		}
		prev = m
	}
	if c.Server.IdleTimeout < 0 || c.Server.MaxTimeout < 0 {
		return fmt.Errorf("%w: server timeouts must not be negative", ErrInvalid)
	}
	return nil
}
