// Package config loads editor settings from a TOML file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/BurntSushi/toml"

	"IshiGrid/internal/export"
)

// Config is the full editor configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Export ExportConfig `toml:"export"`
	Editor EditorConfig `toml:"editor"`
	Window WindowConfig `toml:"window"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig controls the headless WebSocket editor.
type ServerConfig struct {
	Listen    string `toml:"listen"`
	Advertise bool   `toml:"advertise"`
	Instance  string `toml:"instance"`
}

// ExportConfig controls file delivery.
type ExportConfig struct {
	Basename string  `toml:"basename"`
	Format   string  `toml:"format"`
	Scale    float64 `toml:"scale"`
}

// EditorConfig controls session behavior.
type EditorConfig struct {
	// HistoryLimit caps undo snapshots per session; zero keeps all of them.
	HistoryLimit int `toml:"history_limit"`
}

// WindowConfig controls the desktop canvas.
type WindowConfig struct {
	Width float32 `toml:"width"`
}

// LogConfig selects the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen:    ":8888",
			Advertise: true,
		},
		Export: ExportConfig{
			Basename: "ishi-unit",
			Format:   "svg",
			Scale:    export.DefaultScale,
		},
		Window: WindowConfig{Width: 480},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: unknown keys in %s: %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and references.
func (c Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is empty")
	}
	if c.Export.Basename == "" {
		return fmt.Errorf("export.basename is empty")
	}
	if _, err := export.New(c.Export.Format); err != nil {
		return fmt.Errorf("export.format: %w", err)
	}
	if c.Export.Scale <= 0 {
		return fmt.Errorf("export.scale must be positive, got %v", c.Export.Scale)
	}
	if c.Editor.HistoryLimit < 0 {
		return fmt.Errorf("editor.history_limit must not be negative, got %d", c.Editor.HistoryLimit)
	}
	if c.Window.Width <= 0 {
		return fmt.Errorf("window.width must be positive, got %v", c.Window.Width)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// ExportOptions returns the exporter options implied by the configuration.
func (c Config) ExportOptions() []export.Option {
	return []export.Option{export.WithScale(c.Export.Scale)}
}
