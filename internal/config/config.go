// Package config loads the YAML settings shared by the flicker demo programs.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level demo configuration.
type Config struct {
	Window Window `yaml:"window"`
	Sheet  Sheet  `yaml:"sheet"`
	// LogLevel is one of debug, info, warn, error or off.
	LogLevel string `yaml:"log_level"`
	// Debug turns on renderer frame stats and tree-shape warnings.
	Debug bool `yaml:"debug"`
}

// Window describes the demo window and renderer.
type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Antialias bool   `yaml:"antialias"`
	// ShowStats overlays FPS and frame stats where the host supports it.
	ShowStats bool `yaml:"show_stats"`
}

// Sheet describes the animated sprite sheet shown by the demos.
type Sheet struct {
	Path   string `yaml:"path"`
	Frames int    `yaml:"frames"`
	// FrameDuration is in milliseconds.
	FrameDuration float64 `yaml:"frame_duration"`
	Antialias     bool    `yaml:"antialias"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Window: Window{
			Title:     "flicker",
			Width:     800,
			Height:    600,
			Antialias: true,
		},
		Sheet: Sheet{
			Frames:        4,
			FrameDuration: 100,
		},
		LogLevel: "info",
	}
}

// Parse decodes YAML over the defaults and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w (%s)", err, path)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Sheet.Frames < 1:
		return fmt.Errorf("config: sheet frames %d must be at least 1", c.Sheet.Frames)
	case c.Sheet.FrameDuration < 0:
		return fmt.Errorf("config: sheet frame_duration %g must not be negative", c.Sheet.FrameDuration)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts LogLevel. "off" maps to LevelOff.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "off":
		return LevelOff, nil
	default:
		return 0, fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
}

// LevelOff is above every level slog emits.
const LevelOff = slog.Level(100)

// Logger builds a text logger on stderr at the configured level, or nil when
// logging is off.
func (c Config) Logger() *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil || level == LevelOff {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
