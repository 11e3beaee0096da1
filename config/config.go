// Package config persists driver settings for the fptest tool as JSON
// under the user config dir.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fergy-nz/faderport"
)

// AnimationConfig holds the frame timings, in milliseconds.
type AnimationConfig struct {
	CountdownMs int `json:"countdownMs,omitempty"`
	SnakeMs     int `json:"snakeMs,omitempty"`
	ChaseMs     int `json:"chaseMs,omitempty"`
	BlinkMs     int `json:"blinkMs,omitempty"`
	ChaseLights int `json:"chaseLights,omitempty"`
	ChaseTicks  int `json:"chaseTicks,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	// Port is the substring used to find the device's MIDI ports.
	Port      string          `json:"port,omitempty"`
	Debug     bool            `json:"debug,omitempty"`
	Animation AnimationConfig `json:"animation,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port: "faderport",
		Animation: AnimationConfig{
			CountdownMs: 500,
			SnakeMs:     30,
			ChaseMs:     80,
			BlinkMs:     200,
			ChaseLights: 2,
			ChaseTicks:  20,
		},
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "faderport"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Options converts the animation settings to driver options. Zero
// values are skipped so the driver defaults apply.
func (c *Config) Options() []faderport.Option {
	var opts []faderport.Option
	a := c.Animation
	if a.CountdownMs > 0 {
		opts = append(opts, faderport.WithCountdownInterval(time.Duration(a.CountdownMs)*time.Millisecond))
	}
	if a.SnakeMs > 0 {
		opts = append(opts, faderport.WithSnakeStep(time.Duration(a.SnakeMs)*time.Millisecond))
	}
	if a.ChaseMs > 0 {
		opts = append(opts, faderport.WithChaseStep(time.Duration(a.ChaseMs)*time.Millisecond))
	}
	if a.BlinkMs > 0 {
		opts = append(opts, faderport.WithBlinkInterval(time.Duration(a.BlinkMs)*time.Millisecond))
	}
	if a.ChaseLights > 0 && a.ChaseTicks > 0 {
		opts = append(opts, faderport.WithChaseShape(a.ChaseLights, a.ChaseTicks))
	}
	return opts
}
