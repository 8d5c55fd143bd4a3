// SPDX-License-Identifier: EPL-2.0

// Package config holds the drmr configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/drmr/audio"
	"github.com/ik5/drmr/kit"
)

var (
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	ErrInvalidBlockSize  = errors.New("invalid block size")
	ErrInvalidBaseNote   = errors.New("base note outside 0-127")
	ErrInvalidLogLevel   = errors.New("invalid log level")
)

// Config is the main configuration structure.
type Config struct {
	SampleRate int      `json:"sampleRate,omitempty"`
	BlockSize  int      `json:"blockSize,omitempty"`
	KitDirs    []string `json:"kitDirs,omitempty"`
	// Kit is the kit loaded at startup: a directory or a catalog name.
	Kit      string `json:"kit,omitempty"`
	BaseNote int    `json:"baseNote"`
	// Resampler is a converter quality name, see audio.NewConverter.
	Resampler string `json:"resampler,omitempty"`
	StatePath string `json:"statePath,omitempty"`
	// MIDIIn is the MIDI input port name used by play.
	MIDIIn   string `json:"midiIn,omitempty"`
	LogLevel string `json:"logLevel,omitempty"`
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		SampleRate: 48000,
		BlockSize:  256,
		KitDirs:    kit.DefaultDirs(),
		BaseNote:   36,
		Resampler:  audio.QualitySoxrHigh,
		LogLevel:   "info",
	}
}

// Dir returns the config directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "drmr"), nil
}

// Path returns the full path to config.json.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks the values a file or flag may have set.
func (c *Config) Validate() error {
	if c.SampleRate < 8000 || c.SampleRate > 384000 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, c.SampleRate)
	}
	if c.BlockSize <= 0 || c.BlockSize > 8192 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, c.BlockSize)
	}
	if c.BaseNote < 0 || c.BaseNote > 127 {
		return fmt.Errorf("%w: %d", ErrInvalidBaseNote, c.BaseNote)
	}
	if _, err := audio.NewConverter(c.Resampler); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel; empty means info.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return l, nil
}
