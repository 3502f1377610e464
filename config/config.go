// Package config loads the infoscreen configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Display DisplayConfig `yaml:"display"`
	Hass    HassConfig    `yaml:"hass"`

	// WANInterface is sampled for up/download speeds when no home
	// automation API is configured.
	WANInterface string `yaml:"wan_interface"`

	// Screens is the playlist, rendered in order, repeatedly.
	Screens []ScreenConfig `yaml:"screens"`
}

type DisplayConfig struct {
	// Driver selects the display controller; unrecognized names fall
	// back to the default driver.
	Driver string `yaml:"driver"`

	// Bus is the I²C bus number; -1 selects the first available bus.
	Bus int `yaml:"bus"`

	// Rotate the canvas by this many degrees before each frame flip.
	Rotate int `yaml:"rotate"`

	Screenshot    bool   `yaml:"screenshot"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

type HassConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type ScreenConfig struct {
	Name string `yaml:"name"`

	// Duration is how long the frame stays visible, in seconds.
	Duration float64 `yaml:"duration"`
}

// Hold is the screen duration as a time.Duration.
func (s ScreenConfig) Hold() time.Duration {
	return time.Duration(s.Duration * float64(time.Second))
}

func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Driver: "ssd1306",
			Bus:    1,
		},
		WANInterface: "eth0",
		Screens: []ScreenConfig{
			{Name: "status", Duration: 10},
		},
	}
}

// DefaultPath returns the standard configuration file location.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "infoscreen", "config.yaml"), nil
}

// Load reads the configuration at path merged over the defaults. A
// missing file yields the defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if len(cfg.Screens) == 0 {
		cfg.Screens = Default().Screens
	}
	return cfg, nil
}
