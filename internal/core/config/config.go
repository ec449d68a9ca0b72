// Package config handles configuration loading and validation for dialogview.
package config

import (
	"fmt"
	"net"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/dialogview/internal/core/dialog"
	"github.com/colonyops/dialogview/internal/core/styles"
)

// Defaults match the layout the transcript generator writes: transcripts
// and stickers live in sibling directories of the viewer.
const (
	DefaultDialogsDir  = "../Dialogs_with_meme"
	DefaultDialogsFile = "role_based_18_turns_Diversity-awareSelection.json"
	DefaultAssetsDir   = "../Meme Warehouse/EmojoPackage_processed/"
	DefaultServerAddr  = "127.0.0.1:8080"
	DefaultFilePattern = "**/*.json"
)

// Config holds the application configuration.
type Config struct {
	Dialogs DialogsConfig `yaml:"dialogs"`
	Assets  AssetsConfig  `yaml:"assets"`
	Server  ServerConfig  `yaml:"server"`
	Fetch   FetchConfig   `yaml:"fetch"`
	TUI     TUIConfig     `yaml:"tui"`
}

// DialogsConfig selects the transcript file to display.
type DialogsConfig struct {
	Dir     string `yaml:"dir"`     // local directory or http(s) base URL
	File    string `yaml:"file"`    // transcript file name under Dir
	Pattern string `yaml:"pattern"` // glob used by `files` and the picker
}

// AssetsConfig locates sticker images.
type AssetsConfig struct {
	Dir string `yaml:"dir"` // prefix joined with escaped sticker names
}

// ServerConfig configures the browser viewer.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// FetchConfig bounds the transcript load.
type FetchConfig struct {
	Timeout time.Duration `yaml:"timeout"` // zero means no deadline
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Dialogs: DialogsConfig{
			Dir:     DefaultDialogsDir,
			File:    DefaultDialogsFile,
			Pattern: DefaultFilePattern,
		},
		Assets: AssetsConfig{
			Dir: DefaultAssetsDir,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Dialogs.File == "" {
		c.Dialogs.File = defaults.Dialogs.File
	}
	if c.Dialogs.Pattern == "" {
		c.Dialogs.Pattern = defaults.Dialogs.Pattern
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Dialogs.File == "" {
		return fmt.Errorf("dialogs.file cannot be empty")
	}

	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout cannot be negative")
	}

	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return fmt.Errorf("server.addr %q: %w", c.Server.Addr, err)
	}

	if !slices.Contains(styles.ThemeNames(), c.TUI.Theme) {
		return fmt.Errorf("tui.theme %q is not one of %v", c.TUI.Theme, styles.ThemeNames())
	}

	return nil
}

// WithFile returns a copy of the config that loads file instead of the
// configured transcript.
func (c *Config) WithFile(file string) *Config {
	cp := *c
	if file != "" {
		cp.Dialogs.File = file
	}
	return &cp
}

// Source returns the transcript source described by the config.
func (c *Config) Source() *dialog.Source {
	src := dialog.NewSource(c.Dialogs.Dir, c.Dialogs.File)
	src.Timeout = c.Fetch.Timeout
	return src
}
