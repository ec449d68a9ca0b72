package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/dialogview/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	File       string

	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands.
	// The --file override is already applied.
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dialogview", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/dialogview/dialogview.log
// On Linux: $XDG_STATE_HOME/dialogview/dialogview.log (defaults to ~/.local/state/dialogview/dialogview.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "dialogview", "dialogview.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "dialogview", "dialogview.log")
	}

	return filepath.Join(home, ".local", "state", "dialogview", "dialogview.log")
}
