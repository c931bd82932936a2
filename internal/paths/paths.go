// Package paths resolves configuration and data directory locations for
// the taxport CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".taxport"
	DefaultDataDirName   = ".taxport-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "TAXPORT_CONFIG_DIR"
	EnvDataDir   = "TAXPORT_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/taxport (fallback ~/.config/taxport)
// macOS:   ~/Library/Application Support/taxport
// Windows: %APPDATA%/taxport
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "taxport"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "taxport"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "taxport"), nil
	}
}

// ResolveConfigDir returns the configuration directory with precedence:
// flag value > environment > CWD-local default.
func ResolveConfigDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(EnvConfigDir); v != "" {
		return v
	}
	return DefaultConfigDirName
}

// ResolveDataDir returns the data directory with precedence:
// flag value > config file value > environment > CWD-local default.
func ResolveDataDir(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		return v
	}
	return DefaultDataDirName
}
