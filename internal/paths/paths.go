// Package paths resolves where the backoffice keeps its configuration and
// writes its exports.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "backoffice"

// ExportDirName is the subdirectory of the data directory that receives
// exports when nothing else is configured.
const ExportDirName = "exports"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "BACKOFFICE_CONFIG_DIR"
	EnvExportDir = "BACKOFFICE_EXPORT_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir returns $<env>/backoffice on Linux, falling back to
// ~/<fallback...>/backoffice. Other platforms use os.UserConfigDir.
func xdgDir(env string, fallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, fallback...), AppName)...), nil
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/backoffice (fallback ~/.config/backoffice)
// macOS:   ~/Library/Application Support/backoffice
// Windows: %APPDATA%/backoffice
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/backoffice (fallback ~/.local/share/backoffice)
// macOS and Windows: same as the config directory.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > BACKOFFICE_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveExportDir returns the export directory following the precedence
// chain: flag > config export_dir > BACKOFFICE_EXPORT_DIR env >
// DefaultDataDir()/exports.
func ResolveExportDir(flag, configValue string) (string, error) {
	for _, dir := range []string{flag, configValue, os.Getenv(EnvExportDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	data, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, ExportDirName), nil
}
