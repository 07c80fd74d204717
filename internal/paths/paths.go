// Package paths resolves the configuration directory and expands the
// user-relative paths that appear in config.yaml.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// AppName names the per-user configuration directory.
const AppName = "eegsubmit"

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "EEGSUBMIT_CONFIG_DIR"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/eegsubmit (fallback ~/.config/eegsubmit)
// macOS:   ~/Library/Application Support/eegsubmit
// Windows: %APPDATA%/eegsubmit
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > EEGSUBMIT_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(ExpandHome(flag))
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(ExpandHome(env))
	}
	return DefaultConfigDir()
}

// ExpandHome replaces a leading ~ with the user's home directory. Paths
// without one, and paths where the home directory is unknown, are returned
// unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
