package store

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDir returns the OS-appropriate default data directory for bujo.
//
//   - macOS:   ~/Library/Application Support/bujo
//   - Linux:   $XDG_DATA_HOME/bujo (fallback ~/.local/share/bujo)
//   - Windows: %LOCALAPPDATA%\bujo (fallback %APPDATA%\bujo)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "bujo")
	case "windows":
		for _, env := range []string{"LOCALAPPDATA", "APPDATA"} {
			if dir := os.Getenv(env); dir != "" {
				return filepath.Join(dir, "bujo")
			}
		}
		return filepath.Join(home, "bujo")
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, "bujo")
		}
		return filepath.Join(home, ".local", "share", "bujo")
	}
}
