package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun reports whether the binary runs from `go run` or `go test`.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// DefaultStateDir is where the session is kept: $XDG_STATE_HOME/avyna, or
// ~/.local/state/avyna.
func DefaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "avyna")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "avyna")
	}
	return filepath.Join(home, ".local", "state", "avyna")
}

// ResolveStateDir returns the directory actually used for state. With
// forceTemp the session is re-rooted under the system temp directory so dev
// runs never touch the real one; paths already inside it are kept.
func ResolveStateDir(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return DefaultStateDir()
		}
		return userPath
	}

	clean := filepath.Clean(userPath)
	if rel, err := filepath.Rel(os.TempDir(), clean); err == nil && userPath != "" && !strings.HasPrefix(rel, "..") {
		return clean
	}

	sub := "default"
	if userPath != "" {
		if base := filepath.Base(clean); base != "." && base != string(os.PathSeparator) {
			sub = base
		}
	}
	return filepath.Join(os.TempDir(), "avyna-dev", sub)
}
