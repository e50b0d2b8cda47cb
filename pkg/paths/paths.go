package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "dotpatina"

	// ConfigFileName is the user configuration file name
	ConfigFileName = "config.toml"

	// EnvConfigFile overrides the user configuration file location
	EnvConfigFile = "DOTPATINA_CONFIG"

	// EnvHome is the fallback home directory variable
	EnvHome = "HOME"
)

// Resolve resolves p against base. Absolute paths are returned unchanged.
func Resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}

	expanded := os.ExpandEnv(ExpandHome(p))
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(base, expanded)
	}
	joined := filepath.Clean(expanded)

	if canonical, err := filepath.EvalSymlinks(joined); err == nil {
		return canonical
	}
	return joined
}

// Abs makes p absolute against the working directory after home and
// environment expansion. It is used for paths given on the command line.
func Abs(p string) (string, error) {
	if p == "" {
		return p, nil
	}
	return filepath.Abs(os.ExpandEnv(ExpandHome(p)))
}

// ExpandHome expands a leading ~ or ~/ to the user's home directory.
// Other forms such as ~user are returned as-is.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// ConfigFile returns the user configuration file location, honoring
// DOTPATINA_CONFIG.
func ConfigFile() string {
	if f := os.Getenv(EnvConfigFile); f != "" {
		return ExpandHome(f)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// TrashDir returns the FreeDesktop trash can of the current user.
func TrashDir() string {
	return filepath.Join(xdg.DataHome, "Trash")
}

// IsWithin reports whether path lies inside dir.
func IsWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
