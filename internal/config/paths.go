package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the directory name under the user config dir
	AppName = "claude-notify"
	// GlobalFileName is the global config file name
	GlobalFileName = "config.json"
	// ProjectFileName is searched for from the working directory up to home
	ProjectFileName = ".claude-notify.json"
)

// UserConfigPath returns the global config path:
// $XDG_CONFIG_HOME/claude-notify/config.json, or ~/.config/claude-notify/config.json.
// A relative XDG_CONFIG_HOME is ignored, as the XDG base directory spec requires.
func UserConfigPath(getenv func(string) string, home string) string {
	if getenv != nil {
		if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" && filepath.IsAbs(xdg) {
			return filepath.Join(xdg, AppName, GlobalFileName)
		}
	}
	return filepath.Join(home, ".config", AppName, GlobalFileName)
}

// FindProjectConfig walks from cwd up to home looking for ProjectFileName.
// The search never leaves the home subtree: when cwd is outside home it finds
// nothing. Symlinks in both paths are resolved before the containment check.
func FindProjectConfig(cwd, home string) (string, bool) {
	if cwd == "" || home == "" {
		return "", false
	}
	cwd, home = resolvePath(cwd), resolvePath(home)
	if !within(cwd, home) {
		return "", false
	}

	dir := cwd
	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
		if dir == home {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// within reports whether path is root or below it.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func resolvePath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	return filepath.Clean(p)
}
