// Package testutil provides test utilities and helpers for claude-notify tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Home is an isolated home directory with a working directory inside it.
type Home struct {
	// Dir is the home directory
	Dir string
	// Project is a nested project directory below Dir
	Project string
	// GlobalConfig is where the global config file lives for this home
	GlobalConfig string
}

// NewHome creates an isolated home with a project directory at home/work/repo.
// Symlinks in the temp dir (macOS /var -> /private/var) are resolved so path
// comparisons in tests are stable.
func NewHome(t *testing.T) *Home {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	project := filepath.Join(dir, "work", "repo")
	if err := os.MkdirAll(project, 0o755); err != nil {
		t.Fatalf("failed to create project directory: %v", err)
	}

	return &Home{
		Dir:          dir,
		Project:      project,
		GlobalConfig: filepath.Join(dir, ".config", "claude-notify", "config.json"),
	}
}

// WriteGlobal writes the global config file.
func (h *Home) WriteGlobal(t *testing.T, content string) string {
	t.Helper()
	WriteFile(t, h.GlobalConfig, content)
	return h.GlobalConfig
}

// WriteProject writes .claude-notify.json into dir, relative to the home.
func (h *Home) WriteProject(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(h.Dir, dir, ".claude-notify.json")
	WriteFile(t, path, content)
	return path
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// notifyEnvVars lists every environment variable claude-notify reads.
var notifyEnvVars = []string{
	"CLAUDE_NOTIFY_BACKEND",
	"CLAUDE_NOTIFY_ICON",
	"CLAUDE_NOTIFY_DEBUG",
	"CLAUDE_NOTIFY_NTFY_SERVER",
	"CLAUDE_NOTIFY_NTFY_TOPIC",
	"CLAUDE_NOTIFY_NTFY_TAGS",
	"CLAUDE_NOTIFY_NTFY_CLICK",
	"CLAUDE_NOTIFY_NTFY_ACTIONS",
	"CLAUDE_NOTIFY_NTFY_TOKEN",
	"CLAUDE_NOTIFY_PUSHOVER_USER",
	"CLAUDE_NOTIFY_PUSHOVER_TOKEN",
	"XDG_CONFIG_HOME",
}

// ClearNotifyEnv blanks every claude-notify environment variable for the
// duration of the test, so a developer's own settings cannot leak in.
// Empty values are treated as unset. Tests calling this cannot be parallel.
func ClearNotifyEnv(t *testing.T) {
	t.Helper()
	for _, key := range notifyEnvVars {
		t.Setenv(key, "")
	}
}
