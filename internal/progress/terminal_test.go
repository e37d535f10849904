// Package progress_test tests terminal capability detection with environment variable overrides.
// Related: internal/progress/terminal.go
// Tags: progress, terminal, capabilities, env-vars, unicode
package progress_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/claude-notify/internal/progress"
)

func env(vals map[string]string) func(string) string {
	return func(key string) string { return vals[key] }
}

func TestDetectTerminalCapabilities(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		getenv func(string) string
	}{
		"plain":    {getenv: env(nil)},
		"NO_COLOR": {getenv: env(map[string]string{"NO_COLOR": "1"})},
		"dumb":     {getenv: env(map[string]string{"TERM": "dumb"})},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			// A buffer is never a terminal, so nothing is supported.
			caps := progress.DetectTerminalCapabilities(&bytes.Buffer{}, tt.getenv)
			assert.Equal(t, progress.TerminalCapabilities{}, caps)
		})
	}
}

func TestDetectTerminalCapabilities_RegularFile(t *testing.T) {
	t.Parallel()
	f, err := os.Create(filepath.Join(t.TempDir(), "stderr"))
	require.NoError(t, err)
	defer f.Close()

	caps := progress.DetectTerminalCapabilities(f, env(nil))
	assert.False(t, caps.IsTTY)
	assert.Zero(t, caps.Width)
}

func TestSpinnerSet(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 14, progress.SpinnerSet(progress.TerminalCapabilities{IsTTY: true, SupportsUnicode: true}))
	assert.Equal(t, 9, progress.SpinnerSet(progress.TerminalCapabilities{IsTTY: true}))
}
