// Package logging builds the zerolog logger used for warnings and debug output.
//
// claude-notify runs inside Claude Code hooks, so stdout is reserved for data the
// caller may read (clicked action ids, --show-config). All log lines go to stderr
// through a compact console writer without timestamps.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// DebugEnvVar enables debug logging when set to a truthy value.
const DebugEnvVar = "CLAUDE_NOTIFY_DEBUG"

// New returns a console logger writing to w.
// Level is warn by default and debug when debug is true.
func New(w io.Writer, debug bool) zerolog.Logger {
	zerolog.ErrorFieldName = "err"

	cw := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      !isTerminal(w),
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(cw).Level(level)
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// DebugFromEnv reports whether CLAUDE_NOTIFY_DEBUG asks for debug output.
func DebugFromEnv(getenv func(string) string) bool {
	switch strings.ToLower(strings.TrimSpace(getenv(DebugEnvVar))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
