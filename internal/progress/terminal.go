// Package progress shows a stderr spinner while claude-notify blocks on a
// clicked notification action. Stdout stays untouched because the caller may
// read the action id from it.
package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether the writer is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// DetectTerminalCapabilities inspects w, which must be an *os.File to count
// as a terminal, and the NO_COLOR and TERM environment variables.
func DetectTerminalCapabilities(w io.Writer, getenv func(string) string) TerminalCapabilities {
	if getenv == nil {
		getenv = os.Getenv
	}

	isTTY := false
	width := 0
	if f, ok := w.(*os.File); ok {
		fd := int(f.Fd())
		isTTY = term.IsTerminal(fd)
		if isTTY {
			if cols, _, err := term.GetSize(fd); err == nil {
				width = cols
			}
		}
	}

	noColor := getenv("NO_COLOR") != ""
	dumb := getenv("TERM") == "dumb"

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor && !dumb,
		SupportsUnicode: isTTY && !dumb,
		Width:           width,
	}
}

// SpinnerSet returns the index into spinner.CharSets for caps.
func SpinnerSet(caps TerminalCapabilities) int {
	if caps.SupportsUnicode {
		return 14 // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
	}
	return 9 // | / - \
}
