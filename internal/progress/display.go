package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Display draws the wait indicator
type Display struct {
	capabilities TerminalCapabilities
	w            io.Writer
	spinner      *spinner.Spinner
}

// NewDisplay creates a display writing to w with the given terminal capabilities
func NewDisplay(w io.Writer, caps TerminalCapabilities) *Display {
	return &Display{capabilities: caps, w: w}
}

// StartWait starts the spinner with msg as its suffix.
// Nothing is drawn when w is not a terminal: hook runners capture stderr.
func (d *Display) StartWait(msg string) {
	if !d.capabilities.IsTTY || d.spinner != nil {
		return
	}

	opt := spinner.WithWriter(d.w)
	if f, ok := d.w.(*os.File); ok {
		opt = spinner.WithWriterFile(f)
	}
	d.spinner = spinner.New(spinner.CharSets[SpinnerSet(d.capabilities)], 100*time.Millisecond, opt)
	d.spinner.Suffix = " " + fit(msg, d.capabilities.Width-3)
	if !d.capabilities.SupportsColor {
		d.spinner.Color("reset")
	}
	d.spinner.Start()
}

// Active reports whether a spinner is running
func (d *Display) Active() bool {
	return d.spinner != nil
}

// Stop removes the spinner. Safe to call when none is running.
func (d *Display) Stop() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

// fit truncates msg to width runes; width <= 0 means unknown.
func fit(msg string, width int) string {
	r := []rune(msg)
	if width <= 0 || len(r) <= width {
		return msg
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
