package notify

import (
	"context"
	"fmt"
	"strings"
)

// DefaultMacOSSound is used when sound is enabled without a name
const DefaultMacOSSound = "Glass"

// osascriptSender implements Sender for macOS using osascript.
// It cannot show actions, so Wait is ignored.
type osascriptSender struct {
	runner Runner
}

func init() {
	register(KindOsascript, func(d Deps) Sender { return &osascriptSender{runner: d.Runner} })
}

func (s *osascriptSender) Kind() Kind { return KindOsascript }

func (s *osascriptSender) Send(ctx context.Context, req Request) (Result, error) {
	_, err := runTool(ctx, s.runner, KindOsascript, "osascript", "-e", appleScript(req))
	return Result{}, err
}

// appleScript builds the display notification statement. Every interpolated
// value is escaped, and the script goes to osascript as a single argument.
func appleScript(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, `display notification "%s" with title "%s"`,
		escapeAppleScript(req.Message), escapeAppleScript(req.Title))
	if req.Subtitle != "" {
		fmt.Fprintf(&b, ` subtitle "%s"`, escapeAppleScript(req.Subtitle))
	}
	if req.Sound.Enabled {
		fmt.Fprintf(&b, ` sound name "%s"`, escapeAppleScript(macSoundName(req.Sound)))
	}
	return b.String()
}

func macSoundName(s Sound) string {
	if s.Name == "" {
		return DefaultMacOSSound
	}
	return s.Name
}
