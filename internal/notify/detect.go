package notify

import (
	"strings"

	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
)

// Platform is what backend auto-detection looks at.
type Platform struct {
	GOOS     string
	LookPath func(file string) (string, error)
	Getenv   func(key string) string
}

// Select resolves a backend name into a concrete Kind.
// "auto" (or an empty name) runs platform detection; every other name must be
// registered. Detection may return KindNone when nothing is usable.
func Select(name string, p Platform) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || Kind(name) == KindAuto {
		return Detect(p), nil
	}
	if !ValidBackend(name) {
		return "", clierrors.UnknownBackend(name, Names())
	}
	return Kind(name), nil
}

// Detect picks the native backend for the platform.
func Detect(p Platform) Kind {
	switch p.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		if p.has("notify-send") || p.getenv("DBUS_SESSION_BUS_ADDRESS") != "" {
			return KindNotifySend
		}
		return KindNone
	case "darwin":
		if p.has("terminal-notifier") {
			return KindTerminalNotifier
		}
		return KindOsascript
	case "windows":
		return KindToast
	default:
		return KindNone
	}
}

func (p Platform) has(tool string) bool {
	if p.LookPath == nil {
		return false
	}
	_, err := p.LookPath(tool)
	return err == nil
}

func (p Platform) getenv(key string) string {
	if p.Getenv == nil {
		return ""
	}
	return p.Getenv(key)
}
