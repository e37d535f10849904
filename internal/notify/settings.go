package notify

import (
	"strconv"
	"strings"
)

// BackendSettings is the "backends" section of the config file.
// Environment overrides are already merged in by the config layer.
type BackendSettings struct {
	Ntfy             NtfySettings             `koanf:"ntfy" yaml:"ntfy,omitempty"`
	Pushover         PushoverSettings         `koanf:"pushover" yaml:"pushover,omitempty"`
	NotifySend       NotifySendSettings       `koanf:"notify-send" yaml:"notify-send,omitempty"`
	TerminalNotifier TerminalNotifierSettings `koanf:"terminal-notifier" yaml:"terminal-notifier,omitempty"`
	Toast            ToastSettings            `koanf:"toast" yaml:"toast,omitempty"`
}

// redactedValue replaces a configured credential in printed output
const redactedValue = "***"

// Redacted returns a copy safe to print: every configured credential is masked.
func (b BackendSettings) Redacted() BackendSettings {
	b.Ntfy.Token = redact(b.Ntfy.Token)
	b.Pushover.User = redact(b.Pushover.User)
	b.Pushover.Token = redact(b.Pushover.Token)
	return b
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return redactedValue
}

// NtfySettings configures the ntfy push backend.
type NtfySettings struct {
	Server  string   `koanf:"server" yaml:"server,omitempty"`
	Topic   string   `koanf:"topic" yaml:"topic,omitempty"`
	Tags    []string `koanf:"tags" yaml:"tags,omitempty"`
	Click   string   `koanf:"click" yaml:"click,omitempty"`
	Actions string   `koanf:"actions" yaml:"actions,omitempty"`
	Token   string   `koanf:"token" yaml:"token,omitempty"`
	// Priority overrides the urgency mapping with an ntfy priority name or 1-5
	Priority string `koanf:"priority" yaml:"priority,omitempty" validate:"omitempty,ntfy_priority"`
	// Timeout is the request timeout in seconds
	Timeout int `koanf:"timeout" yaml:"timeout,omitempty" validate:"omitempty,min=1,max=300"`
}

// PushoverSettings configures the Pushover push backend.
type PushoverSettings struct {
	User  string `koanf:"user" yaml:"user,omitempty"`
	Token string `koanf:"token" yaml:"token,omitempty"`
	// Priority overrides the urgency mapping; Pushover accepts -2..2
	Priority *int   `koanf:"priority" yaml:"priority,omitempty" validate:"omitempty,pushover_priority"`
	Device   string `koanf:"device" yaml:"device,omitempty"`
	Timeout  int    `koanf:"timeout" yaml:"timeout,omitempty" validate:"omitempty,min=1,max=300"`
	// Endpoint replaces the public API URL (self-hosted relays, tests)
	Endpoint string `koanf:"endpoint" yaml:"endpoint,omitempty"`
}

// NotifySendSettings configures the Linux desktop backend.
type NotifySendSettings struct {
	AppName string `koanf:"app_name" yaml:"app_name,omitempty"`
	// TimeoutMS is the expiry passed to the notification daemon; 0 uses the daemon default
	TimeoutMS int `koanf:"timeout_ms" yaml:"timeout_ms,omitempty" validate:"omitempty,min=0,max=2147483647"`
}

// TerminalNotifierSettings configures the macOS terminal-notifier backend.
type TerminalNotifierSettings struct {
	Group  string `koanf:"group" yaml:"group,omitempty"`
	Sender string `koanf:"sender" yaml:"sender,omitempty"`
}

// ToastSettings configures the Windows toast backend.
type ToastSettings struct {
	AppID string `koanf:"app_id" yaml:"app_id,omitempty"`
}

// SecretStore looks up credentials that are not in env or config files.
// Implementations return "" and a nil error when the secret does not exist.
type SecretStore interface {
	Secret(account string) (string, error)
}

// Keyring account names for push backend credentials.
const (
	SecretNtfyToken     = "ntfy-token"
	SecretPushoverUser  = "pushover-user"
	SecretPushoverToken = "pushover-token"
)

var ntfyPriorities = map[string]bool{
	"min": true, "low": true, "default": true, "high": true, "max": true, "urgent": true,
	"1": true, "2": true, "3": true, "4": true, "5": true,
}

// ValidNtfyPriority checks s against ntfy's named and numeric priorities.
func ValidNtfyPriority(s string) bool {
	return ntfyPriorities[strings.ToLower(strings.TrimSpace(s))]
}

// ValidPushoverPriority checks p against Pushover's -2..2 range.
func ValidPushoverPriority(p int) bool {
	return p >= -2 && p <= 2
}

// splitList flattens comma-separated entries and drops blanks.
func splitList(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func formatPriority(p int) string {
	return strconv.Itoa(p)
}
