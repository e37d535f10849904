package notify

import (
	"fmt"
	"strings"

	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
)

// Type represents the kind of agent event being announced
type Type string

const (
	// TypeNone is a free-form notification built only from flags and config
	TypeNone Type = ""
	// TypeInput means the agent is waiting for user input
	TypeInput Type = "input"
	// TypeComplete means the agent finished its task
	TypeComplete Type = "complete"
	// TypeError means the agent hit an error
	TypeError Type = "error"
)

// Types lists the notification types accepted by --type.
var Types = []Type{TypeInput, TypeComplete, TypeError}

// ParseType converts a --type value into a Type.
// The empty string and "none" both mean no type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TypeNone, nil
	case "input":
		return TypeInput, nil
	case "complete":
		return TypeComplete, nil
	case "error":
		return TypeError, nil
	default:
		return TypeNone, clierrors.InvalidFlagValue("type", s, []string{"input", "complete", "error"})
	}
}

// ConfigKey returns the key under "notifications" that configures this type.
func (t Type) ConfigKey() string {
	switch t {
	case TypeInput:
		return "input_needed"
	case TypeComplete:
		return "task_complete"
	default:
		return string(t)
	}
}

// Urgency is the tri-level priority every backend maps to its own vocabulary
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// Urgencies lists valid urgency values in ascending order.
var Urgencies = []Urgency{UrgencyLow, UrgencyNormal, UrgencyCritical}

// ValidUrgency checks if the given string is a valid urgency
func ValidUrgency(s string) bool {
	for _, u := range Urgencies {
		if Urgency(s) == u {
			return true
		}
	}
	return false
}

// ParseUrgency validates an --urgency value. Empty means unset.
func ParseUrgency(s string) (Urgency, error) {
	if s == "" {
		return "", nil
	}
	if !ValidUrgency(s) {
		allowed := make([]string, len(Urgencies))
		for i, u := range Urgencies {
			allowed[i] = string(u)
		}
		return "", clierrors.InvalidFlagValue("urgency", s, allowed)
	}
	return Urgency(s), nil
}

// Sound is the resolved sound decision for a request
type Sound struct {
	Enabled bool
	// Name is a backend-specific sound name; empty means the backend default
	Name string
}

// SoundSetting is an optional sound value from a flag or config layer.
// Set is false when the layer says nothing about sound.
type SoundSetting struct {
	Set     bool
	Enabled bool
	Name    string
}

// ParseSoundSetting interprets a config or flag value: a boolean, or a sound name.
// The strings "true"/"on"/"yes"/"default" enable the default sound and
// "false"/"off"/"no"/"none" disable sound.
func ParseSoundSetting(v interface{}) (SoundSetting, error) {
	switch t := v.(type) {
	case nil:
		return SoundSetting{}, nil
	case SoundSetting:
		return t, nil
	case bool:
		return SoundSetting{Set: true, Enabled: t}, nil
	case string:
		s := strings.TrimSpace(t)
		switch strings.ToLower(s) {
		case "":
			return SoundSetting{}, nil
		case "true", "on", "yes", "default":
			return SoundSetting{Set: true, Enabled: true}, nil
		case "false", "off", "no", "none":
			return SoundSetting{Set: true, Enabled: false}, nil
		default:
			return SoundSetting{Set: true, Enabled: true, Name: s}, nil
		}
	default:
		return SoundSetting{}, fmt.Errorf("sound must be a boolean or a sound name, got %T", v)
	}
}

// IsZero lets yaml omit unset sound settings.
func (s SoundSetting) IsZero() bool {
	return !s.Set
}

// MarshalYAML renders the setting the way it is written in config files.
func (s SoundSetting) MarshalYAML() (interface{}, error) {
	if s.Enabled && s.Name != "" {
		return s.Name, nil
	}
	return s.Enabled, nil
}

// TypeOverride is the per-type section under "notifications" in config files
type TypeOverride struct {
	Enabled *bool        `koanf:"enabled" yaml:"enabled,omitempty"`
	Title   string       `koanf:"title" yaml:"title,omitempty"`
	Message string       `koanf:"message" yaml:"message,omitempty"`
	Urgency string       `koanf:"urgency" yaml:"urgency,omitempty" validate:"omitempty,oneof=low normal critical"`
	Sound   SoundSetting `koanf:"sound" yaml:"sound,omitempty"`
}

// Disabled reports whether the type is explicitly switched off.
// A missing "enabled" key means enabled.
func (o TypeOverride) Disabled() bool {
	return o.Enabled != nil && !*o.Enabled
}

// Request is a fully resolved notification, ready for dispatch.
// It is built once per invocation by BuildRequest and never modified by adapters.
type Request struct {
	Type     Type
	Title    string
	Message  string
	Subtitle string
	Urgency  Urgency
	// Icon is the raw icon value after ~ expansion (a path or a theme icon name)
	Icon       string
	Category   string
	Action     string
	Sound      Sound
	Attachment string
	// Wait asks the backend to block until the user clicks an action
	Wait bool
}

// ActionID returns the identifier part of an "id=label" action.
// An action without "=" uses the same text for id and label.
func (r Request) ActionID() string {
	id, _ := splitAction(r.Action)
	return id
}

// ActionLabel returns the button label part of an "id=label" action.
func (r Request) ActionLabel() string {
	_, label := splitAction(r.Action)
	return label
}

func splitAction(action string) (id, label string) {
	action = strings.TrimSpace(action)
	if action == "" {
		return "", ""
	}
	if i := strings.Index(action, "="); i >= 0 {
		id, label = strings.TrimSpace(action[:i]), strings.TrimSpace(action[i+1:])
		if id == "" {
			id = label
		}
		if label == "" {
			label = id
		}
		return id, label
	}
	return action, action
}

// Result is what a backend reports back after a successful send
type Result struct {
	// ActionID is the identifier of the action the user clicked, if any
	ActionID string
}
