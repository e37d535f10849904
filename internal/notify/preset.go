package notify

// DefaultTitle is the title every preset uses.
const DefaultTitle = "Claude Code"

// Preset holds the built-in defaults for one notification type.
// Presets are the lowest-precedence source in request layering.
type Preset struct {
	Title    string
	Message  string
	Urgency  Urgency
	Icon     string
	Category string
	Action   string
	Sound    Sound
}

var presets = map[Type]Preset{
	TypeInput: {
		Title:    DefaultTitle,
		Message:  "Claude needs your input",
		Urgency:  UrgencyCritical,
		Icon:     "dialog-question",
		Category: "im.received",
		Action:   "focus=Focus Terminal",
		Sound:    Sound{Enabled: true, Name: "Glass"},
	},
	TypeComplete: {
		Title:    DefaultTitle,
		Message:  "Task completed",
		Urgency:  UrgencyNormal,
		Icon:     "dialog-information",
		Category: "transfer.complete",
		Sound:    Sound{Enabled: true, Name: "Hero"},
	},
	TypeError: {
		Title:    DefaultTitle,
		Message:  "Claude encountered an error",
		Urgency:  UrgencyCritical,
		Icon:     "dialog-error",
		Category: "transfer.error",
		Sound:    Sound{Enabled: true, Name: "Basso"},
	},
}

// PresetFor returns the preset for t. TypeNone has no preset.
func PresetFor(t Type) (Preset, bool) {
	p, ok := presets[t]
	return p, ok
}

// TestPreset is the content of the --test notification.
func TestPreset() Preset {
	return Preset{
		Title:   DefaultTitle,
		Message: "Test notification from claude-notify",
		Urgency: UrgencyNormal,
		Icon:    "dialog-information",
	}
}
