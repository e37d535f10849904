package notify

import (
	"os"
	"path/filepath"
	"strings"

	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
)

// Flags carries values given explicitly on the command line.
// Empty strings mean the flag was not given.
type Flags struct {
	Title      string
	Message    string
	Subtitle   string
	Urgency    Urgency
	Category   string
	Action     string
	Attachment string
	Sound      SoundSetting
	Wait       bool
}

// LayerInput is everything BuildRequest layers together.
type LayerInput struct {
	Type Type
	// Test selects the --test content in place of the type's preset text
	Test     bool
	Flags    Flags
	Override TypeOverride
	// Icon is the effective icon after env > --icon > config merging
	Icon string
	Home string
}

// BuildRequest resolves the final request fields.
//
// Precedence per field, highest first: explicit flag, per-type config override,
// built-in preset. Title and message that are still empty after layering are a
// MissingRequiredField error. Sound has its own chain ending in an urgency-based
// default (on for normal and critical, off for low).
func BuildRequest(in LayerInput) (Request, error) {
	preset, hasPreset := PresetFor(in.Type)
	override := in.Override
	if in.Test {
		test := TestPreset()
		preset.Title, preset.Message = test.Title, test.Message
		if !hasPreset {
			preset = test
		}
		override.Title, override.Message = "", ""
	}

	req := Request{
		Type:       in.Type,
		Subtitle:   in.Flags.Subtitle,
		Attachment: ExpandHome(in.Flags.Attachment, in.Home),
		Wait:       in.Flags.Wait,
	}

	req.Title = firstNonEmpty(in.Flags.Title, override.Title, preset.Title)
	if req.Title == "" {
		return Request{}, clierrors.MissingTitleOrMessage("title")
	}
	req.Message = firstNonEmpty(in.Flags.Message, override.Message, preset.Message)
	if req.Message == "" {
		return Request{}, clierrors.MissingTitleOrMessage("message")
	}

	req.Urgency = resolveUrgency(in.Flags.Urgency, override.Urgency, preset.Urgency)
	req.Icon = ExpandHome(firstNonEmpty(in.Icon, preset.Icon), in.Home)
	req.Category = firstNonEmpty(in.Flags.Category, preset.Category)
	req.Action = firstNonEmpty(in.Flags.Action, preset.Action)
	req.Sound = resolveSound(preset, req.Urgency, in.Flags.Sound, override.Sound)

	return req, nil
}

// Muted returns a copy of r with sound forced off.
func (r Request) Muted() Request {
	r.Sound = Sound{}
	return r
}

func resolveUrgency(flag Urgency, override string, preset Urgency) Urgency {
	if ValidUrgency(string(flag)) {
		return flag
	}
	if ValidUrgency(override) {
		return Urgency(override)
	}
	if ValidUrgency(string(preset)) {
		return preset
	}
	return UrgencyNormal
}

// resolveSound walks the sound layers: the first layer that says anything wins.
// A winning layer that enables sound without naming one inherits the preset's name.
func resolveSound(preset Preset, urgency Urgency, layers ...SoundSetting) Sound {
	presetHasSound := preset.Sound.Enabled || preset.Sound.Name != ""

	var s Sound
	decided := false
	for _, l := range layers {
		if l.Set {
			s = Sound{Enabled: l.Enabled, Name: l.Name}
			decided = true
			break
		}
	}
	if !decided && presetHasSound {
		s = preset.Sound
		decided = true
	}
	if !decided {
		s = Sound{Enabled: urgency != UrgencyLow}
	}

	if !s.Enabled {
		return Sound{}
	}
	if s.Name == "" {
		s.Name = preset.Sound.Name
	}
	return s
}

// ExpandHome expands a leading ~ to home.
func ExpandHome(path, home string) string {
	if home == "" || path == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}
	return path
}

// iconFile reports whether icon names an existing regular file.
// Anything else is passed to backends as a raw icon name.
func iconFile(icon string) bool {
	if icon == "" {
		return false
	}
	info, err := os.Stat(icon)
	return err == nil && info.Mode().IsRegular()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
