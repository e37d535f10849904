// Package notify_test tests preset and override layering into a Request.
// Related: internal/notify/request.go, internal/notify/preset.go
// Tags: notify, layering, presets, sound

package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
)

func TestBuildRequestPresets(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		typ          Type
		wantMessage  string
		wantUrgency  Urgency
		wantIcon     string
		wantCategory string
		wantAction   string
		wantSound    Sound
	}{
		"input": {
			typ:          TypeInput,
			wantMessage:  "Claude needs your input",
			wantUrgency:  UrgencyCritical,
			wantIcon:     "dialog-question",
			wantCategory: "im.received",
			wantAction:   "focus=Focus Terminal",
			wantSound:    Sound{Enabled: true, Name: "Glass"},
		},
		"complete": {
			typ:          TypeComplete,
			wantMessage:  "Task completed",
			wantUrgency:  UrgencyNormal,
			wantIcon:     "dialog-information",
			wantCategory: "transfer.complete",
			wantSound:    Sound{Enabled: true, Name: "Hero"},
		},
		"error": {
			typ:          TypeError,
			wantMessage:  "Claude encountered an error",
			wantUrgency:  UrgencyCritical,
			wantIcon:     "dialog-error",
			wantCategory: "transfer.error",
			wantSound:    Sound{Enabled: true, Name: "Basso"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req, err := BuildRequest(LayerInput{Type: tt.typ})
			require.NoError(t, err)

			assert.Equal(t, DefaultTitle, req.Title)
			assert.Equal(t, tt.wantMessage, req.Message)
			assert.Equal(t, tt.wantUrgency, req.Urgency)
			assert.Equal(t, tt.wantIcon, req.Icon)
			assert.Equal(t, tt.wantCategory, req.Category)
			assert.Equal(t, tt.wantAction, req.Action)
			assert.Equal(t, tt.wantSound, req.Sound)
		})
	}
}

func TestBuildRequestPrecedence(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in          LayerInput
		wantTitle   string
		wantMessage string
		wantUrgency Urgency
	}{
		"override beats preset": {
			in: LayerInput{
				Type:     TypeComplete,
				Override: TypeOverride{Message: "Done!", Urgency: "low"},
			},
			wantTitle:   DefaultTitle,
			wantMessage: "Done!",
			wantUrgency: UrgencyLow,
		},
		"flag beats override": {
			in: LayerInput{
				Type:     TypeComplete,
				Flags:    Flags{Title: "Build", Message: "Green", Urgency: UrgencyCritical},
				Override: TypeOverride{Title: "Cfg", Message: "Done!", Urgency: "low"},
			},
			wantTitle:   "Build",
			wantMessage: "Green",
			wantUrgency: UrgencyCritical,
		},
		"invalid override urgency is ignored": {
			in: LayerInput{
				Type:     TypeComplete,
				Override: TypeOverride{Urgency: "urgent"},
			},
			wantTitle:   DefaultTitle,
			wantMessage: "Task completed",
			wantUrgency: UrgencyNormal,
		},
		"free-form notification": {
			in:          LayerInput{Flags: Flags{Title: "T", Message: "M"}},
			wantTitle:   "T",
			wantMessage: "M",
			wantUrgency: UrgencyNormal,
		},
		"test mode replaces preset text": {
			in: LayerInput{
				Type:     TypeError,
				Test:     true,
				Override: TypeOverride{Message: "configured"},
			},
			wantTitle:   DefaultTitle,
			wantMessage: "Test notification from claude-notify",
			wantUrgency: UrgencyCritical,
		},
		"test mode without type": {
			in:          LayerInput{Test: true},
			wantTitle:   DefaultTitle,
			wantMessage: "Test notification from claude-notify",
			wantUrgency: UrgencyNormal,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req, err := BuildRequest(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, req.Title)
			assert.Equal(t, tt.wantMessage, req.Message)
			assert.Equal(t, tt.wantUrgency, req.Urgency)
		})
	}
}

func TestBuildRequestMissingFields(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in        LayerInput
		wantField string
	}{
		"nothing given":    {in: LayerInput{}, wantField: "title"},
		"title only":       {in: LayerInput{Flags: Flags{Title: "T"}}, wantField: "message"},
		"message only":     {in: LayerInput{Flags: Flags{Message: "M"}}, wantField: "title"},
		"whitespace title": {in: LayerInput{Flags: Flags{Title: "  ", Message: "M"}}, wantField: "title"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := BuildRequest(tt.in)
			require.Error(t, err)
			assert.True(t, clierrors.IsKind(err, clierrors.KindMissingRequiredField))
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestBuildRequestSound(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in   LayerInput
		want Sound
	}{
		"--no-sound beats everything": {
			in: LayerInput{
				Type:     TypeInput,
				Flags:    Flags{Sound: SoundSetting{Set: true}},
				Override: TypeOverride{Sound: SoundSetting{Set: true, Enabled: true, Name: "Ping"}},
			},
			want: Sound{},
		},
		"--sound=NAME beats config": {
			in: LayerInput{
				Type:     TypeInput,
				Flags:    Flags{Sound: SoundSetting{Set: true, Enabled: true, Name: "Submarine"}},
				Override: TypeOverride{Sound: SoundSetting{Set: true}},
			},
			want: Sound{Enabled: true, Name: "Submarine"},
		},
		"bare --sound keeps preset name": {
			in: LayerInput{
				Type:  TypeComplete,
				Flags: Flags{Sound: SoundSetting{Set: true, Enabled: true}},
			},
			want: Sound{Enabled: true, Name: "Hero"},
		},
		"config false mutes preset": {
			in: LayerInput{
				Type:     TypeComplete,
				Override: TypeOverride{Sound: SoundSetting{Set: true}},
			},
			want: Sound{},
		},
		"config name replaces preset name": {
			in: LayerInput{
				Type:     TypeError,
				Override: TypeOverride{Sound: SoundSetting{Set: true, Enabled: true, Name: "Funk"}},
			},
			want: Sound{Enabled: true, Name: "Funk"},
		},
		"free-form low urgency is silent": {
			in:   LayerInput{Flags: Flags{Title: "T", Message: "M", Urgency: UrgencyLow}},
			want: Sound{},
		},
		"free-form normal urgency plays default": {
			in:   LayerInput{Flags: Flags{Title: "T", Message: "M"}},
			want: Sound{Enabled: true},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req, err := BuildRequest(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Sound)
		})
	}
}

func TestBuildRequestIcon(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	iconPath := filepath.Join(home, "icons", "claude.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(iconPath), 0o755))
	require.NoError(t, os.WriteFile(iconPath, []byte("png"), 0o644))

	req, err := BuildRequest(LayerInput{Type: TypeInput, Icon: "~/icons/claude.png", Home: home})
	require.NoError(t, err)
	assert.Equal(t, iconPath, req.Icon)
	assert.True(t, iconFile(req.Icon))

	req, err = BuildRequest(LayerInput{Type: TypeInput, Home: home})
	require.NoError(t, err)
	assert.Equal(t, "dialog-question", req.Icon)
	assert.False(t, iconFile(req.Icon), "theme icon names are not files")
}

func TestExpandHome(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		path string
		home string
		want string
	}{
		"tilde alone": {path: "~", home: "/home/u", want: "/home/u"},
		"tilde slash": {path: "~/a/b.png", home: "/home/u", want: filepath.Join("/home/u", "a/b.png")},
		"absolute":    {path: "/tmp/x.png", home: "/home/u", want: "/tmp/x.png"},
		"tilde user":  {path: "~bob/x", home: "/home/u", want: "~bob/x"},
		"no home":     {path: "~/x", home: "", want: "~/x"},
		"empty":       {path: "", home: "/home/u", want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExpandHome(tt.path, tt.home))
		})
	}
}

func TestRequestMuted(t *testing.T) {
	t.Parallel()
	req := Request{Title: "T", Sound: Sound{Enabled: true, Name: "Glass"}}
	muted := req.Muted()
	assert.Equal(t, Sound{}, muted.Sound)
	assert.Equal(t, Sound{Enabled: true, Name: "Glass"}, req.Sound, "original is unchanged")
}
