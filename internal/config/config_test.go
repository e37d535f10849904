// Package config_test tests configuration loading, merging hierarchy, and environment variable overrides.
// Related: internal/config/config.go
// Tags: config, loading, merging, env-vars, json, precedence
package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/claude-notify/internal/notify"
	"github.com/ariel-frischer/claude-notify/internal/testutil"
)

// resolve runs Resolve for an isolated home with cwd at the project dir.
// NO t.Parallel() in callers: the env layer reads the process environment.
func resolve(t *testing.T, h *testutil.Home, overrides Overrides) (*Resolved, string) {
	t.Helper()
	var logs bytes.Buffer
	res, err := Resolve(ResolveOptions{
		Cwd:        h.Project,
		Home:       h.Dir,
		GlobalPath: h.GlobalConfig,
		Overrides:  overrides,
		Logger:     zerolog.New(&logs),
	})
	require.NoError(t, err)
	return res, logs.String()
}

func TestResolve_NoConfigFiles(t *testing.T) {
	testutil.ClearNotifyEnv(t)
	h := testutil.NewHome(t)

	res, logs := resolve(t, h, Overrides{})
	assert.Equal(t, Config{}, res.Config)
	assert.Empty(t, res.Warnings)
	assert.NotContains(t, logs, `"level":"warn"`)
	require.Len(t, res.Sources, 1)
	assert.Equal(t, Source{Scope: ScopeGlobal, Path: h.GlobalConfig, Status: StatusMissing}, res.Sources[0])
}

func TestResolve_ProjectDeepMergesGlobal(t *testing.T) {
	testutil.ClearNotifyEnv(t)
	h := testutil.NewHome(t)
	h.WriteGlobal(t, `{
		"backend": "ntfy",
		"icon": "~/global.png",
		"notifications": {
			"task_complete": {"message": "Global done", "urgency": "low", "sound": "Ping"},
			"error": {"enabled": false}
		},
		"backends": {"ntfy": {"topic": "global-topic", "tags": ["robot"], "server": "https://ntfy.example.com"}}
	}`)
	projectPath := h.WriteProject(t, "work", `{
		"notifications": {"task_complete": {"urgency": "critical"}},
		"backends": {"ntfy": {"topic": "project-topic"}}
	}`)

	res, _ := resolve(t, h, Overrides{})
	cfg := res.Config

	assert.Equal(t, "ntfy", cfg.Backend)
	assert.Equal(t, "~/global.png", cfg.Icon)

	complete := cfg.Override(notify.TypeComplete)
	assert.Equal(t, "Global done", complete.Message, "global key survives")
	assert.Equal(t, "critical", complete.Urgency, "project scalar wins")
	assert.Equal(t, notify.SoundSetting{Set: true, Enabled: true, Name: "Ping"}, complete.Sound)
	assert.True(t, cfg.Override(notify.TypeError).Disabled())
	assert.False(t, cfg.Override(notify.TypeInput).Disabled())

	assert.Equal(t, "project-topic", cfg.Backends.Ntfy.Topic)
	assert.Equal(t, "https://ntfy.example.com", cfg.Backends.Ntfy.Server)
	assert.Equal(t, []string{"robot"}, cfg.Backends.Ntfy.Tags)

	require.Len(t, res.Sources, 2)
	assert.Equal(t, Source{Scope: ScopeProject, Path: projectPath, Status: StatusLoaded}, res.Sources[1])
}

func TestResolve_Precedence(t *testing.T) {
	testutil.ClearNotifyEnv(t)
	h := testutil.NewHome(t)
	h.WriteGlobal(t, `{"backend": "osascript", "icon": "global-icon"}`)
	h.WriteProject(t, "work/repo", `{"backend": "toast"}`)

	res, _ := resolve(t, h, Overrides{})
	assert.Equal(t, "toast", res.Config.Backend, "project beats global")

	res, _ = resolve(t, h, Overrides{Backend: "pushover", Icon: "flag-icon"})
	assert.Equal(t, "pushover", res.Config.Backend, "flag beats project")
	assert.Equal(t, "flag-icon", res.Config.Icon)

	t.Setenv("CLAUDE_NOTIFY_BACKEND", "ntfy")
	t.Setenv("CLAUDE_NOTIFY_ICON", "env-icon")
	res, _ = resolve(t, h, Overrides{Backend: "pushover", Icon: "flag-icon"})
	assert.Equal(t, "ntfy", res.Config.Backend, "env beats flag")
	assert.Equal(t, "env-icon", res.Config.Icon)
}

func TestResolve_BackendEnvVars(t *testing.T) {
	testutil.ClearNotifyEnv(t)
	h := testutil.NewHome(t)
	h.WriteGlobal(t, `{"backends": {"ntfy": {"topic": "cfg", "token": "cfg-token"}, "pushover": {"user": "cfg-user", "device": "phone"}}}`)

	t.Setenv("CLAUDE_NOTIFY_NTFY_SERVER", "https://push.example.com")
	t.Setenv("CLAUDE_NOTIFY_NTFY_TOPIC", "env-topic")
	t.Setenv("CLAUDE_NOTIFY_NTFY_TAGS", "a,b")
	t.Setenv("CLAUDE_NOTIFY_NTFY_CLICK", "https://example.com")
	t.Setenv("CLAUDE_NOTIFY_NTFY_ACTIONS", "view, Open, https://example.com")
	t.Setenv("CLAUDE_NOTIFY_PUSHOVER_TOKEN", "env-app-token")
	t.Setenv("CLAUDE_NOTIFY_UNRELATED", "ignored")

	res, _ := resolve(t, h, Overrides{})
	ntfy := res.Config.Backends.Ntfy
	assert.Equal(t, "https://push.example.com", ntfy.Server)
	assert.Equal(t, "env-topic", ntfy.Topic)
	assert.Equal(t, []string{"a", "b"}, ntfy.Tags)
	assert.Equal(t, "https://example.com", ntfy.Click)
	assert.Equal(t, "view, Open, https://example.com", ntfy.Actions)
	assert.Equal(t, "cfg-token", ntfy.Token, "empty env var does not clear config")

	po := res.Config.Backends.Pushover
	assert.Equal(t, "cfg-user", po.User)
	assert.Equal(t, "env-app-token", po.Token)
	assert.Equal(t, "phone", po.Device)
}

func TestResolve_MalformedLayerIsSkipped(t *testing.T) {
	tests := map[string]struct {
		global      string
		project     string
		wantBackend string
		wantStatus  [2]SourceStatus
	}{
		"bad project keeps global": {
			global:      `{"backend": "ntfy"}`,
			project:     `{"backend": "toast",`,
			wantBackend: "ntfy",
			wantStatus:  [2]SourceStatus{StatusLoaded, StatusSkipped},
		},
		"bad global keeps project": {
			global:      `not json`,
			project:     `{"backend": "toast"}`,
			wantBackend: "toast",
			wantStatus:  [2]SourceStatus{StatusSkipped, StatusLoaded},
		},
		"both bad leaves presets": {
			global:      `[1, 2`,
			project:     `{{}}`,
			wantBackend: "",
			wantStatus:  [2]SourceStatus{StatusSkipped, StatusSkipped},
		},
		"wrong shape is skipped": {
			global:      `{"backend": "ntfy"}`,
			project:     `{"notifications": "loud"}`,
			wantBackend: "ntfy",
			wantStatus:  [2]SourceStatus{StatusLoaded, StatusSkipped},
		},
		"empty files": {
			global:      "",
			project:     "  \n",
			wantBackend: "",
			wantStatus:  [2]SourceStatus{StatusEmpty, StatusEmpty},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.ClearNotifyEnv(t)
			h := testutil.NewHome(t)
			h.WriteGlobal(t, tt.global)
			h.WriteProject(t, "work/repo", tt.project)

			res, logs := resolve(t, h, Overrides{})
			assert.Equal(t, tt.wantBackend, res.Config.Backend)
			require.Len(t, res.Sources, 2)
			assert.Equal(t, tt.wantStatus[0], res.Sources[0].Status)
			assert.Equal(t, tt.wantStatus[1], res.Sources[1].Status)
			if tt.wantStatus[0] == StatusSkipped || tt.wantStatus[1] == StatusSkipped {
				assert.NotEmpty(t, res.Warnings)
				assert.Contains(t, logs, `"level":"warn"`)
			} else {
				assert.Empty(t, res.Warnings)
			}
		})
	}
}

func TestResolve_InvalidValuesAreDropped(t *testing.T) {
	testutil.ClearNotifyEnv(t)
	h := testutil.NewHome(t)
	h.WriteGlobal(t, `{
		"backend": "growl",
		"notifications": {
			"task_complete": {"message": "kept", "urgency": "urgent", "sound": 3},
			"input": {"message": "wrong key"}
		},
		"quiet_hours": {"enabled": true, "start": "25:00", "end": "07:00"},
		"backends": {"ntfy": {"priority": "loud", "topic": "t"}, "pushover": {"priority": "high", "user": "u"}}
	}`)

	res, _ := resolve(t, h, Overrides{})
	cfg := res.Config

	assert.Equal(t, "growl", cfg.Backend, "unknown backend is left for selection to report")
	complete := cfg.Override(notify.TypeComplete)
	assert.Equal(t, "kept", complete.Message)
	assert.Empty(t, complete.Urgency)
	assert.False(t, complete.Sound.Set)
	assert.NotContains(t, cfg.Notifications, "input")
	assert.Empty(t, cfg.QuietHours.Start)
	assert.Equal(t, "07:00", cfg.QuietHours.End)
	assert.Empty(t, cfg.Backends.Ntfy.Priority)
	assert.Equal(t, "t", cfg.Backends.Ntfy.Topic)
	assert.Nil(t, cfg.Backends.Pushover.Priority)
	assert.Equal(t, "u", cfg.Backends.Pushover.User)

	assert.Len(t, res.Warnings, 7)
	assert.Contains(t, res.Warnings, "quiet_hours is enabled but quiet_hours.start is not set; quiet hours are off")
	for _, w := range res.Warnings {
		assert.NotContains(t, w, "backend:", "backend problems are reported by selection")
	}
}

func TestResolve_QuietHoursAcrossLayers(t *testing.T) {
	tests := map[string]struct {
		global      string
		project     string
		wantEnabled bool
		wantWarning string
	}{
		"project enables global window": {
			global:      `{"quiet_hours": {"start": "22:00", "end": "07:00"}}`,
			project:     `{"quiet_hours": {"enabled": true}}`,
			wantEnabled: true,
		},
		"project moves the end": {
			global:      `{"quiet_hours": {"enabled": true, "start": "22:00", "end": "07:00"}}`,
			project:     `{"quiet_hours": {"end": "06:30"}}`,
			wantEnabled: true,
		},
		"window never defined": {
			global:      `{}`,
			project:     `{"quiet_hours": {"enabled": true, "end": "07:00"}}`,
			wantEnabled: true,
			wantWarning: "quiet_hours is enabled but quiet_hours.start is not set; quiet hours are off",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.ClearNotifyEnv(t)
			h := testutil.NewHome(t)
			h.WriteGlobal(t, tt.global)
			h.WriteProject(t, "work/repo", tt.project)

			res, logs := resolve(t, h, Overrides{})
			assert.Equal(t, tt.wantEnabled, res.Config.QuietHours.Enabled)
			if tt.wantWarning == "" {
				assert.Empty(t, res.Warnings)
				assert.NotContains(t, logs, `"level":"warn"`)
				assert.True(t, res.Config.QuietHours.Active(time.Date(2024, 6, 1, 23, 0, 0, 0, time.Local)))
				return
			}
			assert.Equal(t, []string{tt.wantWarning}, res.Warnings)
			assert.False(t, res.Config.QuietHours.Active(time.Date(2024, 6, 1, 23, 0, 0, 0, time.Local)))
		})
	}
}

func TestResolve_ProjectOutsideHomeIgnored(t *testing.T) {
	testutil.ClearNotifyEnv(t)
	h := testutil.NewHome(t)
	outside := t.TempDir()
	testutil.WriteFile(t, outside+"/.claude-notify.json", `{"backend": "toast"}`)

	res, err := Resolve(ResolveOptions{Cwd: outside, Home: h.Dir, GlobalPath: h.GlobalConfig, Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.Empty(t, res.Config.Backend)
	assert.Len(t, res.Sources, 1)
}

func TestResolve_PushoverPriorityDecodes(t *testing.T) {
	testutil.ClearNotifyEnv(t)
	h := testutil.NewHome(t)
	h.WriteGlobal(t, `{"backends": {"pushover": {"priority": -2}}, "notifications": {"input_needed": {"sound": false, "enabled": true}}}`)

	res, _ := resolve(t, h, Overrides{})
	require.NotNil(t, res.Config.Backends.Pushover.Priority)
	assert.Equal(t, -2, *res.Config.Backends.Pushover.Priority)
	assert.Equal(t, notify.SoundSetting{Set: true}, res.Config.Override(notify.TypeInput).Sound)
	assert.Empty(t, res.Warnings)
}

func TestConfigOverride(t *testing.T) {
	t.Parallel()
	var nilCfg *Config
	assert.Equal(t, notify.TypeOverride{}, nilCfg.Override(notify.TypeInput))

	cfg := &Config{Notifications: map[string]notify.TypeOverride{
		"input_needed": {Title: "in"},
		"error":        {Title: "err"},
	}}
	assert.Equal(t, "in", cfg.Override(notify.TypeInput).Title)
	assert.Equal(t, "err", cfg.Override(notify.TypeError).Title)
	assert.Equal(t, notify.TypeOverride{}, cfg.Override(notify.TypeComplete))
	assert.Equal(t, notify.TypeOverride{}, cfg.Override(notify.TypeNone))
}

func TestEnvValue(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		key, value string
		wantKey    string
	}{
		"backend":       {key: "CLAUDE_NOTIFY_BACKEND", value: "ntfy", wantKey: "backend"},
		"pushover user": {key: "CLAUDE_NOTIFY_PUSHOVER_USER", value: "u", wantKey: "backends.pushover.user"},
		"debug ignored": {key: "CLAUDE_NOTIFY_DEBUG", value: "1", wantKey: ""},
		"empty ignored": {key: "CLAUDE_NOTIFY_ICON", value: " ", wantKey: ""},
		"unknown":       {key: "CLAUDE_NOTIFY_SOUND", value: "x", wantKey: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			key, _ := envValue(tt.key, tt.value)
			assert.Equal(t, tt.wantKey, key)
		})
	}
	vars := EnvVars()
	assert.Len(t, vars, 10)
	assert.IsIncreasing(t, vars)
}
