package config

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
	"github.com/ariel-frischer/claude-notify/internal/notify"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "CLAUDE_NOTIFY_"

// envKeys maps the supported environment variables to config keys.
// Anything else with the prefix (CLAUDE_NOTIFY_DEBUG, typos) is ignored.
var envKeys = map[string]string{
	EnvPrefix + "BACKEND":        "backend",
	EnvPrefix + "ICON":           "icon",
	EnvPrefix + "NTFY_SERVER":    "backends.ntfy.server",
	EnvPrefix + "NTFY_TOPIC":     "backends.ntfy.topic",
	EnvPrefix + "NTFY_TAGS":      "backends.ntfy.tags",
	EnvPrefix + "NTFY_CLICK":     "backends.ntfy.click",
	EnvPrefix + "NTFY_ACTIONS":   "backends.ntfy.actions",
	EnvPrefix + "NTFY_TOKEN":     "backends.ntfy.token",
	EnvPrefix + "PUSHOVER_USER":  "backends.pushover.user",
	EnvPrefix + "PUSHOVER_TOKEN": "backends.pushover.token",
}

// EnvVars lists the supported environment overrides in sorted order, for help output.
func EnvVars() []string {
	vars := make([]string, 0, len(envKeys))
	for k := range envKeys {
		vars = append(vars, k)
	}
	sort.Strings(vars)
	return vars
}

// Config is the merged configuration of one invocation
type Config struct {
	Backend       string                         `koanf:"backend" yaml:"backend,omitempty" validate:"omitempty,backend"`
	Icon          string                         `koanf:"icon" yaml:"icon,omitempty"`
	Notifications map[string]notify.TypeOverride `koanf:"notifications" yaml:"notifications,omitempty" validate:"dive,keys,oneof=input_needed task_complete error,endkeys"`
	QuietHours    QuietHours                     `koanf:"quiet_hours" yaml:"quiet_hours,omitempty"`
	Backends      notify.BackendSettings         `koanf:"backends" yaml:"backends,omitempty"`
}

// Override returns the per-type section for t. Missing sections are zero.
func (c *Config) Override(t notify.Type) notify.TypeOverride {
	if c == nil || t == notify.TypeNone {
		return notify.TypeOverride{}
	}
	return c.Notifications[t.ConfigKey()]
}

// Scope names where a config layer comes from
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeProject Scope = "project"
)

// SourceStatus records what happened to a config layer
type SourceStatus string

const (
	StatusLoaded  SourceStatus = "loaded"
	StatusMissing SourceStatus = "missing"
	StatusEmpty   SourceStatus = "empty"
	// StatusSkipped means the file could not be read or parsed and was ignored
	StatusSkipped SourceStatus = "skipped"
)

// Source describes one config file layer.
type Source struct {
	Scope  Scope
	Path   string
	Status SourceStatus
}

// Overrides are config values given on the command line.
// Environment variables still take precedence over them.
type Overrides struct {
	Backend string
	Icon    string
}

// ResolveOptions are the inputs of Resolve.
type ResolveOptions struct {
	Cwd  string
	Home string
	// GlobalPath is the global config file; empty uses UserConfigPath
	GlobalPath string
	Overrides  Overrides
	Logger     zerolog.Logger
}

// Resolved is the merged configuration plus what went into it.
type Resolved struct {
	Config   Config
	Sources  []Source
	Warnings []string
}

// Resolve loads and merges configuration.
// Priority: environment variables > command-line overrides > project config > global config.
//
// A config file that cannot be read, is not valid JSON, or does not fit the
// schema is skipped with a warning. Individual invalid values are dropped with a
// warning and the rest of the file still applies. An unknown backend name is
// kept so backend selection can report it.
func Resolve(opts ResolveOptions) (*Resolved, error) {
	globalPath := opts.GlobalPath
	if globalPath == "" {
		globalPath = UserConfigPath(os.Getenv, opts.Home)
	}

	res := &Resolved{}
	warn := func(msg string) {
		res.Warnings = append(res.Warnings, msg)
		opts.Logger.Warn().Msg(msg)
	}

	k := koanf.New(".")
	v := newValidator()

	layers := []Source{{Scope: ScopeGlobal, Path: globalPath}}
	if project, ok := FindProjectConfig(opts.Cwd, opts.Home); ok {
		layers = append(layers, Source{Scope: ScopeProject, Path: project})
	}

	for _, src := range layers {
		layer, status, err := readLayer(src.Path)
		src.Status = status
		if err != nil {
			warn(fmt.Sprintf("ignoring %s config: %v", src.Scope, err))
		}
		if layer != nil {
			problems, err := checkLayer(layer, v)
			for _, p := range problems {
				if p.Field != "backend" {
					warn(clierrors.ConfigValidation(src.Path, p.Field, p.Message).Error())
				}
			}
			if err != nil {
				warn(fmt.Sprintf("ignoring %s config %s: %v", src.Scope, src.Path, err))
				src.Status = StatusSkipped
			} else if err := k.Merge(layer); err != nil {
				return nil, fmt.Errorf("merging %s config: %w", src.Scope, err)
			}
		}
		opts.Logger.Debug().Str("scope", string(src.Scope)).Str("path", src.Path).Str("status", string(src.Status)).Msg("config layer")
		res.Sources = append(res.Sources, src)
	}

	if opts.Overrides.Backend != "" {
		if err := k.Set("backend", opts.Overrides.Backend); err != nil {
			return nil, fmt.Errorf("applying --backend: %w", err)
		}
	}
	if opts.Overrides.Icon != "" {
		if err := k.Set("icon", opts.Overrides.Icon); err != nil {
			return nil, fmt.Errorf("applying --icon: %w", err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	if err := decode(k, &res.Config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if missing := incompleteQuietHours(res.Config.QuietHours); len(missing) > 0 {
		warn(fmt.Sprintf("quiet_hours is enabled but %s is not set; quiet hours are off", strings.Join(missing, " and ")))
	}
	return res, nil
}

// envValue maps a supported environment variable to its config key.
// Unsupported and empty variables return an empty key and are skipped.
func envValue(key, value string) (string, interface{}) {
	path, ok := envKeys[key]
	if !ok || strings.TrimSpace(value) == "" {
		return "", nil
	}
	return path, value
}

// decode unmarshals k into cfg. Sound settings accept a bool or a name and
// comma-separated strings become lists.
func decode(k *koanf.Koanf, cfg *Config) error {
	return k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				soundSettingHook,
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	})
}

var soundSettingType = reflect.TypeOf(notify.SoundSetting{})

func soundSettingHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != soundSettingType {
		return data, nil
	}
	return notify.ParseSoundSetting(data)
}
