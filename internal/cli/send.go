package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/claude-notify/internal/config"
	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
	"github.com/ariel-frischer/claude-notify/internal/notify"
	"github.com/ariel-frischer/claude-notify/internal/progress"
)

// runSend is the default mode: build one notification and dispatch it.
func (a *app) runSend(ctx context.Context, cmd *cobra.Command, opts *options) error {
	flags, typ, err := a.parseSendFlags(cmd, opts)
	if err != nil {
		return err
	}

	cwd, home := a.paths()
	res, err := a.resolve(opts, cwd, home)
	if err != nil {
		return err
	}
	cfg := res.Config

	override := cfg.Override(typ)
	if override.Disabled() && !opts.test {
		a.logger.Debug().Str("type", typ.ConfigKey()).Msg("notification type disabled in config; nothing sent")
		return nil
	}

	req, err := notify.BuildRequest(notify.LayerInput{
		Type:     typ,
		Test:     opts.test,
		Flags:    flags,
		Override: override,
		Icon:     cfg.Icon,
		Home:     home,
	})
	if err != nil {
		return err
	}

	kind, err := notify.Select(cfg.Backend, a.platform())
	if err != nil {
		return err
	}
	if kind == notify.KindNone && isAuto(cfg.Backend) {
		// Detection found nothing usable. Hooks must not fail for that.
		return a.backendUnavailable()
	}

	if !opts.test && cfg.QuietHours.Active(a.now()) {
		if req.Urgency == notify.UrgencyLow {
			a.logger.Debug().Msg("quiet hours: low urgency notification dropped")
			return nil
		}
		a.logger.Debug().Msg("quiet hours: sound disabled")
		req = req.Muted()
	}

	sender, err := notify.New(kind, notify.Deps{
		Settings:   cfg.Backends,
		Runner:     a.runner,
		HTTPClient: a.httpClient,
		Secrets:    a.secrets,
		Logger:     a.logger,
		Home:       home,
	})
	if err != nil {
		return err
	}

	display := progress.NewDisplay(a.stderr, progress.DetectTerminalCapabilities(a.stderr, a.getenv))
	if req.Wait {
		display.StartWait(fmt.Sprintf("Waiting for %q on the %s notification (Ctrl+C to stop)", req.ActionLabel(), kind))
	}
	result, err := notify.NewHandler(sender, a.logger).Dispatch(ctx, req)
	display.Stop()
	if err != nil {
		if req.Wait && ctx.Err() != nil {
			// Interrupted while waiting: the notification was shown.
			a.logger.Debug().Err(err).Msg("wait interrupted")
			return nil
		}
		if isAuto(cfg.Backend) && errors.Is(err, notify.ErrNoDesktopNotifier) {
			// A session bus address without a daemon behind it (SSH, headless).
			a.logger.Debug().Err(err).Msg("auto-detected desktop backend is unreachable")
			return a.backendUnavailable()
		}
		return err
	}

	if result.ActionID != "" {
		fmt.Fprintln(a.stdout, result.ActionID)
	}
	return nil
}

func (a *app) backendUnavailable() error {
	fmt.Fprintln(a.stdout, clierrors.BackendUnavailable(a.goos).Message)
	return nil
}

// parseSendFlags validates the flags whose values have a fixed vocabulary.
func (a *app) parseSendFlags(cmd *cobra.Command, opts *options) (notify.Flags, notify.Type, error) {
	typ, err := notify.ParseType(opts.typ)
	if err != nil {
		return notify.Flags{}, "", err
	}
	urgency, err := notify.ParseUrgency(opts.urgency)
	if err != nil {
		return notify.Flags{}, "", err
	}

	var sound notify.SoundSetting
	switch {
	case opts.noSound:
		sound = notify.SoundSetting{Set: true}
	case cmd.Flags().Changed("sound"):
		if sound, err = notify.ParseSoundSetting(opts.sound); err != nil {
			return notify.Flags{}, "", clierrors.NewArgumentError(err.Error())
		}
	}

	return notify.Flags{
		Title:      opts.title,
		Message:    opts.message,
		Subtitle:   opts.subtitle,
		Urgency:    urgency,
		Category:   opts.category,
		Action:     opts.action,
		Attachment: opts.attach,
		Sound:      sound,
		Wait:       opts.wait,
	}, typ, nil
}

// resolve loads the configuration layers for this invocation.
func (a *app) resolve(opts *options, cwd, home string) (*config.Resolved, error) {
	res, err := config.Resolve(config.ResolveOptions{
		Cwd:        cwd,
		Home:       home,
		GlobalPath: config.UserConfigPath(a.getenv, home),
		Overrides:  config.Overrides{Backend: opts.backend, Icon: opts.icon},
		Logger:     a.logger,
	})
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Configuration, "loading configuration")
	}
	return res, nil
}

func isAuto(backend string) bool {
	b := strings.ToLower(strings.TrimSpace(backend))
	return b == "" || notify.Kind(b) == notify.KindAuto
}
