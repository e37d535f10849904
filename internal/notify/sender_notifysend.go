package notify

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/godbus/dbus/v5"

	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
)

const (
	defaultAppName = "Claude Code"
	desktopEntry   = "claude-notify"
)

// notifySendSender delivers Linux desktop notifications. It talks to the
// notification daemon over D-Bus and falls back to the notify-send binary when
// the session bus is unreachable.
type notifySendSender struct {
	settings NotifySendSettings
	runner   Runner
	dial     func() (notificationBus, error)
	deps     Deps
}

// ErrNoDesktopNotifier means neither a notification daemon on the session bus
// nor the notify-send binary could be reached.
var ErrNoDesktopNotifier = errors.New("no notification daemon or notify-send binary")

func init() {
	register(KindNotifySend, func(d Deps) Sender {
		dial := d.dialBus
		if dial == nil {
			dial = dialSessionBus
		}
		return &notifySendSender{settings: d.Settings.NotifySend, runner: d.Runner, dial: dial, deps: d}
	})
}

func (s *notifySendSender) Kind() Kind { return KindNotifySend }

func (s *notifySendSender) Send(ctx context.Context, req Request) (Result, error) {
	res, shown, err := s.sendViaBus(ctx, req)
	if shown {
		if err != nil {
			return Result{}, clierrors.AdapterFailure(string(KindNotifySend), err, "")
		}
		return res, nil
	}
	s.deps.Logger.Debug().Err(err).Msg("d-bus notification failed, falling back to notify-send")

	if _, lookErr := s.runner.LookPath("notify-send"); lookErr != nil {
		cause := fmt.Errorf("%w: %v", ErrNoDesktopNotifier, err)
		return Result{}, clierrors.AdapterFailure(string(KindNotifySend), cause, "notify-send not installed")
	}
	return s.sendViaBinary(ctx, req)
}

// sendViaBus reports shown=true once the daemon accepted the notification;
// after that point no fallback is attempted.
func (s *notifySendSender) sendViaBus(ctx context.Context, req Request) (Result, bool, error) {
	bus, err := s.dial()
	if err != nil {
		return Result{}, false, err
	}
	defer bus.Close()

	wait := req.Wait && req.Action != ""
	var signals <-chan *dbus.Signal
	if wait {
		if signals, err = bus.Watch(); err != nil {
			return Result{}, false, err
		}
	}

	id, err := bus.Notify(ctx, s.busNotification(req, wait))
	if err != nil {
		return Result{}, false, err
	}
	s.deps.Logger.Debug().Uint32("id", id).Msg("notification shown via d-bus")
	if !wait {
		return Result{}, true, nil
	}

	action, err := awaitAction(ctx, signals, id)
	if err != nil {
		return Result{}, true, err
	}
	return Result{ActionID: action}, true, nil
}

func (s *notifySendSender) busNotification(req Request, wait bool) busNotification {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(urgencyByte(req.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}
	if req.Category != "" {
		hints["category"] = dbus.MakeVariant(req.Category)
	}
	if !req.Sound.Enabled {
		hints["suppress-sound"] = dbus.MakeVariant(true)
	} else if req.Sound.Name != "" {
		hints["sound-name"] = dbus.MakeVariant(req.Sound.Name)
	}

	actions := []string{}
	if wait {
		actions = append(actions, req.ActionID(), req.ActionLabel())
	}

	return busNotification{
		AppName: s.appName(),
		Icon:    req.Icon,
		Summary: req.Title,
		Body:    req.Message,
		Actions: actions,
		Hints:   hints,
		Timeout: s.timeout(),
	}
}

func (s *notifySendSender) sendViaBinary(ctx context.Context, req Request) (Result, error) {
	args := []string{
		"-u", string(req.Urgency),
		"-a", s.appName(),
	}
	if req.Icon != "" {
		args = append(args, "-i", req.Icon)
	}
	if req.Category != "" {
		args = append(args, "-c", req.Category)
	}
	if t := s.timeout(); t >= 0 {
		args = append(args, "-t", strconv.Itoa(int(t)))
	}
	if !req.Sound.Enabled {
		args = append(args, "-h", "boolean:suppress-sound:true")
	} else if req.Sound.Name != "" {
		args = append(args, "-h", "string:sound-name:"+req.Sound.Name)
	}
	wait := req.Wait && req.Action != ""
	if wait {
		args = append(args, "-A", req.ActionID()+"="+req.ActionLabel(), "--wait")
	}
	// "--" keeps a title or message starting with "-" from being read as a flag
	args = append(args, "--", req.Title, req.Message)

	out, err := runTool(ctx, s.runner, KindNotifySend, "notify-send", args...)
	if err != nil {
		return Result{}, err
	}
	if !wait {
		return Result{}, nil
	}
	return Result{ActionID: strings.TrimSpace(string(out.Stdout))}, nil
}

func (s *notifySendSender) appName() string {
	if s.settings.AppName != "" {
		return s.settings.AppName
	}
	return defaultAppName
}

func (s *notifySendSender) timeout() int32 {
	switch {
	case s.settings.TimeoutMS > math.MaxInt32:
		return math.MaxInt32
	case s.settings.TimeoutMS > 0:
		return int32(s.settings.TimeoutMS)
	default:
		return -1
	}
}
