package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsPath      = "/org/freedesktop/Notifications"
	notificationsInterface = "org.freedesktop.Notifications"
	notifyMethod           = notificationsInterface + ".Notify"
	signalActionInvoked    = notificationsInterface + ".ActionInvoked"
	signalClosed           = notificationsInterface + ".NotificationClosed"
)

// busNotification is the argument list of org.freedesktop.Notifications.Notify.
// See: https://specifications.freedesktop.org/notification-spec/latest/
type busNotification struct {
	AppName string
	Icon    string
	Summary string
	Body    string
	// Actions alternates action keys and labels
	Actions []string
	Hints   map[string]dbus.Variant
	// Timeout is in milliseconds; -1 lets the server decide
	Timeout int32
}

// notificationBus is the slice of the session bus the desktop adapter needs.
type notificationBus interface {
	// Watch subscribes to ActionInvoked and NotificationClosed. It must be
	// called before Notify so a fast click is not missed.
	Watch() (<-chan *dbus.Signal, error)
	Notify(ctx context.Context, n busNotification) (uint32, error)
	Close() error
}

type sessionBus struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
}

func dialSessionBus() (notificationBus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	return &sessionBus{conn: conn}, nil
}

func (b *sessionBus) Watch() (<-chan *dbus.Signal, error) {
	if err := b.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(notificationsPath),
		dbus.WithMatchInterface(notificationsInterface),
	); err != nil {
		return nil, fmt.Errorf("subscribing to notification signals: %w", err)
	}
	b.signals = make(chan *dbus.Signal, 10)
	b.conn.Signal(b.signals)
	return b.signals, nil
}

func (b *sessionBus) Notify(ctx context.Context, n busNotification) (uint32, error) {
	obj := b.conn.Object(notificationsInterface, notificationsPath)
	call := obj.CallWithContext(ctx, notifyMethod, 0,
		n.AppName,
		uint32(0), // replaces_id
		n.Icon,
		n.Summary,
		n.Body,
		n.Actions,
		n.Hints,
		n.Timeout,
	)
	if call.Err != nil {
		return 0, fmt.Errorf("calling %s: %w", notifyMethod, call.Err)
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("reading notification id: %w", err)
	}
	return id, nil
}

func (b *sessionBus) Close() error {
	if b.signals != nil {
		b.conn.RemoveSignal(b.signals)
		_ = b.conn.RemoveMatchSignal(
			dbus.WithMatchObjectPath(notificationsPath),
			dbus.WithMatchInterface(notificationsInterface),
		)
	}
	return b.conn.Close()
}

// awaitAction blocks until notification id is clicked or closed.
// A close without a click yields an empty action id.
func awaitAction(ctx context.Context, signals <-chan *dbus.Signal, id uint32) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return "", fmt.Errorf("session bus closed while waiting for action")
			}
			if sig == nil || len(sig.Body) < 2 {
				continue
			}
			sigID, ok := sig.Body[0].(uint32)
			if !ok || sigID != id {
				continue
			}
			switch sig.Name {
			case signalActionInvoked:
				key, _ := sig.Body[1].(string)
				return key, nil
			case signalClosed:
				return "", nil
			}
		}
	}
}

// urgencyByte maps urgency to the freedesktop urgency hint.
func urgencyByte(u Urgency) byte {
	switch u {
	case UrgencyLow:
		return 0
	case UrgencyCritical:
		return 2
	default:
		return 1
	}
}
