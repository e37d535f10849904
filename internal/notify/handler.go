package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
)

// DefaultDispatchTimeout bounds a send that does not wait for an action, so a
// hung notifier tool cannot stall the calling hook.
const DefaultDispatchTimeout = 30 * time.Second

// Handler dispatches a resolved request through one Sender.
type Handler struct {
	sender  Sender
	logger  zerolog.Logger
	timeout time.Duration
}

// NewHandler creates a handler for sender.
func NewHandler(sender Sender, logger zerolog.Logger) *Handler {
	return &Handler{sender: sender, logger: logger, timeout: DefaultDispatchTimeout}
}

// Dispatch sends req. Waiting for an action is bounded only by ctx.
// Errors that are not already CLI errors are reported as adapter failures.
func (h *Handler) Dispatch(ctx context.Context, req Request) (Result, error) {
	if !req.Wait && h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	kind := h.sender.Kind()
	h.logger.Debug().
		Str("backend", string(kind)).
		Str("type", string(req.Type)).
		Str("urgency", string(req.Urgency)).
		Bool("sound", req.Sound.Enabled).
		Bool("wait", req.Wait).
		Msg("dispatching notification")

	res, err := h.sender.Send(ctx, req)
	if err != nil {
		if clierrors.IsCLIError(err) {
			return Result{}, err
		}
		return Result{}, clierrors.AdapterFailure(string(kind), err, "")
	}
	return res, nil
}
