package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"sort"

	"github.com/rs/zerolog"

	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
)

// Kind identifies a notification backend
type Kind string

const (
	// KindAuto resolves to a concrete backend by platform detection
	KindAuto             Kind = "auto"
	KindNotifySend       Kind = "notify-send"
	KindOsascript        Kind = "osascript"
	KindTerminalNotifier Kind = "terminal-notifier"
	KindToast            Kind = "toast"
	KindNtfy             Kind = "ntfy"
	KindPushover         Kind = "pushover"
	// KindNone sends nothing
	KindNone Kind = "none"
)

// Sender is implemented by every backend adapter.
type Sender interface {
	// Kind returns the backend variant this sender implements
	Kind() Kind

	// Send delivers the request. Adapters report failures as *errors.CLIError
	// of kind AdapterSendFailure or MissingCredentials.
	Send(ctx context.Context, req Request) (Result, error)
}

// Runner runs external notifier tools. It exists so tests never trigger real
// OS notifications.
type Runner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

// Output is the captured output of a finished tool.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// Diagnostic returns the text worth showing when the tool failed.
func (o Output) Diagnostic() string {
	if len(bytes.TrimSpace(o.Stderr)) > 0 {
		return string(o.Stderr)
	}
	return string(o.Stdout)
}

// ExecRunner runs tools with os/exec.
type ExecRunner struct{}

// LookPath checks if a command-line tool is available in PATH
func (ExecRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes name with args and captures stdout and stderr separately.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, err
}

// Deps is what a backend constructor may draw on.
type Deps struct {
	Settings   BackendSettings
	Runner     Runner
	HTTPClient *http.Client
	Secrets    SecretStore
	Logger     zerolog.Logger
	// Home is used for ~ expansion of attachment and icon paths
	Home string

	// dialBus overrides the D-Bus session connection (tests)
	dialBus func() (notificationBus, error)
}

// Factory constructs a Sender for one backend kind.
type Factory func(Deps) Sender

var factories = map[Kind]Factory{}

// register adds a backend variant. Each adapter file registers itself in init.
func register(kind Kind, f Factory) {
	if _, dup := factories[kind]; dup {
		panic(fmt.Sprintf("notify: backend %q registered twice", kind))
	}
	factories[kind] = f
}

// Names returns every accepted backend name, "auto" included, sorted.
func Names() []string {
	names := make([]string, 0, len(factories)+1)
	names = append(names, string(KindAuto))
	for k := range factories {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// ValidBackend checks if name is "auto" or a registered backend.
func ValidBackend(name string) bool {
	if Kind(name) == KindAuto {
		return true
	}
	_, ok := factories[Kind(name)]
	return ok
}

// New builds the sender for a concrete kind.
func New(kind Kind, deps Deps) (Sender, error) {
	f, ok := factories[kind]
	if !ok {
		return nil, clierrors.UnknownBackend(string(kind), Names())
	}
	if deps.Runner == nil {
		deps.Runner = ExecRunner{}
	}
	return f(deps), nil
}

// runTool runs a notifier tool and converts a failure into an AdapterSendFailure
// carrying the tool's diagnostic output.
func runTool(ctx context.Context, r Runner, kind Kind, name string, args ...string) (Output, error) {
	out, err := r.Run(ctx, name, args...)
	if err != nil {
		if ctx.Err() != nil {
			return out, clierrors.AdapterFailure(string(kind), ctx.Err(), "")
		}
		return out, clierrors.AdapterFailure(string(kind), err, out.Diagnostic())
	}
	return out, nil
}

type noneSender struct{}

func init() {
	register(KindNone, func(Deps) Sender { return noneSender{} })
}

func (noneSender) Kind() Kind { return KindNone }

func (noneSender) Send(context.Context, Request) (Result, error) { return Result{}, nil }
