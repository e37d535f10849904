// Package notify_test provides fakes for notification sender testing.
// Related: internal/notify/sender.go
// Tags: notify, mocks, testing

package notify

import (
	"context"
	"errors"
	"os/exec"
	"sync"

	"github.com/godbus/dbus/v5"
)

// MockSender records Send calls and returns configured results.
type MockSender struct {
	mu sync.Mutex

	kind   Kind
	result Result
	err    error

	Calls []Request
}

// NewMockSender creates a mock sender that succeeds with an empty result
func NewMockSender(kind Kind) *MockSender {
	return &MockSender{kind: kind}
}

// WithError configures the mock to fail every send
func (m *MockSender) WithError(err error) *MockSender {
	m.err = err
	return m
}

// WithResult configures the result of every successful send
func (m *MockSender) WithResult(r Result) *MockSender {
	m.result = r
	return m
}

func (m *MockSender) Kind() Kind { return m.kind }

func (m *MockSender) Send(ctx context.Context, req Request) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if m.err != nil {
		return Result{}, m.err
	}
	return m.result, nil
}

// fakeCall is one recorded Runner.Run invocation.
type fakeCall struct {
	Name string
	Args []string
}

// fakeRunner records invocations instead of executing tools.
type fakeRunner struct {
	mu sync.Mutex

	// tools on PATH; anything else fails LookPath
	tools map[string]bool
	// outputs per tool name
	outputs map[string]Output
	errs    map[string]error
	// run overrides all of the above when set
	run func(name string, args []string) (Output, error)

	Calls []fakeCall
}

func newFakeRunner(tools ...string) *fakeRunner {
	r := &fakeRunner{
		tools:   map[string]bool{},
		outputs: map[string]Output{},
		errs:    map[string]error{},
	}
	for _, t := range tools {
		r.tools[t] = true
	}
	return r
}

func (r *fakeRunner) withOutput(name string, out Output) *fakeRunner {
	r.outputs[name] = out
	return r
}

func (r *fakeRunner) withError(name string, err error) *fakeRunner {
	r.errs[name] = err
	return r
}

func (r *fakeRunner) LookPath(file string) (string, error) {
	if r.tools[file] {
		return "/usr/bin/" + file, nil
	}
	return "", exec.ErrNotFound
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	r.mu.Lock()
	r.Calls = append(r.Calls, fakeCall{Name: name, Args: append([]string(nil), args...)})
	r.mu.Unlock()
	if r.run != nil {
		return r.run(name, args)
	}
	return r.outputs[name], r.errs[name]
}

func (r *fakeRunner) last() fakeCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Calls) == 0 {
		return fakeCall{}
	}
	return r.Calls[len(r.Calls)-1]
}

// fakeBus stands in for the D-Bus session connection.
type fakeBus struct {
	notifyErr error
	watchErr  error
	id        uint32
	// emit is delivered after Notify returns
	emit []*dbus.Signal

	signals  chan *dbus.Signal
	watched  bool
	closed   bool
	Notified []busNotification
}

func (b *fakeBus) Watch() (<-chan *dbus.Signal, error) {
	if b.watchErr != nil {
		return nil, b.watchErr
	}
	b.watched = true
	b.signals = make(chan *dbus.Signal, len(b.emit)+1)
	return b.signals, nil
}

func (b *fakeBus) Notify(ctx context.Context, n busNotification) (uint32, error) {
	if b.notifyErr != nil {
		return 0, b.notifyErr
	}
	b.Notified = append(b.Notified, n)
	for _, s := range b.emit {
		if b.signals != nil {
			b.signals <- s
		}
	}
	return b.id, nil
}

func (b *fakeBus) Close() error {
	b.closed = true
	return nil
}

func dialer(b *fakeBus) func() (notificationBus, error) {
	return func() (notificationBus, error) { return b, nil }
}

var errNoBus = errors.New("no session bus")

func noBus() (notificationBus, error) { return nil, errNoBus }

// fakeSecrets is an in-memory SecretStore.
type fakeSecrets map[string]string

func (f fakeSecrets) Secret(account string) (string, error) {
	return f[account], nil
}
