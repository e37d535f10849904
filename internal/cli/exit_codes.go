package cli

import (
	stderrors "errors"
	"fmt"

	clierrors "github.com/ariel-frischer/claude-notify/internal/errors"
)

// Exit codes for the claude-notify CLI. Hooks only distinguish success from failure.
const (
	// ExitSuccess covers sent, suppressed, help/version and passed validation
	ExitSuccess = 0
	// ExitFailure covers every fatal error
	ExitFailure = 1
)

// exitError carries an exit code for a failure that has already been reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode returns the exit code for err.
// Non-fatal error kinds (an unusable config layer, no backend available) exit 0.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if stderrors.As(err, &e) {
		return e.code
	}
	if ce := clierrors.AsCLIError(err); ce != nil && !ce.Kind.Fatal() {
		return ExitSuccess
	}
	return ExitFailure
}

// report prints err (unless it was already reported) and returns the exit code.
func (a *app) report(err error) int {
	code := ExitCode(err)
	if err == nil {
		return code
	}
	var e *exitError
	if stderrors.As(err, &e) {
		return code
	}
	if a.debug {
		clierrors.FprintErrorVerbose(a.stderr, err)
	} else {
		clierrors.FprintError(a.stderr, err)
	}
	return code
}
