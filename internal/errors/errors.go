// Package errors provides categorized CLI errors for claude-notify.
//
// Every failure surfaced to the user is a *CLIError carrying a Category (how the
// user should think about it) and a Kind (which failure in the notifier's taxonomy
// it is). Kinds decide exit behavior; categories decide presentation.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory groups errors by who has to act on them.
type ErrorCategory int

const (
	// Argument errors come from invalid command-line input
	Argument ErrorCategory = iota
	// Configuration errors come from config files, env vars or credentials
	Configuration
	// Prerequisite errors mean a required tool or service is missing
	Prerequisite
	// Runtime errors happen while delivering the notification
	Runtime
)

// String returns the human-readable category label.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Prerequisite:
		return "Prerequisite Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// Kind identifies a failure in the notifier's error taxonomy.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfigParse: malformed JSON in a config layer (recoverable)
	KindConfigParse
	// KindConfigValidation: a value outside its allowed set or format
	KindConfigValidation
	// KindMissingRequiredField: title or message empty after layering
	KindMissingRequiredField
	// KindUnknownBackend: explicit backend not in the known set
	KindUnknownBackend
	// KindBackendUnavailable: auto-detection found nothing usable
	KindBackendUnavailable
	// KindAdapterSendFailure: the underlying send call failed
	KindAdapterSendFailure
	// KindMissingCredentials: a push backend lacks topic/keys
	KindMissingCredentials
	// KindInvalidArgument: bad flag value or unexpected argument
	KindInvalidArgument
)

var kindNames = map[Kind]string{
	KindUnknown:              "unknown",
	KindConfigParse:          "config-parse",
	KindConfigValidation:     "config-validation",
	KindMissingRequiredField: "missing-required-field",
	KindUnknownBackend:       "unknown-backend",
	KindBackendUnavailable:   "backend-unavailable",
	KindAdapterSendFailure:   "adapter-send-failure",
	KindMissingCredentials:   "missing-credentials",
	KindInvalidArgument:      "invalid-argument",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Fatal reports whether errors of this kind end the invocation with exit code 1.
func (k Kind) Fatal() bool {
	switch k {
	case KindConfigParse, KindBackendUnavailable:
		return false
	default:
		return true
	}
}

// CLIError is an error with a category, a taxonomy kind and optional remediation.
type CLIError struct {
	Category    ErrorCategory
	Kind        Kind
	Message     string
	Usage       string
	Remediation []string
	Err         error
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewArgumentError creates an Argument error with remediation steps.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Argument,
		Kind:        KindInvalidArgument,
		Message:     message,
		Remediation: remediation,
	}
}

// NewArgumentErrorWithUsage creates an Argument error that also shows usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	err := NewArgumentError(message, remediation...)
	err.Usage = usage
	return err
}

// Wrap converts any error into a CLIError of the given category.
// Returns nil for a nil error.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	kind := KindUnknown
	if ce := AsCLIError(err); ce != nil {
		kind = ce.Kind
	}
	return &CLIError{
		Category:    category,
		Kind:        kind,
		Message:     err.Error(),
		Remediation: remediation,
		Err:         err,
	}
}

// WrapWithMessage wraps err with a leading message ("message: err").
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	wrapped := Wrap(err, category, remediation...)
	if wrapped == nil {
		return nil
	}
	wrapped.Message = fmt.Sprintf("%s: %s", message, err.Error())
	return wrapped
}

// IsCLIError reports whether err is (or wraps) a CLIError.
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var ce *CLIError
	if stderrors.As(err, &ce) {
		return ce
	}
	return nil
}

// IsKind reports whether err carries the given taxonomy kind.
func IsKind(err error, k Kind) bool {
	ce := AsCLIError(err)
	return ce != nil && ce.Kind == k
}
