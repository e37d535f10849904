package errors

import (
	"fmt"
	"strings"
)

// ConfigParse is reported when a config file is not valid JSON. The layer is
// skipped and the invocation continues.
func ConfigParse(path string, cause error) *CLIError {
	return &CLIError{
		Category: Configuration,
		Kind:     KindConfigParse,
		Message:  fmt.Sprintf("%s: invalid JSON: %s", path, collapseLines(cause.Error())),
		Remediation: []string{
			"Run claude-notify --validate " + path + " to see the syntax error",
		},
		Err: cause,
	}
}

// ConfigValidation describes one invalid value in a config file. Outside
// --validate the value is ignored and only this message is logged.
func ConfigValidation(path, field, problem string) *CLIError {
	return &CLIError{
		Category: Configuration,
		Kind:     KindConfigValidation,
		Message:  fmt.Sprintf("%s: ignoring %s: %s", path, field, problem),
		Remediation: []string{
			"Run claude-notify --validate " + path + " to list every invalid value",
		},
	}
}

// MissingTitleOrMessage is returned when layering leaves title or message empty.
func MissingTitleOrMessage(field string) *CLIError {
	return &CLIError{
		Category: Argument,
		Kind:     KindMissingRequiredField,
		Message:  fmt.Sprintf("notification %s is empty: provide --title and --message, or --type", field),
		Usage:    "claude-notify --type complete | claude-notify --title TITLE --message MESSAGE",
		Remediation: []string{
			"Use --type input|complete|error to send a preset notification",
			"Or pass both --title and --message explicitly",
		},
	}
}

// UnknownBackend is returned for an explicit backend outside the known set.
func UnknownBackend(name string, known []string) *CLIError {
	return &CLIError{
		Category: Configuration,
		Kind:     KindUnknownBackend,
		Message:  fmt.Sprintf("unknown backend %q (known: %s)", name, strings.Join(known, ", ")),
		Remediation: []string{
			"Check --backend, CLAUDE_NOTIFY_BACKEND and the \"backend\" config key",
			"Run claude-notify --validate to check your configuration",
		},
	}
}

// BackendUnavailable is reported when auto-detection finds no usable backend.
func BackendUnavailable(platform string) *CLIError {
	return &CLIError{
		Category: Prerequisite,
		Kind:     KindBackendUnavailable,
		Message:  fmt.Sprintf("no notification backend available on %s; notification dropped", platform),
		Remediation: []string{
			"Install notify-send (libnotify) or configure a push backend (ntfy, pushover)",
		},
	}
}

// MissingCredentials is returned when a push backend lacks required settings.
func MissingCredentials(backend, what string, envVars ...string) *CLIError {
	remediation := make([]string, 0, len(envVars)+1)
	for _, v := range envVars {
		remediation = append(remediation, "Set "+v)
	}
	remediation = append(remediation, fmt.Sprintf("Or configure backends.%s in your config file", backend))
	return &CLIError{
		Category:    Configuration,
		Kind:        KindMissingCredentials,
		Message:     fmt.Sprintf("%s backend: %s is not configured", backend, what),
		Remediation: remediation,
	}
}

// AdapterFailure is returned when an adapter's underlying call fails.
// Captured diagnostic output from the tool or service is appended to the message.
func AdapterFailure(backend string, cause error, output string) *CLIError {
	msg := fmt.Sprintf("%s backend failed: %v", backend, cause)
	if out := strings.TrimSpace(output); out != "" {
		msg = fmt.Sprintf("%s: %s", msg, collapseLines(out))
	}
	return &CLIError{
		Category: Runtime,
		Kind:     KindAdapterSendFailure,
		Message:  msg,
		Err:      cause,
	}
}

// InvalidFlagValue is returned for a flag value outside its allowed set.
func InvalidFlagValue(flag, value string, allowed []string) *CLIError {
	return &CLIError{
		Category: Argument,
		Kind:     KindInvalidArgument,
		Message:  fmt.Sprintf("invalid value %q for --%s (allowed: %s)", value, flag, strings.Join(allowed, ", ")),
	}
}

func collapseLines(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
