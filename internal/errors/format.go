package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders a CLIError with category header, usage and remediation.
// Colors follow fatih/color's global NoColor detection.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	return format(err, red, yellow)
}

func format(err *CLIError, header, hint func(a ...interface{}) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", header(err.Category.String()), err.Message)
	if err.Usage != "" {
		fmt.Fprintf(&b, "\nUsage: %s\n", err.Usage)
	}
	if len(err.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", hint("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&b, "  - %s\n", step)
		}
	}
	return b.String()
}

// FormatLine renders err as the single human-readable line printed on failure.
func FormatLine(err error) string {
	if err == nil {
		return ""
	}
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	return fmt.Sprintf("%s %s", red("claude-notify:"), err.Error())
}

// FprintError writes the one-line form of err to w.
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, FormatLine(err))
}

// FprintErrorVerbose writes the full form (usage, remediation) to w.
// Non-CLIError values fall back to the one-line form.
func FprintErrorVerbose(w io.Writer, err error) {
	if err == nil {
		return
	}
	if ce := AsCLIError(err); ce != nil {
		fmt.Fprint(w, FormatError(ce))
		return
	}
	FprintError(w, err)
}
