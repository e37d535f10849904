package notify

import "strings"

// escapeAppleScript escapes s for use inside an AppleScript double-quoted string.
// Backslashes are escaped before quotes so an input `\"` cannot close the string.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// escapeXML escapes the five XML special characters for toast payloads.
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// escapeForPowerShell escapes s for a PowerShell single-quoted string literal.
// PowerShell also treats the typographic single quotes as quote characters.
func escapeForPowerShell(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch c {
		case '\'', '‘', '’', '‚', '‛':
			b.WriteRune(c)
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// psQuote returns s as a complete single-quoted PowerShell literal.
func psQuote(s string) string {
	return "'" + escapeForPowerShell(s) + "'"
}

// sanitizeHeader makes s safe for an HTTP header value.
// Line breaks collapse to a single space and NUL bytes are dropped.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}
