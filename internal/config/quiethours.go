package config

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// QuietHours softens notifications during a daily window.
type QuietHours struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Start   string `koanf:"start" yaml:"start,omitempty" validate:"omitempty,hhmm"`
	End     string `koanf:"end" yaml:"end,omitempty" validate:"omitempty,hhmm"`
}

// ParseClock parses a 24-hour "HH:MM" time into minutes after midnight.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time %q: want HH:MM (24-hour)", s)
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	return h*60 + mm, nil
}

// Active reports whether now falls inside [Start, End).
// The window wraps past midnight when End is earlier than Start.
// Disabled, invalid, or empty windows are never active.
func (q QuietHours) Active(now time.Time) bool {
	if !q.Enabled {
		return false
	}
	start, err := ParseClock(q.Start)
	if err != nil {
		return false
	}
	end, err := ParseClock(q.End)
	if err != nil {
		return false
	}

	m := now.Hour()*60 + now.Minute()
	switch {
	case start == end:
		return false
	case start < end:
		return m >= start && m < end
	default:
		return m >= start || m < end
	}
}
