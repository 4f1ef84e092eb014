package slotplan

import (
	"fmt"
	"strings"
	"time"
)

var clockLayouts = []string{"3:04 PM", "3:04PM", "15:04"}

// ParseWorkingHours parses an "open - close" string such as
// "09:00 AM - 05:00 PM" or "09:00-17:00" into open/close minutes from
// midnight. Callers treat a parse failure as "no slots today", not as a
// user-facing error.
func ParseWorkingHours(s string) (open, close int, err error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("working hours %q: missing open/close separator", s)
	}
	open, err = parseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("working hours %q: %w", s, err)
	}
	close, err = parseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("working hours %q: %w", s, err)
	}
	if open >= close {
		return 0, 0, fmt.Errorf("working hours %q: open is not before close", s)
	}
	return open, close, nil
}

func parseClock(s string) (int, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(s)); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized clock time %q", s)
}

// FormatMinute renders minutes from midnight as "H:MM AM/PM".
// Hours 0 and 12 both render as 12.
func FormatMinute(m int) string {
	h := m / 60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m%60, period)
}
