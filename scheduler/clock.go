package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// ClockTime is a time of day in minutes since midnight.
type ClockTime int

// clockLayouts covers the clock spellings seen on bell-schedule pages.
// Input is lowercased and whitespace-normalized before matching.
var clockLayouts = []string{
	"3:04 pm",
	"3:04pm",
	"3 pm",
	"3pm",
	"15:04",
	"15:04:05",
}

// ParseClock parses free-form clock text like "3:05 pm" or "15:05".
func ParseClock(s string) (ClockTime, error) {
	norm := strings.ToLower(strings.Join(strings.Fields(s), " "))
	if norm == "" {
		return 0, fmt.Errorf("empty clock time")
	}
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, norm)
		if err != nil {
			continue
		}
		return ClockTime(t.Hour()*60 + t.Minute()), nil
	}
	return 0, fmt.Errorf("unparseable clock time %q", s)
}

// MustClock is a test/config helper for known-good clock strings.
func MustClock(s string) ClockTime {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Format renders the time like "3:05 PM".
func (c ClockTime) Format() string {
	h := int(c) / 60
	m := int(c) % 60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, suffix)
}

// At combines the clock time with a calendar date.
func (c ClockTime) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(c)/60, int(c)%60, 0, 0, date.Location())
}
