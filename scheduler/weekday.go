package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// weekdays accepts full names, 3-letter abbreviations, and the irregular
// short forms people actually type into rosters.
var weekdays = map[string]time.Weekday{
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"weds":      time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thur":      time.Thursday,
	"thurs":     time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
}

// WeekdayIndex resolves a weekday spelling to its canonical index.
func WeekdayIndex(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return 0, fmt.Errorf("empty weekday: %w", ErrInvalidInput)
	}
	if wd, ok := weekdays[key]; ok {
		return wd, nil
	}
	// Fall back to the first three characters ("Tuesdays", "thu.").
	if len(key) > 3 {
		if wd, ok := weekdays[key[:3]]; ok {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unrecognized weekday %q: %w", s, ErrInvalidInput)
}
