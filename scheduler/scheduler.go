package scheduler

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput marks caller data-quality problems (bad weekday or
// dismissal strings). Everything else in the pipeline degrades softly.
var ErrInvalidInput = errors.New("invalid input")

// Params holds the knobs for weekly session generation.
type Params struct {
	BufferMinutes          int
	SessionDurationMinutes int
	EarliestStart          ClockTime
	LatestEnd              ClockTime
	TargetSessions         int
	MinSessions            int
}

// Session is one planned after-school session.
type Session struct {
	School    string
	Date      time.Time
	Start     ClockTime
	End       ClockTime
	Dismissal ClockTime
}

// NoSchoolSet reports whether a date is excluded from scheduling.
type NoSchoolSet interface {
	Contains(d time.Time) bool
}

// ComputeSessions generates the weekly session list for one school.
// The session window is clipped to [EarliestStart, LatestEnd]: the start
// never precedes EarliestStart even for early dismissals, and a late
// dismissal shifts the whole window earlier rather than shortening it,
// with the end hard-capped at LatestEnd.
func ComputeSessions(school, weekday, dismissal string, quarterStart, quarterEnd time.Time, params Params, noSchool NoSchoolSet) ([]Session, error) {
	wd, err := WeekdayIndex(weekday)
	if err != nil {
		return nil, err
	}

	dis, err := ParseClock(dismissal)
	if err != nil {
		return nil, fmt.Errorf("unparseable dismissal time %q: %w", dismissal, ErrInvalidInput)
	}

	start := dis + ClockTime(params.BufferMinutes)
	if start < params.EarliestStart {
		start = params.EarliestStart
	}
	end := start + ClockTime(params.SessionDurationMinutes)
	if end > params.LatestEnd {
		end = params.LatestEnd
		latestStart := params.LatestEnd - ClockTime(params.SessionDurationMinutes)
		if start > latestStart {
			start = latestStart
		}
	}

	d := Midnight(quarterStart)
	quarterEnd = Midnight(quarterEnd)
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}

	var sessions []Session
	for !d.After(quarterEnd) && len(sessions) < params.TargetSessions {
		if noSchool == nil || !noSchool.Contains(d) {
			sessions = append(sessions, Session{
				School:    school,
				Date:      d,
				Start:     start,
				End:       end,
				Dismissal: dis,
			})
		}
		d = d.AddDate(0, 0, 7)
	}

	return sessions, nil
}

// Midnight normalizes a timestamp to midnight UTC so dates compare cleanly.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
