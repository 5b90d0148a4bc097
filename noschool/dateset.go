package noschool

import (
	"sort"
	"time"
)

const dayKey = "2006-01-02"

// DateSet is a set of calendar dates. Zero value is not usable; build
// with NewDateSet.
type DateSet struct {
	days map[string]struct{}
}

// NewDateSet returns an empty set.
func NewDateSet() *DateSet {
	return &DateSet{days: make(map[string]struct{})}
}

// Add inserts the date (time-of-day ignored).
func (s *DateSet) Add(d time.Time) {
	s.days[d.Format(dayKey)] = struct{}{}
}

// AddSpan inserts every date in the inclusive range [start, end].
func (s *DateSet) AddSpan(start, end time.Time) {
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		s.Add(d)
	}
}

// Contains reports whether the set holds the date.
func (s *DateSet) Contains(d time.Time) bool {
	_, ok := s.days[d.Format(dayKey)]
	return ok
}

// Len returns the number of dates in the set.
func (s *DateSet) Len() int {
	return len(s.days)
}

// Dates returns the dates in ascending order, at midnight UTC.
func (s *DateSet) Dates() []time.Time {
	keys := make([]string, 0, len(s.days))
	for k := range s.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		d, err := time.Parse(dayKey, k)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Within returns the subset of dates inside [start, end], ascending.
func (s *DateSet) Within(start, end time.Time) []time.Time {
	var out []time.Time
	for _, d := range s.Dates() {
		if !d.Before(start) && !d.After(end) {
			out = append(out, d)
		}
	}
	return out
}
