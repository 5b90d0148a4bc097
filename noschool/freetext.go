package noschool

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"afterschool-planner/htmltext"
)

// monthTokenRe matches "Nov 11", "November 11, 2024", "Dec. 23" style
// tokens inside calendar text lines.
var monthTokenRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2})(?:,\s*(\d{4}))?\b`)

var monthIndex = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Candidate pairs a date token with the calendar line it came from.
type Candidate struct {
	Line  string
	Token string
}

// maxClassifierCandidates bounds what gets sent to a DateClassifier.
const maxClassifierCandidates = 50

// DateClassifier decides which (line, token) candidates really mean "no
// after-school class that day" and returns the chosen dates.
type DateClassifier interface {
	ClassifyNoSchool(ctx context.Context, candidates []Candidate) ([]time.Time, error)
}

// ScanFreeText collects date-token candidates from the visible lines of
// a calendar page that mention a no-school phrase.
func ScanFreeText(rawHTML string) []Candidate {
	var out []Candidate
	for _, line := range htmltext.VisibleLines(rawHTML) {
		if !hasNoSchoolTerm(line) {
			continue
		}
		for _, m := range monthTokenRe.FindAllString(line, -1) {
			out = append(out, Candidate{Line: line, Token: m})
		}
	}
	return out
}

// ParseToken resolves a date token against the quarter window. Year-less
// tokens try the window's starting year and the following year, keeping
// the first that lands inside the window, else the starting year.
func ParseToken(token string, windowStart, windowEnd time.Time) (time.Time, bool) {
	m := monthTokenRe.FindStringSubmatch(token)
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthIndex[strings.ToLower(m[1])]
	if !ok {
		return time.Time{}, false
	}
	dayNum, err := strconv.Atoi(m[2])
	if err != nil || dayNum < 1 || dayNum > 31 {
		return time.Time{}, false
	}

	if m[3] != "" {
		year, err := strconv.Atoi(m[3])
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(year, month, dayNum, 0, 0, 0, 0, time.UTC), true
	}

	for _, year := range []int{windowStart.Year(), windowStart.Year() + 1} {
		d := time.Date(year, month, dayNum, 0, 0, 0, 0, time.UTC)
		if !d.Before(day(windowStart)) && !d.After(day(windowEnd)) {
			return d, true
		}
	}
	return time.Date(windowStart.Year(), month, dayNum, 0, 0, 0, 0, time.UTC), true
}

// ClassifyCandidates turns candidates into a date set, delegating to the
// classifier when one is available. Classifier failure falls back to
// accepting every candidate's parsed token.
func ClassifyCandidates(ctx context.Context, candidates []Candidate, classifier DateClassifier, windowStart, windowEnd time.Time) *DateSet {
	out := NewDateSet()
	if len(candidates) == 0 {
		return out
	}

	if classifier != nil {
		sample := candidates
		if len(sample) > maxClassifierCandidates {
			sample = sample[:maxClassifierCandidates]
		}
		if dates, err := classifier.ClassifyNoSchool(ctx, sample); err == nil {
			for _, d := range dates {
				out.Add(d)
			}
			return out
		}
	}

	for _, c := range candidates {
		if d, ok := ParseToken(c.Token, windowStart, windowEnd); ok {
			out.Add(d)
		}
	}
	return out
}
