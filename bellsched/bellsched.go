// Package bellsched extracts a school's dismissal time from a
// bell-schedule page.
package bellsched

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"afterschool-planner/htmltext"
)

var (
	timeRe    = regexp.MustCompile(`\b(1[0-2]|0?[1-9]):([0-5][0-9])\s*(am|pm)\b`)
	altTimeRe = regexp.MustCompile(`\b(1[0-2]|0?[1-9])\s*(am|pm)\b`)
)

// rowKeywords gate table rows; lineKeywords gate plain text lines. The
// weekday abbreviations catch per-day schedule tables.
var (
	rowKeywords = []string{
		"dismissal", "release", "end of day", "school ends", "regular day",
		"mon", "tue", "wed", "thu", "fri", "minimum day", "early release",
	}
	lineKeywords = []string{
		"dismissal", "release", "end of day", "school hours", "minimum day",
	}
)

// Candidate is one qualifying line with the clock time matched in it.
type Candidate struct {
	Line string
	Time string
}

// maxOracleCandidates bounds what gets sent to a DismissalPicker.
const maxOracleCandidates = 15

// DismissalPicker chooses the regular dismissal time for a weekday from
// scanned candidates. A failed or empty answer falls back to the rules.
type DismissalPicker interface {
	PickDismissal(ctx context.Context, weekday string, candidates []Candidate) (string, error)
}

// ScanCandidates collects (line, time) candidates from table rows and
// plain text lines. A line appearing in both passes shows up twice;
// duplicates are tolerated, not deduplicated.
func ScanCandidates(rawHTML string) []Candidate {
	if rawHTML == "" {
		return nil
	}

	var out []Candidate

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err == nil {
		doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.ToLower(strings.Join(strings.Fields(cell.Text()), " ")))
			})
			if len(cells) == 0 {
				return
			}
			row := strings.Join(cells, " ")
			if containsAny(row, rowKeywords) {
				if t := matchTime(row); t != "" {
					out = append(out, Candidate{Line: row, Time: t})
				}
			}
		})
	}

	for _, line := range htmltext.VisibleLines(rawHTML) {
		line = strings.ToLower(line)
		if containsAny(line, lineKeywords) {
			if t := matchTime(line); t != "" {
				out = append(out, Candidate{Line: line, Time: t})
			}
		}
	}

	return out
}

// PickDismissal selects one time from the candidates. With a picker and
// a known weekday it delegates to the picker first; otherwise (or when
// the picker fails) the first candidate mentioning regular, dismissal,
// or release wins, else the first candidate in scan order. Empty string
// means no candidates; the caller substitutes its default.
func PickDismissal(ctx context.Context, candidates []Candidate, weekday string, picker DismissalPicker) string {
	if len(candidates) == 0 {
		return ""
	}

	if picker != nil && weekday != "" {
		top := candidates
		if len(top) > maxOracleCandidates {
			top = top[:maxOracleCandidates]
		}
		if t, err := picker.PickDismissal(ctx, weekday, top); err == nil && t != "" {
			return t
		}
	}

	for _, c := range candidates {
		if strings.Contains(c.Line, "regular") || strings.Contains(c.Line, "dismissal") || strings.Contains(c.Line, "release") {
			return c.Time
		}
	}
	return candidates[0].Time
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func matchTime(s string) string {
	if m := timeRe.FindString(s); m != "" {
		return m
	}
	return altTimeRe.FindString(s)
}
