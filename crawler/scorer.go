package crawler

import (
	"net/url"
	"regexp"
	"strings"
)

// Hint vocabularies for the two link intents. Scored independently; an
// anchor may match neither, one, or both.
var (
	BellHints = []string{"bell schedule", "daily schedule", "dismissal", "release time", "school hours"}
	CalHints  = []string{"calendar", "academic calendar", "school calendar", "events", "ics", "ical"}
)

const (
	hintPoints         = 10
	clockTokenBonus    = 1
	bellQualifierBonus = 5
	feedScanLimit      = 200
)

var clockTokenRe = regexp.MustCompile(`\d\s*(?:am|pm|:\d)`)

// Score awards points per distinct hint phrase contained in the label.
func Score(text string, hints []string) int {
	score := 0
	for _, h := range hints {
		if strings.Contains(text, h) {
			score += hintPoints
		}
	}
	return score
}

// ScoreBell scores a label for bell-schedule intent. Labels that show an
// example clock time get a nudge, and "bell" next to a scheduling
// qualifier catches phrasings outside the literal hint list.
func ScoreBell(text string) int {
	score := Score(text, BellHints)
	if clockTokenRe.MatchString(text) {
		score += clockTokenBonus
	}
	if strings.Contains(text, "bell") &&
		(strings.Contains(text, "sched") || strings.Contains(text, "time") || strings.Contains(text, "hours")) {
		score += bellQualifierBonus
	}
	return score
}

// ScoreCalendar scores a label for academic-calendar intent.
func ScoreCalendar(text string) int {
	return Score(text, CalHints)
}

// Scored is an anchor with its score for one intent.
type Scored struct {
	Anchor
	Score int
}

// TopCandidates ranks anchors by score descending, stable on ties, and
// returns up to k anchors with a positive score.
func TopCandidates(anchors []Anchor, score func(string) int, k int) []Scored {
	var scored []Scored
	for _, a := range anchors {
		if s := score(a.Text); s > 0 {
			scored = append(scored, Scored{Anchor: a, Score: s})
		}
	}
	// Insertion sort keeps equal scores in first-seen order.
	for i := 1; i < len(scored); i++ {
		for j := i; j > 0 && scored[j].Score > scored[j-1].Score; j-- {
			scored[j], scored[j-1] = scored[j-1], scored[j]
		}
	}
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// FindFeedLink returns the first anchor that looks like a direct
// calendar-feed link. This is a plain rule, not a scored ranking.
func FindFeedLink(anchors []Anchor) string {
	for i, a := range anchors {
		if i >= feedScanLimit {
			break
		}
		if isFeedURL(a.URL) || strings.Contains(a.Text, "ics") || strings.Contains(a.Text, "text/calendar") {
			return a.URL
		}
	}
	return ""
}

func isFeedURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	p := strings.ToLower(u.Path)
	return strings.HasSuffix(p, ".ics") || strings.HasSuffix(p, ".ical")
}
