package noschool

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/mmcdole/gofeed"
)

// icsTimeLayouts covers the DTSTART/DTEND value shapes seen in school
// district feeds.
var icsTimeLayouts = []string{
	"20060102T150405Z",
	"20060102T150405",
	"20060102",
}

// NormalizeFeedURL rewrites webcal:// links to https:// so they can be
// fetched like any other URL.
func NormalizeFeedURL(u string) string {
	trimmed := strings.TrimSpace(u)
	if strings.HasPrefix(strings.ToLower(trimmed), "webcal://") {
		return "https://" + trimmed[len("webcal://"):]
	}
	return trimmed
}

// ParseICSDates extracts no-school dates from an ICS document. Events
// whose title matches a no-school term or holiday name contribute every
// date in their day span; multi-day events expand to all contained days.
// Malformed documents or events degrade to whatever parsed cleanly.
func ParseICSDates(data string) *DateSet {
	out := NewDateSet()
	cal, err := ics.ParseCalendar(strings.NewReader(data))
	if err != nil {
		return out
	}

	for _, event := range cal.Events() {
		if event == nil {
			continue
		}
		summary := event.GetProperty(ics.ComponentPropertySummary)
		if summary == nil || !isNoSchoolTitle(summary.Value) {
			continue
		}

		startProp := event.GetProperty(ics.ComponentPropertyDtStart)
		if startProp == nil {
			continue
		}
		start, ok := parseICSTime(startProp.Value)
		if !ok {
			continue
		}

		end := start
		if endProp := event.GetProperty(ics.ComponentPropertyDtEnd); endProp != nil {
			if e, ok := parseICSTime(endProp.Value); ok {
				end = e
				// All-day DTEND is exclusive per RFC 5545.
				if len(endProp.Value) == len("20060102") {
					end = end.AddDate(0, 0, -1)
				}
			}
		}
		if end.Before(start) {
			end = start
		}

		out.AddSpan(day(start), day(end))
	}
	return out
}

// ParseRSSDates extracts no-school dates from an RSS/Atom event feed.
// Only items carrying a parseable published/updated date contribute.
func ParseRSSDates(data string) *DateSet {
	out := NewDateSet()
	feed, err := gofeed.NewParser().ParseString(data)
	if err != nil {
		return out
	}

	for _, item := range feed.Items {
		if item == nil || !isNoSchoolTitle(item.Title) {
			continue
		}
		when := item.PublishedParsed
		if when == nil {
			when = item.UpdatedParsed
		}
		if when == nil {
			continue
		}
		out.Add(day(*when))
	}
	return out
}

// looksLikeICS sniffs whether feed content is an iCalendar document.
func looksLikeICS(feedURL, data string) bool {
	if strings.Contains(strings.ToLower(feedURL), ".ics") {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(data), "BEGIN:VCALENDAR")
}

func parseICSTime(value string) (time.Time, bool) {
	for _, layout := range icsTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
