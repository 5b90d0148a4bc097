package noschool

import "strings"

// noSchoolTerms are phrases that mean no after-school class happens that
// day. Minimum/early-release days are treated as no-class too.
var noSchoolTerms = []string{
	"no school", "school closed", "schools closed", "holiday", "break",
	"professional development", "professional learning", "staff development",
	"inservice", "in-service", "teacher work day", "workday", "pupil free",
	"conference (no school)", "conference day", "parent-teacher conference",
	"minimum day", "early release",
}

// holidayNames catches feed events titled with just the holiday, with no
// "no school" phrasing at all.
var holidayNames = []string{
	"labor day", "veterans day", "thanksgiving", "thanksgiving break",
	"winter break", "winter recess", "spring break", "fall break",
	"mlk day", "martin luther king", "presidents day", "memorial day",
	"independence day", "new year", "christmas", "rosh hashanah",
	"yom kippur", "diwali", "easter monday", "good friday", "chinese new year",
}

// isNoSchoolTitle reports whether an event title marks a no-class day.
func isNoSchoolTitle(title string) bool {
	title = strings.ToLower(strings.TrimSpace(title))
	for _, term := range noSchoolTerms {
		if strings.Contains(title, term) {
			return true
		}
	}
	for _, name := range holidayNames {
		if strings.Contains(title, name) {
			return true
		}
	}
	return false
}

// hasNoSchoolTerm reports whether a free-text line mentions a no-school
// phrase (holiday names alone are too loose for arbitrary page text).
func hasNoSchoolTerm(line string) bool {
	line = strings.ToLower(line)
	for _, term := range noSchoolTerms {
		if strings.Contains(line, term) {
			return true
		}
	}
	return false
}
