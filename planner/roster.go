// Package planner runs the per-school pipeline from roster row to
// planned sessions.
package planner

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"afterschool-planner/noschool"
)

// School is one roster row.
type School struct {
	Name            string
	HomepageURL     string
	Weekday         string
	BellURL         string
	CalURL          string
	District        string
	DistrictFeedURL string
}

// rosterHeaders maps the spreadsheet-friendly column names to struct
// fields. Matching is case-insensitive after trimming.
var rosterHeaders = map[string]func(*School, string){
	"program":             func(s *School, v string) { s.Name = v },
	"school":              func(s *School, v string) { s.Name = v },
	"school url":          func(s *School, v string) { s.HomepageURL = v },
	"weekday":             func(s *School, v string) { s.Weekday = v },
	"bell schedule url":   func(s *School, v string) { s.BellURL = v },
	"school calendar url": func(s *School, v string) { s.CalURL = v },
	"district":            func(s *School, v string) { s.District = v },
	"district ics":        func(s *School, v string) { s.DistrictFeedURL = v },
}

// LoadRoster reads a roster CSV. The header row names columns with the
// spreadsheet-friendly labels; unrecognized columns are ignored, and
// placeholder cells ("none", "null", "nan") count as blank. Rows without
// a school name are skipped.
func LoadRoster(path string) ([]School, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("roster %s is empty", path)
	}

	setters := make([]func(*School, string), len(records[0]))
	for i, h := range records[0] {
		setters[i] = rosterHeaders[strings.ToLower(strings.TrimSpace(h))]
	}

	var schools []School
	for _, record := range records[1:] {
		var s School
		for i, cell := range record {
			if i >= len(setters) || setters[i] == nil {
				continue
			}
			setters[i](&s, cleanCell(cell))
		}
		if s.Name == "" {
			continue
		}
		s.DistrictFeedURL = noschool.NormalizeFeedURL(s.DistrictFeedURL)
		schools = append(schools, s)
	}
	return schools, nil
}

// cleanCell trims a cell and blanks the placeholder strings spreadsheet
// exports leave behind.
func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "none", "null", "nan":
		return ""
	}
	return v
}
