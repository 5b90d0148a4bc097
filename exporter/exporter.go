// Package exporter renders planned sessions as tabular, report, and
// calendar-file output.
package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"text/template"

	"afterschool-planner/scheduler"
)

// DefaultColumns is the facility-booking export layout.
var DefaultColumns = []string{"School", "Date", "Start Time", "End Time", "Title", "Notes"}

const (
	defaultTitleTemplate = "After-School Program - {{.School}}"
	defaultNotesTemplate = "Dismissal: {{.Dismissal}}"
)

// Options configures the tabular export.
type Options struct {
	Columns       []string
	TitleTemplate string
	NotesTemplate string
}

// templateVars are the per-session variables available to the Title and
// Notes templates.
type templateVars struct {
	School        string
	Dismissal     string
	SessionIndex  int
	TotalSessions int
}

// Rows renders sessions into records under the configured column set,
// header row first. Unknown column names yield empty cells.
func Rows(sessions []scheduler.Session, opts Options) ([][]string, error) {
	columns := opts.Columns
	if len(columns) == 0 {
		columns = DefaultColumns
	}

	titleTpl, err := parseTemplate("title", opts.TitleTemplate, defaultTitleTemplate)
	if err != nil {
		return nil, err
	}
	notesTpl, err := parseTemplate("notes", opts.NotesTemplate, defaultNotesTemplate)
	if err != nil {
		return nil, err
	}

	rows := [][]string{columns}
	total := len(sessions)
	for i, s := range sessions {
		vars := templateVars{
			School:        s.School,
			Dismissal:     s.Dismissal.Format(),
			SessionIndex:  i + 1,
			TotalSessions: total,
		}
		title, err := render(titleTpl, vars)
		if err != nil {
			return nil, err
		}
		notes, err := render(notesTpl, vars)
		if err != nil {
			return nil, err
		}

		values := map[string]string{
			"School":     s.School,
			"Date":       s.Date.Format("01/02/2006"),
			"Start Time": s.Start.Format(),
			"End Time":   s.End.Format(),
			"Title":      title,
			"Notes":      notes,
		}
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = values[col]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV writes records to a CSV file.
func WriteCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func parseTemplate(name, text, fallback string) (*template.Template, error) {
	if text == "" {
		text = fallback
	}
	tpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", name, err)
	}
	return tpl, nil
}

func render(tpl *template.Template, vars templateVars) (string, error) {
	var b strings.Builder
	if err := tpl.Execute(&b, vars); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", tpl.Name(), err)
	}
	return b.String(), nil
}
