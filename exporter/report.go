package exporter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"afterschool-planner/scheduler"
)

// SchoolSummary is the per-school roll-up row.
type SchoolSummary struct {
	School       string
	StartDate    time.Time
	EndDate      time.Time
	Start        scheduler.ClockTime
	End          scheduler.ClockTime
	Target       int
	Scheduled    int
	BelowMinimum bool
	SessionDates []time.Time
	NoClassDates []time.Time
}

// Summarize groups sessions by school, in first-session order. noClass
// holds the observed no-class dates per school within the quarter
// window; it may be nil. Schools scheduling fewer than minSessions get
// an advisory flag, never an error.
func Summarize(sessions []scheduler.Session, noClass map[string][]time.Time, target, minSessions int) []SchoolSummary {
	index := make(map[string]int)
	var summaries []SchoolSummary

	for _, s := range sessions {
		i, ok := index[s.School]
		if !ok {
			i = len(summaries)
			index[s.School] = i
			summaries = append(summaries, SchoolSummary{
				School:       s.School,
				StartDate:    s.Date,
				Start:        s.Start,
				End:          s.End,
				Target:       target,
				NoClassDates: noClass[s.School],
			})
		}
		summaries[i].EndDate = s.Date
		summaries[i].Scheduled++
		summaries[i].SessionDates = append(summaries[i].SessionDates, s.Date)
	}

	for i := range summaries {
		summaries[i].BelowMinimum = summaries[i].Scheduled < minSessions
	}
	return summaries
}

var (
	reportTitleStyle  = lipgloss.NewStyle().Bold(true)
	reportHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	reportCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// RenderReport renders the roll-up as a printable table.
func RenderReport(summaries []SchoolSummary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return reportHeaderStyle
			}
			return reportCellStyle
		}).
		Headers("School", "Start Date", "End Date", "Start Time", "End Time", "Target", "Scheduled", "Below Min", "No-Class Dates")

	for _, s := range summaries {
		t.Row(
			s.School,
			s.StartDate.Format("01/02/2006"),
			s.EndDate.Format("01/02/2006"),
			s.Start.Format(),
			s.End.Format(),
			fmt.Sprintf("%d", s.Target),
			fmt.Sprintf("%d", s.Scheduled),
			yesNo(s.BelowMinimum),
			formatDates(s.NoClassDates),
		)
	}

	return reportTitleStyle.Render("After-School Planner Summary") + "\n" + t.Render() + "\n"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatDates(dates []time.Time) string {
	parts := make([]string, 0, len(dates))
	for _, d := range dates {
		parts = append(parts, d.Format("01/02/2006"))
	}
	return strings.Join(parts, "; ")
}
