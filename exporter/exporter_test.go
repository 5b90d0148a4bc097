package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afterschool-planner/scheduler"
)

func sampleSessions(t *testing.T) []scheduler.Session {
	t.Helper()
	date := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}
	return []scheduler.Session{
		{School: "Mission Elementary", Date: date("2024-08-20"), Start: scheduler.MustClock("3:00 pm"), End: scheduler.MustClock("4:00 pm"), Dismissal: scheduler.MustClock("2:45 pm")},
		{School: "Mission Elementary", Date: date("2024-08-27"), Start: scheduler.MustClock("3:00 pm"), End: scheduler.MustClock("4:00 pm"), Dismissal: scheduler.MustClock("2:45 pm")},
		{School: "Valley Middle", Date: date("2024-08-21"), Start: scheduler.MustClock("3:30 pm"), End: scheduler.MustClock("4:30 pm"), Dismissal: scheduler.MustClock("3:15 pm")},
	}
}

func TestRows_Defaults(t *testing.T) {
	rows, err := Rows(sampleSessions(t), Options{})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, DefaultColumns, rows[0])
	assert.Equal(t, []string{
		"Mission Elementary",
		"08/20/2024",
		"3:00 PM",
		"4:00 PM",
		"After-School Program - Mission Elementary",
		"Dismissal: 2:45 PM",
	}, rows[1])
}

func TestRows_CustomColumnsAndTemplates(t *testing.T) {
	rows, err := Rows(sampleSessions(t), Options{
		Columns:       []string{"Date", "Title", "Room"},
		TitleTemplate: "{{.School}} ({{.SessionIndex}}/{{.TotalSessions}})",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Title", "Room"}, rows[0])
	assert.Equal(t, "Mission Elementary (1/3)", rows[1][1])
	// Unknown columns render as empty cells.
	assert.Equal(t, "", rows[1][2])
}

func TestRows_BadTemplate(t *testing.T) {
	_, err := Rows(sampleSessions(t), Options{TitleTemplate: "{{.School"})
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.csv")
	rows, err := Rows(sampleSessions(t), Options{})
	require.NoError(t, err)
	require.NoError(t, WriteCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Join(DefaultColumns, ","), lines[0])
}

func TestSummarize(t *testing.T) {
	noClass := map[string][]time.Time{
		"Mission Elementary": {time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC)},
	}
	summaries := Summarize(sampleSessions(t), noClass, 10, 2)
	require.Len(t, summaries, 2)

	mission := summaries[0]
	assert.Equal(t, "Mission Elementary", mission.School)
	assert.Equal(t, 2, mission.Scheduled)
	assert.Equal(t, 10, mission.Target)
	assert.False(t, mission.BelowMinimum)
	assert.Equal(t, "2024-08-20", mission.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-08-27", mission.EndDate.Format("2006-01-02"))
	assert.Len(t, mission.NoClassDates, 1)

	valley := summaries[1]
	assert.Equal(t, 1, valley.Scheduled)
	assert.True(t, valley.BelowMinimum)
}

func TestRenderReport(t *testing.T) {
	out := RenderReport(Summarize(sampleSessions(t), nil, 10, 2))
	assert.Contains(t, out, "Mission Elementary")
	assert.Contains(t, out, "Scheduled")
	assert.Contains(t, out, "yes")
}

func TestWriteICS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.ics")
	require.NoError(t, WriteICS(path, sampleSessions(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Equal(t, 3, strings.Count(body, "BEGIN:VEVENT"))
	assert.Contains(t, body, "After-School Program - Mission Elementary")
}

func TestSessionEventID_Stable(t *testing.T) {
	sessions := sampleSessions(t)
	assert.Equal(t, sessionEventID(sessions[0]), sessionEventID(sessions[0]))
	assert.NotEqual(t, sessionEventID(sessions[0]), sessionEventID(sessions[1]))
}
