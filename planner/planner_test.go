package planner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"afterschool-planner/config"
	"afterschool-planner/crawler"
	"afterschool-planner/noschool"
	"afterschool-planner/scheduler"
)

const bellPage = `<html><body>
<table><tr><td>Regular Day Dismissal: 3:10 pm</td></tr></table>
</body></html>`

// laborDayICS marks Monday 2024-09-02 as a holiday.
var laborDayICS = strings.Join([]string{
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//test//EN",
	"BEGIN:VEVENT",
	"UID:labor-day@test",
	"SUMMARY:Labor Day - No School",
	"DTSTART;VALUE=DATE:20240902",
	"DTEND;VALUE=DATE:20240903",
	"END:VEVENT",
	"END:VCALENDAR",
}, "\r\n")

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Window.Start = "2024-08-15"
	cfg.Window.End = "2024-10-31"
	cfg.Schedule.TargetSessions = 3
	cfg.Crawler.DelayBetweenSchools = 0
	return cfg
}

func newTestPlanner(cfg *config.Config) *Planner {
	log := zap.NewNop().Sugar()
	fetcher := crawler.NewFetcher(nil, log)
	cr := crawler.New(fetcher, nil, crawler.Options{}, log)
	extractor := noschool.NewExtractor(fetcher, nil, log)
	return New(cfg, cr, fetcher, extractor, nil, log)
}

func newSchoolSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/bell", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(bellPage))
	})
	mux.HandleFunc("/district.ics", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(laborDayICS))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRun_OverridesAndFeed(t *testing.T) {
	server := newSchoolSite(t)
	cfg := testConfig()
	p := newTestPlanner(cfg)

	schools := []School{{
		Name:    "Mission Elementary",
		Weekday: "Monday",
		BellURL: server.URL + "/bell",
		// The calendar override points at an ICS file, so it acts as a
		// feed instead of a page to scan.
		CalURL: server.URL + "/district.ics",
	}}

	sessions, results, err := p.Run(context.Background(), schools)
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	require.NoError(t, res.Err)
	assert.Equal(t, "3:10 pm", res.Dismissal)
	assert.Equal(t, server.URL+"/district.ics", res.FeedURL)
	assert.Empty(t, res.CalURL)
	assert.Equal(t, 3, res.Sessions)
	require.Len(t, res.NoClassDates, 1)
	assert.Equal(t, "2024-09-02", res.NoClassDates[0].Format("2006-01-02"))

	// Labor Day Monday is skipped.
	require.Len(t, sessions, 3)
	var dates []string
	for _, s := range sessions {
		dates = append(dates, s.Date.Format("2006-01-02"))
		assert.Equal(t, scheduler.MustClock("3:25 pm"), s.Start)
		assert.Equal(t, scheduler.MustClock("4:25 pm"), s.End)
	}
	assert.Equal(t, []string{"2024-08-19", "2024-08-26", "2024-09-09"}, dates)
}

func TestRun_DefaultDismissalAndDistrictMap(t *testing.T) {
	server := newSchoolSite(t)
	cfg := testConfig()
	cfg.Districts = map[string]string{"Fremont Unified": server.URL + "/district.ics"}
	p := newTestPlanner(cfg)

	schools := []School{{
		Name:        "Valley Middle",
		HomepageURL: server.URL + "/missing",
		Weekday:     "Monday",
		District:    "Fremont Unified",
	}}

	sessions, results, err := p.Run(context.Background(), schools)
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	require.NoError(t, res.Err)
	assert.Equal(t, "3:00 pm", res.Dismissal)
	assert.Equal(t, server.URL+"/district.ics", res.DistrictFeedURL)
	require.Len(t, res.NoClassDates, 1)

	require.Len(t, sessions, 3)
	assert.Equal(t, "2024-08-19", sessions[0].Date.Format("2006-01-02"))
}

func TestRun_BadWeekdayDoesNotAbortBatch(t *testing.T) {
	server := newSchoolSite(t)
	p := newTestPlanner(testConfig())

	schools := []School{
		{Name: "Broken Academy", Weekday: "Someday", BellURL: server.URL + "/bell"},
		{Name: "Mission Elementary", Weekday: "Monday", BellURL: server.URL + "/bell"},
	}

	sessions, results, err := p.Run(context.Background(), schools)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.ErrorIs(t, results[0].Err, scheduler.ErrInvalidInput)
	assert.Equal(t, 0, results[0].Sessions)
	require.NoError(t, results[1].Err)
	assert.Equal(t, 3, results[1].Sessions)
	assert.Len(t, sessions, 3)
}

func TestNoClassBySchool(t *testing.T) {
	server := newSchoolSite(t)
	cfg := testConfig()
	p := newTestPlanner(cfg)

	schools := []School{{
		Name:    "Mission Elementary",
		Weekday: "Monday",
		BellURL: server.URL + "/bell",
		CalURL:  server.URL + "/district.ics",
	}}
	_, results, err := p.Run(context.Background(), schools)
	require.NoError(t, err)

	byScho := NoClassBySchool(results)
	require.Contains(t, byScho, "Mission Elementary")
	assert.Len(t, byScho["Mission Elementary"], 1)
}
