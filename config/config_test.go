package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afterschool-planner/scheduler"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
schedule:
  buffer_minutes: 20
  session_duration_minutes: 90
  earliest_start: "2:30 pm"
  latest_end: "5:30 pm"
  target_sessions: 12
  min_sessions: 10
window:
  start: "2024-08-15"
  end: "2024-11-05"
crawler:
  use_ai: false
  max_anchors: 40
districts:
  Fremont Unified: https://district.example.org/cal.ics
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	params, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, 20, params.BufferMinutes)
	assert.Equal(t, 90, params.SessionDurationMinutes)
	assert.Equal(t, scheduler.MustClock("2:30 pm"), params.EarliestStart)
	assert.Equal(t, 12, params.TargetSessions)

	assert.False(t, cfg.Crawler.UseAI)
	assert.Equal(t, 40, cfg.Crawler.MaxAnchors)
	// Unset fields keep their defaults.
	assert.Equal(t, 10, cfg.Crawler.MaxChildPages)
	assert.Equal(t, "https://district.example.org/cal.ics", cfg.Districts["Fremont Unified"])

	start, end, err := cfg.WindowDates()
	require.NoError(t, err)
	assert.True(t, start.Before(end))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_WindowOrder(t *testing.T) {
	cfg := Default()
	cfg.Window.Start = "2024-11-05"
	cfg.Window.End = "2024-08-15"
	assert.Error(t, cfg.Validate())
}

func TestValidate_TimeOrder(t *testing.T) {
	cfg := Default()
	cfg.Schedule.EarliestStart = "6:00 pm"
	cfg.Schedule.LatestEnd = "3:00 pm"
	assert.Error(t, cfg.Validate())
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
