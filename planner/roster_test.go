package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadRoster(t *testing.T) {
	path := writeRoster(t, `Program,School URL,Weekday,Bell Schedule URL,School Calendar URL,District,District ICS
Mission Elementary,https://mission.example.org,Tuesday,none,null,Fremont Unified,webcal://district.example.org/cal.ics
Valley Middle,https://valley.example.org,Wed,,https://valley.example.org/calendar,,
`)

	schools, err := LoadRoster(path)
	require.NoError(t, err)
	require.Len(t, schools, 2)

	mission := schools[0]
	assert.Equal(t, "Mission Elementary", mission.Name)
	assert.Equal(t, "https://mission.example.org", mission.HomepageURL)
	assert.Equal(t, "Tuesday", mission.Weekday)
	// Placeholder cells count as blank.
	assert.Empty(t, mission.BellURL)
	assert.Empty(t, mission.CalURL)
	assert.Equal(t, "Fremont Unified", mission.District)
	assert.Equal(t, "https://district.example.org/cal.ics", mission.DistrictFeedURL)

	valley := schools[1]
	assert.Equal(t, "Wed", valley.Weekday)
	assert.Equal(t, "https://valley.example.org/calendar", valley.CalURL)
	assert.Empty(t, valley.District)
}

func TestLoadRoster_SkipsNamelessRows(t *testing.T) {
	path := writeRoster(t, `Program,School URL,Weekday
Mission Elementary,https://mission.example.org,Tuesday
,https://orphan.example.org,Monday
none,https://placeholder.example.org,Monday
`)

	schools, err := LoadRoster(path)
	require.NoError(t, err)
	require.Len(t, schools, 1)
	assert.Equal(t, "Mission Elementary", schools[0].Name)
}

func TestLoadRoster_IgnoresUnknownColumns(t *testing.T) {
	path := writeRoster(t, `Program,Notes,Weekday
Mission Elementary,launch next quarter,Tuesday
`)

	schools, err := LoadRoster(path)
	require.NoError(t, err)
	require.Len(t, schools, 1)
	assert.Equal(t, "Tuesday", schools[0].Weekday)
}

func TestLoadRoster_MissingFile(t *testing.T) {
	_, err := LoadRoster(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
