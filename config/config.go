// Package config loads the planner configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"afterschool-planner/scheduler"
)

// Config is the full planner configuration.
type Config struct {
	Schedule  ScheduleConfig    `yaml:"schedule"`
	Window    WindowConfig      `yaml:"window"`
	Crawler   CrawlerConfig     `yaml:"crawler"`
	Export    ExportConfig      `yaml:"export"`
	Districts map[string]string `yaml:"districts"`
}

// ScheduleConfig mirrors scheduler.Params with human-readable times.
type ScheduleConfig struct {
	BufferMinutes          int    `yaml:"buffer_minutes"`
	SessionDurationMinutes int    `yaml:"session_duration_minutes"`
	EarliestStart          string `yaml:"earliest_start"`
	LatestEnd              string `yaml:"latest_end"`
	TargetSessions         int    `yaml:"target_sessions"`
	MinSessions            int    `yaml:"min_sessions"`
}

// WindowConfig is the quarter window, as YYYY-MM-DD dates.
type WindowConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// CrawlerConfig tunes site crawling and the AI oracle.
type CrawlerConfig struct {
	UseAI               bool   `yaml:"use_ai"`
	AIModel             string `yaml:"ai_model"`
	MaxAnchors          int    `yaml:"max_anchors"`
	MaxChildPages       int    `yaml:"max_child_pages"`
	DelayBetweenSchools int    `yaml:"delay_between_schools_seconds"`
	RenderFallback      bool   `yaml:"render_fallback"`
}

// ExportConfig shapes the tabular export.
type ExportConfig struct {
	Columns       []string `yaml:"columns"`
	TitleTemplate string   `yaml:"title_template"`
	NotesTemplate string   `yaml:"notes_template"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	year := time.Now().Year()
	return &Config{
		Schedule: ScheduleConfig{
			BufferMinutes:          15,
			SessionDurationMinutes: 60,
			EarliestStart:          "3:00 pm",
			LatestEnd:              "6:00 pm",
			TargetSessions:         10,
			MinSessions:            8,
		},
		Window: WindowConfig{
			Start: fmt.Sprintf("%d-08-15", year),
			End:   fmt.Sprintf("%d-11-05", year),
		},
		Crawler: CrawlerConfig{
			UseAI:               true,
			MaxAnchors:          80,
			MaxChildPages:       10,
			DelayBetweenSchools: 1,
			RenderFallback:      true,
		},
	}
}

// Load reads and validates a YAML config file. Omitted fields keep the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants the scheduler relies on.
func (c *Config) Validate() error {
	params, err := c.Params()
	if err != nil {
		return err
	}
	if params.EarliestStart >= params.LatestEnd {
		return fmt.Errorf("earliest_start %q must precede latest_end %q", c.Schedule.EarliestStart, c.Schedule.LatestEnd)
	}
	if params.SessionDurationMinutes <= 0 {
		return fmt.Errorf("session_duration_minutes must be positive")
	}
	if params.BufferMinutes < 0 {
		return fmt.Errorf("buffer_minutes must not be negative")
	}
	if params.TargetSessions <= 0 {
		return fmt.Errorf("target_sessions must be positive")
	}
	if _, _, err := c.WindowDates(); err != nil {
		return err
	}
	return nil
}

// Params converts the schedule section into scheduler parameters.
func (c *Config) Params() (scheduler.Params, error) {
	earliest, err := scheduler.ParseClock(c.Schedule.EarliestStart)
	if err != nil {
		return scheduler.Params{}, fmt.Errorf("earliest_start: %w", err)
	}
	latest, err := scheduler.ParseClock(c.Schedule.LatestEnd)
	if err != nil {
		return scheduler.Params{}, fmt.Errorf("latest_end: %w", err)
	}
	return scheduler.Params{
		BufferMinutes:          c.Schedule.BufferMinutes,
		SessionDurationMinutes: c.Schedule.SessionDurationMinutes,
		EarliestStart:          earliest,
		LatestEnd:              latest,
		TargetSessions:         c.Schedule.TargetSessions,
		MinSessions:            c.Schedule.MinSessions,
	}, nil
}

// WindowDates parses the quarter window.
func (c *Config) WindowDates() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.Window.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("window start: %w", err)
	}
	end, err := time.Parse("2006-01-02", c.Window.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("window end: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("window end %s precedes start %s", c.Window.End, c.Window.Start)
	}
	return start, end, nil
}
