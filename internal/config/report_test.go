package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ReportConfig)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *ReportConfig) {}},
		{name: "naive mode", mutate: func(c *ReportConfig) { c.DurationMode = "naive" }},
		{name: "first name keys", mutate: func(c *ReportConfig) { c.AuthorKey = "first_name" }},
		{name: "discussions", mutate: func(c *ReportConfig) { c.CommentSource = "discussions" }},
		{
			name:    "unknown duration mode",
			mutate:  func(c *ReportConfig) { c.DurationMode = "calendar" },
			wantErr: "REPORT_DURATION_MODE",
		},
		{
			name:    "unknown timezone",
			mutate:  func(c *ReportConfig) { c.TimeZone = "Mars/Olympus" },
			wantErr: "REPORT_TIMEZONE",
		},
		{
			name:    "unknown author key",
			mutate:  func(c *ReportConfig) { c.AuthorKey = "username" },
			wantErr: "REPORT_AUTHOR_KEY",
		},
		{
			name:    "unknown comment source",
			mutate:  func(c *ReportConfig) { c.CommentSource = "events" },
			wantErr: "REPORT_COMMENT_SOURCE",
		},
		{name: "holidays", mutate: func(c *ReportConfig) { c.Holidays = []string{"2023-05-01", "2023-12-25"} }},
		{
			name:    "malformed holiday",
			mutate:  func(c *ReportConfig) { c.Holidays = []string{"2023-05-01", "05/02/2023"} },
			wantErr: "REPORT_HOLIDAYS",
		},
		{
			name:    "negative min comment length",
			mutate:  func(c *ReportConfig) { c.MinCommentLength = -1 },
			wantErr: "REPORT_MIN_COMMENT_LENGTH",
		},
		{
			name:    "zero chart width",
			mutate:  func(c *ReportConfig) { c.ChartWidth = 0 },
			wantErr: "chart dimensions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig().Report
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReportConfig_Location(t *testing.T) {
	cfg := validConfig().Report
	cfg.TimeZone = "Europe/Bucharest"

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Bucharest", loc.String())
}

func TestReportConfig_HolidaysFromEnv(t *testing.T) {
	restore := setupAndRestoreEnv(t, map[string]string{"REPORT_HOLIDAYS": "2023-05-01, 2023-06-01,"})
	defer restore()

	cfg := LoadReportConfigFromEnv()
	assert.Equal(t, []string{"2023-05-01", "2023-06-01"}, cfg.Holidays)

	dates, err := cfg.HolidayDates()
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC), dates[1])
}

func TestGitLabConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().GitLab.Validate())
	})

	t.Run("missing scheme", func(t *testing.T) {
		cfg := validConfig().GitLab
		cfg.URL = "gitlab.example.com"
		assert.Error(t, cfg.Validate())
	})

	t.Run("per page above api maximum", func(t *testing.T) {
		cfg := validConfig().GitLab
		cfg.PerPage = 500
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GITLAB_PER_PAGE")
	})

	t.Run("negative concurrency", func(t *testing.T) {
		cfg := validConfig().GitLab
		cfg.FetchConcurrency = -2
		assert.Error(t, cfg.Validate())
	})

	t.Run("non numeric project id from env", func(t *testing.T) {
		restore := setupAndRestoreEnv(t, map[string]string{"GITLAB_PROJECT_IDS": "12,abc"})
		defer restore()

		cfg := LoadGitLabConfigFromEnv()
		assert.Equal(t, []int{12, -1}, cfg.ProjectIDs)
		assert.Error(t, cfg.Validate())
	})
}
