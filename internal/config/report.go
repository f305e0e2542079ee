package config

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// ReportConfig holds options for the review metrics engine and report output.
type ReportConfig struct {
	// DurationMode is "business" (weekend-aware) or "naive" (plain difference).
	DurationMode string
	// TimeZone decides calendar days and weekends.
	TimeZone string
	// ApprovalMatch is "exact" or "contains".
	ApprovalMatch string
	// AuthorKey is "full_name" or "first_name".
	AuthorKey string
	// CommentSource is "notes" or "discussions".
	CommentSource string
	// Holidays are extra non-workdays, YYYY-MM-DD, for business-day mode.
	Holidays []string
	// MinCommentLength is the trimmed body length a comment needs to count.
	MinCommentLength int
	// IncludeDelta enables the month-to-date vs year-to-date comparison.
	IncludeDelta bool
	// ChartDir is where cmd/report writes chart images.
	ChartDir    string
	ChartWidth  int
	ChartHeight int
}

// LoadReportConfigFromEnv loads report configuration from environment variables.
func LoadReportConfigFromEnv() ReportConfig {
	return ReportConfig{
		DurationMode:     GetEnv("REPORT_DURATION_MODE", "business"),
		TimeZone:         GetEnv("REPORT_TIMEZONE", "UTC"),
		ApprovalMatch:    GetEnv("REPORT_APPROVAL_MATCH", "exact"),
		AuthorKey:        GetEnv("REPORT_AUTHOR_KEY", "full_name"),
		CommentSource:    GetEnv("REPORT_COMMENT_SOURCE", "notes"),
		Holidays:         GetEnvList("REPORT_HOLIDAYS", nil),
		MinCommentLength: GetEnvInt("REPORT_MIN_COMMENT_LENGTH", 10),
		IncludeDelta:     GetEnvBool("REPORT_INCLUDE_DELTA", true),
		ChartDir:         GetEnv("REPORT_CHART_DIR", "."),
		ChartWidth:       GetEnvInt("REPORT_CHART_WIDTH", 600),
		ChartHeight:      GetEnvInt("REPORT_CHART_HEIGHT", 400),
	}
}

// Location resolves TimeZone.
func (c ReportConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}
	return loc, nil
}

// HolidayDates parses Holidays.
func (c ReportConfig) HolidayDates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(c.Holidays))
	for _, h := range c.Holidays {
		d, err := time.Parse("2006-01-02", h)
		if err != nil {
			return nil, fmt.Errorf("invalid REPORT_HOLIDAYS entry %q: must be YYYY-MM-DD", h)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// Validate validates report configuration.
func (c ReportConfig) Validate() error {
	if !oneOf(c.DurationMode, "business", "naive") {
		return fmt.Errorf("invalid REPORT_DURATION_MODE: %s (must be: business, naive)", c.DurationMode)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if !oneOf(c.ApprovalMatch, "exact", "contains") {
		return fmt.Errorf("invalid REPORT_APPROVAL_MATCH: %s (must be: exact, contains)", c.ApprovalMatch)
	}
	if !oneOf(c.AuthorKey, "full_name", "first_name") {
		return fmt.Errorf("invalid REPORT_AUTHOR_KEY: %s (must be: full_name, first_name)", c.AuthorKey)
	}
	if !oneOf(c.CommentSource, "notes", "discussions") {
		return fmt.Errorf("invalid REPORT_COMMENT_SOURCE: %s (must be: notes, discussions)", c.CommentSource)
	}
	if _, err := c.HolidayDates(); err != nil {
		return err
	}
	if c.MinCommentLength < 0 {
		return fmt.Errorf("REPORT_MIN_COMMENT_LENGTH must be non-negative")
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("chart dimensions must be greater than 0")
	}
	return nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
