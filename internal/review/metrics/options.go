// Package metrics turns merge requests and their notes into review duration
// metrics and per-author aggregates.
package metrics

import (
	"fmt"
	"time"

	"github.com/rickar/cal/v2"

	"github.com/festy23/review_metrics/internal/review/model"
)

// Phrases GitLab writes into the body of approval system notes.
const (
	ApprovalPhrase   = "approved this merge request"
	UnapprovalPhrase = "unapproved this merge request"
)

// DefaultMinCommentLength is the trimmed body length a comment needs to count.
const DefaultMinCommentLength = 10

// DurationMode selects how elapsed review time is measured.
type DurationMode int

const (
	// DurationBusinessDays skips weekend days between the two timestamps.
	DurationBusinessDays DurationMode = iota
	// DurationNaive is the plain timestamp difference.
	DurationNaive
)

// MatchMode selects how approval phrases are matched against note bodies.
type MatchMode int

const (
	// MatchExact requires the body to equal the phrase.
	MatchExact MatchMode = iota
	// MatchContains accepts any body containing the phrase.
	MatchContains
)

// KeyMode selects how author names become aggregation keys.
type KeyMode int

const (
	// KeyFullName uses the full display name.
	KeyFullName KeyMode = iota
	// KeyFirstName uses the first whitespace separated token of the name.
	KeyFirstName
)

// ParseDurationMode parses "business" or "naive".
func ParseDurationMode(s string) (DurationMode, error) {
	switch s {
	case "business":
		return DurationBusinessDays, nil
	case "naive":
		return DurationNaive, nil
	}
	return 0, fmt.Errorf("%w: duration mode %q", model.ErrInvalidOption, s)
}

// ParseMatchMode parses "exact" or "contains".
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "exact":
		return MatchExact, nil
	case "contains":
		return MatchContains, nil
	}
	return 0, fmt.Errorf("%w: approval match %q", model.ErrInvalidOption, s)
}

// ParseKeyMode parses "full_name" or "first_name".
func ParseKeyMode(s string) (KeyMode, error) {
	switch s {
	case "full_name":
		return KeyFullName, nil
	case "first_name":
		return KeyFirstName, nil
	}
	return 0, fmt.Errorf("%w: author key %q", model.ErrInvalidOption, s)
}

// Options configures an Engine.
type Options struct {
	DurationMode DurationMode
	// Location decides calendar days and weekends. Nil means UTC.
	Location         *time.Location
	ApprovalMatch    MatchMode
	AuthorKey        KeyMode
	MinCommentLength int
	// Holidays are skipped like weekends in business-day mode.
	Holidays []*cal.Holiday
}

// DefaultOptions returns business-day durations in UTC, exact approval
// matching and full-name keys.
func DefaultOptions() Options {
	return Options{
		DurationMode:     DurationBusinessDays,
		Location:         time.UTC,
		ApprovalMatch:    MatchExact,
		AuthorKey:        KeyFullName,
		MinCommentLength: DefaultMinCommentLength,
	}
}
