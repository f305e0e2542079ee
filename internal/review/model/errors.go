package model

import "errors"

var (
	// ErrInvalidWindow indicates that the report window is empty or reversed.
	ErrInvalidWindow = errors.New("report window start must be before end")
	// ErrNoProjects indicates that no project identifiers were supplied.
	ErrNoProjects = errors.New("at least one project id is required")
	// ErrInvalidProjectID indicates a non-positive or malformed project identifier.
	ErrInvalidProjectID = errors.New("project id must be a positive integer")
	// ErrFetchFailed wraps any failure talking to the hosting API.
	ErrFetchFailed = errors.New("fetch from hosting api failed")
	// ErrEmptySeries indicates that a chart was requested for an aggregate with no entries.
	ErrEmptySeries = errors.New("aggregate has no entries to chart")
	// ErrUnknownChart indicates that the requested chart kind does not exist.
	ErrUnknownChart = errors.New("unknown chart kind")
	// ErrInvalidOption indicates an unrecognised engine option value.
	ErrInvalidOption = errors.New("invalid engine option")
)
