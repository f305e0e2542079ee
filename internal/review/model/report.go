package model

import (
	"sort"
	"time"
)

// FeedbackRecord is the first qualifying response on a merge request.
type FeedbackRecord struct {
	MergeRequest Key      `json:"merge_request"`
	NoteID       int      `json:"note_id"`
	Duration     Duration `json:"duration"`
}

// AuthorCount is one entry of an AuthorAggregate.
type AuthorCount struct {
	// ID is the author id seen on the first occurrence of the key.
	ID    int `json:"id"`
	Count int `json:"count"`
}

// AuthorAggregate maps an author key to its representative id and count.
type AuthorAggregate map[string]AuthorCount

// Keys returns the aggregate keys in ascending order.
func (a AuthorAggregate) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total returns the sum of all counts.
func (a AuthorAggregate) Total() int {
	total := 0
	for _, v := range a {
		total += v.Count
	}
	return total
}

// Average is the mean of a set of durations. Mean is nil when nothing was
// included, which keeps an empty input from turning into NaN.
type Average struct {
	Mean     *Duration `json:"mean"`
	Included int       `json:"included"`
	Excluded int       `json:"excluded"`
}

// Defined reports whether a mean could be computed.
func (a Average) Defined() bool { return a.Mean != nil }

// DeltaAverage compares the average time in review of two windows.
type DeltaAverage struct {
	MonthToDate Average `json:"month_to_date"`
	YearToDate  Average `json:"year_to_date"`
	// DeltaMilliseconds is MonthToDate minus YearToDate, nil when either side is undefined.
	DeltaMilliseconds *int64 `json:"delta_milliseconds"`
}

// Interval is a half-open reporting window [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Contains reports whether t falls inside the interval.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// MergeRequestSummary is the per merge request line of a report.
type MergeRequestSummary struct {
	IID          int      `json:"iid"`
	ProjectID    int      `json:"project_id"`
	Author       string   `json:"author"`
	TimeInReview Duration `json:"time_in_review"`
}

// Report is the result of one report run.
type Report struct {
	Interval            Interval              `json:"interval"`
	MergeRequests       []MergeRequestSummary `json:"merge_requests"`
	AverageTimeInReview Average               `json:"average_time_in_review"`
	AverageFeedbackTime Average               `json:"average_feedback_time"`
	DeltaAverageTime    *DeltaAverage         `json:"delta_average_time,omitempty"`
	Approvals           AuthorAggregate       `json:"approvals"`
	Comments            AuthorAggregate       `json:"comments"`
	Feedback            []FeedbackRecord      `json:"feedback"`
}

// ReportRequest describes what a report run should cover.
type ReportRequest struct {
	ProjectIDs []int
	Start      time.Time
	End        time.Time
}

// DistinctProjectIDs returns ids without repeats, in first-seen order.
func DistinctProjectIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	result := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// Validate checks the request window and project list.
func (r ReportRequest) Validate() error {
	if len(r.ProjectIDs) == 0 {
		return ErrNoProjects
	}
	for _, id := range r.ProjectIDs {
		if id <= 0 {
			return ErrInvalidProjectID
		}
	}
	if !r.Start.Before(r.End) {
		return ErrInvalidWindow
	}
	return nil
}
