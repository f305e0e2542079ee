package metrics

import (
	"time"

	"github.com/rickar/cal/v2"
	"go.uber.org/zap"

	"github.com/festy23/review_metrics/internal/review/model"
)

const (
	day = 24 * time.Hour
	// maxNonWorkdays bounds the search for the next workday on a calendar
	// with long holiday runs.
	maxNonWorkdays = 366
)

// Calculator measures elapsed review time between two timestamps.
type Calculator struct {
	mode     DurationMode
	loc      *time.Location
	calendar *cal.BusinessCalendar
	logger   *zap.SugaredLogger
}

// NewCalculator creates a Calculator on a Monday to Friday calendar. A nil
// location means UTC. Holidays are non-workdays.
func NewCalculator(
	mode DurationMode, loc *time.Location, logger *zap.SugaredLogger, holidays ...*cal.Holiday,
) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	calendar := cal.NewBusinessCalendar()
	calendar.AddHoliday(holidays...)
	return &Calculator{mode: mode, loc: loc, calendar: calendar, logger: logger}
}

// Between returns the review time from createdAt to mergedAt.
//
// A nil mergedAt yields model.Unmerged. A mergedAt before createdAt yields a
// zero duration and a warning. Timestamps on the same calendar day, or any
// pair in naive mode, give the plain difference. Otherwise a createdAt
// outside a workday moves to the start of the next workday, each workday from
// there up to, not including, mergedAt's day adds 24h, and mergedAt's day adds
// the signed offset between mergedAt and the start's wall-clock time on that
// day.
func (c *Calculator) Between(createdAt time.Time, mergedAt *time.Time) model.Duration {
	if mergedAt == nil {
		return model.Unmerged
	}

	if mergedAt.Before(createdAt) {
		c.logger.Warnw("end timestamp precedes creation, using zero duration",
			"created_at", createdAt,
			"ended_at", *mergedAt,
		)
		return model.FromMilliseconds(0)
	}

	if c.mode == DurationNaive || c.SameDay(createdAt, *mergedAt) {
		return model.FromStd(mergedAt.Sub(createdAt))
	}

	days, remainder := c.split(createdAt, *mergedAt)
	total := time.Duration(days)*day + remainder
	if total < 0 {
		total = 0
	}
	return model.FromStd(total)
}

// BusinessDays reports the two parts of a business-day duration: the whole
// workdays counted and the fraction of a day contributed by the end day. The
// fraction may be negative when the end time of day is earlier than the
// start time of day.
func (c *Calculator) BusinessDays(createdAt, mergedAt time.Time) (int, float64) {
	days, remainder := c.split(createdAt, mergedAt)
	return days, float64(remainder) / float64(day)
}

// SameDay reports whether a and b fall on the same calendar day in the
// calculator's location.
func (c *Calculator) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	return ay == by && am == bm && ad == bd
}

// IsBusinessDay reports whether t falls on a workday of the calendar, judged
// in the calculator's location.
func (c *Calculator) IsBusinessDay(t time.Time) bool {
	return c.calendar.IsWorkday(t.In(c.loc))
}

func (c *Calculator) split(createdAt, mergedAt time.Time) (int, time.Duration) {
	start := c.workStart(createdAt.In(c.loc))
	merged := mergedAt.In(c.loc)
	if !start.Before(merged) {
		return 0, 0
	}

	my, mm, md := merged.Date()
	anchor := time.Date(my, mm, md,
		start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), c.loc)
	if c.SameDay(start, merged) {
		return 0, merged.Sub(anchor)
	}

	sy, sm, sd := start.Date()
	first := time.Date(sy, sm, sd, 0, 0, 0, 0, c.loc)
	dayBefore := time.Date(my, mm, md-1, 0, 0, 0, 0, c.loc)
	return c.calendar.WorkdaysInRange(first, dayBefore), merged.Sub(anchor)
}

// workStart returns t when it falls on a workday, otherwise midnight of the
// next workday.
func (c *Calculator) workStart(t time.Time) time.Time {
	if c.calendar.IsWorkday(t) {
		return t
	}
	y, m, d := t.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, c.loc)
	for i := 0; i < maxNonWorkdays && !c.calendar.IsWorkday(next); i++ {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
