package metrics

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/review_metrics/internal/review/model"
)

// Engine computes review metrics for one report run. It holds no state
// between calls.
type Engine struct {
	calc       *Calculator
	classifier *Classifier
	resolver   *Resolver
	aggregator *Aggregator
	logger     *zap.SugaredLogger
}

// NewEngine creates an Engine from opts.
func NewEngine(opts Options, logger *zap.SugaredLogger) *Engine {
	calc := NewCalculator(opts.DurationMode, opts.Location, logger, opts.Holidays...)
	classifier := NewClassifier(opts.ApprovalMatch, opts.MinCommentLength)
	return &Engine{
		calc:       calc,
		classifier: classifier,
		resolver:   NewResolver(calc, classifier),
		aggregator: NewAggregator(opts.AuthorKey, logger),
		logger:     logger,
	}
}

// Calculator returns the engine's duration calculator.
func (e *Engine) Calculator() *Calculator { return e.calc }

// Classifier returns the engine's note classifier.
func (e *Engine) Classifier() *Classifier { return e.classifier }

// TimeInReview returns the review duration of mr.
func (e *Engine) TimeInReview(mr model.MergeRequest) model.Duration {
	return e.calc.Between(mr.CreatedAt, mr.MergedAt)
}

// ResolveFeedback returns the first-responder record for mr.
func (e *Engine) ResolveFeedback(mr model.MergeRequest, notes []model.Note) (model.FeedbackRecord, bool) {
	return e.resolver.Resolve(mr, notes)
}

// AverageTimeInReview averages the time in review of mrs, skipping unmerged ones.
func (e *Engine) AverageTimeInReview(mrs []model.MergeRequest) model.Average {
	durations := make([]model.Duration, 0, len(mrs))
	for _, mr := range mrs {
		durations = append(durations, e.TimeInReview(mr))
	}
	avg := Average(durations)
	if avg.Excluded > 0 {
		e.logger.Infow("unmerged merge requests excluded from average",
			"excluded", avg.Excluded,
			"included", avg.Included,
		)
	}
	return avg
}

// DeltaAverageTime compares the average time in review of two windows.
func (e *Engine) DeltaAverageTime(monthToDate, yearToDate []model.MergeRequest) model.DeltaAverage {
	mtd := e.AverageTimeInReview(monthToDate)
	ytd := e.AverageTimeInReview(yearToDate)
	return model.DeltaAverage{
		MonthToDate:       mtd,
		YearToDate:        ytd,
		DeltaMilliseconds: Delta(mtd, ytd),
	}
}

// Input is the fetched data for one reporting window.
type Input struct {
	Interval      model.Interval
	MergeRequests []model.MergeRequest
	// Notes holds every note of each merge request.
	Notes map[model.Key][]model.Note
	// CommentNotes, when non-nil, replaces Notes as the source of comments.
	CommentNotes map[model.Key][]model.Note
}

// Build computes the report for in. The delta section is left to the caller
// because it needs merge requests outside the interval.
func (e *Engine) Build(in Input) *model.Report {
	e.logger.Debugw("Build called",
		"interval", in.Interval.Label,
		"merge_requests", len(in.MergeRequests),
	)

	report := &model.Report{
		Interval:      in.Interval,
		MergeRequests: make([]model.MergeRequestSummary, 0, len(in.MergeRequests)),
		Feedback:      []model.FeedbackRecord{},
	}

	var (
		approvers  []model.Author
		commenters []model.Author
		feedback   []model.Duration
	)

	for _, mr := range in.MergeRequests {
		report.MergeRequests = append(report.MergeRequests, model.MergeRequestSummary{
			IID:          mr.IID,
			ProjectID:    mr.ProjectID,
			Author:       mr.Author.Name,
			TimeInReview: e.TimeInReview(mr),
		})

		notes := in.Notes[mr.Key()]
		for _, n := range notes {
			if e.classifier.Classify(n) == model.ClassApproval {
				approvers = append(approvers, n.Author)
			}
		}

		commentSource := notes
		if in.CommentNotes != nil {
			commentSource = in.CommentNotes[mr.Key()]
		}
		for _, n := range commentSource {
			if e.classifier.Classify(n) == model.ClassComment {
				commenters = append(commenters, n.Author)
			}
		}

		if rec, ok := e.resolver.Resolve(mr, notes); ok {
			report.Feedback = append(report.Feedback, rec)
			feedback = append(feedback, rec.Duration)
		}
	}

	report.AverageTimeInReview = e.AverageTimeInReview(in.MergeRequests)
	report.AverageFeedbackTime = Average(feedback)
	report.AverageFeedbackTime.Excluded = len(in.MergeRequests) - len(report.Feedback)
	report.Approvals = e.aggregator.Aggregate(approvers)
	report.Comments = e.aggregator.Aggregate(commenters)

	e.logger.Infow("Build completed",
		"interval", in.Interval.Label,
		"merge_requests", len(in.MergeRequests),
		"feedback_records", len(report.Feedback),
		"approvals", report.Approvals.Total(),
		"comments", report.Comments.Total(),
	)
	return report
}

// IntervalLabel formats a window the way reports print it.
func IntervalLabel(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
}
