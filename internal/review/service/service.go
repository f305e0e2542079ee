// Package service provides report generation for review metrics.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/festy23/review_metrics/internal/review/metrics"
	"github.com/festy23/review_metrics/internal/review/model"
	"github.com/festy23/review_metrics/internal/review/repository"
)

// CommentSource selects where comments are read from.
type CommentSource int

const (
	// CommentSourceNotes counts comments from the merge request notes feed.
	CommentSourceNotes CommentSource = iota
	// CommentSourceDiscussions counts comments from discussion threads.
	CommentSourceDiscussions
)

// ParseCommentSource parses "notes" or "discussions".
func ParseCommentSource(s string) (CommentSource, error) {
	switch s {
	case "notes":
		return CommentSourceNotes, nil
	case "discussions":
		return CommentSourceDiscussions, nil
	}
	return 0, fmt.Errorf("%w: comment source %q", model.ErrInvalidOption, s)
}

// Options configures report generation.
type Options struct {
	CommentSource CommentSource
	// IncludeDelta adds the month-to-date vs year-to-date comparison.
	IncludeDelta bool
	// Concurrency caps in-flight fetches; 0 means unlimited.
	Concurrency int
	// Location decides month and year boundaries. Nil means UTC.
	Location *time.Location
}

// Service defines the interface for report generation.
type Service interface {
	// GenerateReport fetches everything the request covers and computes its report.
	// Any fetch failure aborts the run and no report is returned.
	GenerateReport(ctx context.Context, req model.ReportRequest) (*model.Report, error)
}

type service struct {
	repo   repository.Repository
	engine *metrics.Engine
	opts   Options
	logger *zap.SugaredLogger
}

// New creates a new report service instance.
func New(repo repository.Repository, engine *metrics.Engine, opts Options, logger *zap.SugaredLogger) Service {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &service{
		repo:   repo,
		engine: engine,
		opts:   opts,
		logger: logger,
	}
}

// GenerateReport fetches everything the request covers and computes its report.
func (s *service) GenerateReport(ctx context.Context, req model.ReportRequest) (*model.Report, error) {
	s.logger.Debugw("GenerateReport called",
		"projects", req.ProjectIDs,
		"start", req.Start,
		"end", req.End,
	)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	interval := model.Interval{
		Start: req.Start,
		End:   req.End,
		Label: metrics.IntervalLabel(req.Start, req.End),
	}

	monthStart, yearStart := s.periodStarts(req.End)
	fetchFrom := req.Start
	if s.opts.IncludeDelta && yearStart.Before(fetchFrom) {
		fetchFrom = yearStart
	}

	all, err := s.fetchMergeRequests(ctx, req.ProjectIDs, fetchFrom, req.End)
	if err != nil {
		s.logger.Errorw("GenerateReport failed", "stage", "merge_requests", "error", err)
		return nil, err
	}

	inWindow := filterCreated(all, interval)

	notes, commentNotes, err := s.fetchNotes(ctx, inWindow)
	if err != nil {
		s.logger.Errorw("GenerateReport failed", "stage", "notes", "error", err)
		return nil, err
	}

	report := s.engine.Build(metrics.Input{
		Interval:      interval,
		MergeRequests: inWindow,
		Notes:         notes,
		CommentNotes:  commentNotes,
	})

	if s.opts.IncludeDelta {
		mtd := filterCreated(all, model.Interval{Start: monthStart, End: req.End})
		ytd := filterCreated(all, model.Interval{Start: yearStart, End: req.End})
		delta := s.engine.DeltaAverageTime(mtd, ytd)
		report.DeltaAverageTime = &delta
	}

	s.logger.Infow("GenerateReport completed",
		"interval", interval.Label,
		"projects", len(req.ProjectIDs),
		"merge_requests", len(inWindow),
		"fetched_merge_requests", len(all),
	)
	return report, nil
}

// periodStarts returns the first instant of the month and of the year that
// contain the last instant before end.
func (s *service) periodStarts(end time.Time) (time.Time, time.Time) {
	last := end.Add(-time.Nanosecond).In(s.opts.Location)
	month := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, s.opts.Location)
	year := time.Date(last.Year(), time.January, 1, 0, 0, 0, 0, s.opts.Location)
	return month, year
}

// fetchMergeRequests lists merge requests of every project concurrently.
// Each fetch fills its own slot; results keep project order.
func (s *service) fetchMergeRequests(
	ctx context.Context, projectIDs []int, from, to time.Time,
) ([]model.MergeRequest, error) {
	g, gctx := errgroup.WithContext(ctx)
	if s.opts.Concurrency > 0 {
		g.SetLimit(s.opts.Concurrency)
	}

	perProject := make([][]model.MergeRequest, len(projectIDs))
	for i, projectID := range projectIDs {
		i, projectID := i, projectID
		g.Go(func() error {
			mrs, err := s.repo.ListMergeRequests(gctx, projectID, from, to)
			if err != nil {
				return err
			}
			perProject[i] = mrs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.MergeRequest
	for _, mrs := range perProject {
		all = append(all, mrs...)
	}
	return all, nil
}

// fetchNotes loads the notes, and discussion notes when configured, of every
// merge request concurrently. commentNotes is nil unless discussions are the
// comment source.
func (s *service) fetchNotes(
	ctx context.Context, mrs []model.MergeRequest,
) (map[model.Key][]model.Note, map[model.Key][]model.Note, error) {
	g, gctx := errgroup.WithContext(ctx)
	if s.opts.Concurrency > 0 {
		g.SetLimit(s.opts.Concurrency)
	}

	withDiscussions := s.opts.CommentSource == CommentSourceDiscussions
	notes := make([][]model.Note, len(mrs))
	discussions := make([][]model.Note, len(mrs))

	for i, mr := range mrs {
		i := i
		key := mr.Key()
		g.Go(func() error {
			n, err := s.repo.ListNotes(gctx, key)
			if err != nil {
				return err
			}
			notes[i] = n
			return nil
		})
		if withDiscussions {
			g.Go(func() error {
				n, err := s.repo.ListDiscussionNotes(gctx, key)
				if err != nil {
					return err
				}
				discussions[i] = n
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	byKey := make(map[model.Key][]model.Note, len(mrs))
	for i, mr := range mrs {
		byKey[mr.Key()] = notes[i]
	}
	if !withDiscussions {
		return byKey, nil, nil
	}

	commentsByKey := make(map[model.Key][]model.Note, len(mrs))
	for i, mr := range mrs {
		commentsByKey[mr.Key()] = discussions[i]
	}
	return byKey, commentsByKey, nil
}

func filterCreated(mrs []model.MergeRequest, interval model.Interval) []model.MergeRequest {
	result := make([]model.MergeRequest, 0, len(mrs))
	for _, mr := range mrs {
		if interval.Contains(mr.CreatedAt) {
			result = append(result, mr)
		}
	}
	return result
}
