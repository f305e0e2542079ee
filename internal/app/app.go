// Package app wires configuration into the review report components shared
// by the server and the one-shot report command.
package app

import (
	"fmt"
	"time"

	"github.com/rickar/cal/v2"
	"go.uber.org/zap"

	"github.com/festy23/review_metrics/internal/chart"
	"github.com/festy23/review_metrics/internal/config"
	"github.com/festy23/review_metrics/internal/review/metrics"
	"github.com/festy23/review_metrics/internal/review/repository"
	"github.com/festy23/review_metrics/internal/review/service"
)

// Components holds everything a report run needs.
type Components struct {
	Repository     repository.Repository
	Engine         *metrics.Engine
	ServiceOptions service.Options
	ChartOptions   chart.Options
}

// EngineOptions translates report configuration into metrics options.
func EngineOptions(cfg config.ReportConfig) (metrics.Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return metrics.Options{}, err
	}
	durationMode, err := metrics.ParseDurationMode(cfg.DurationMode)
	if err != nil {
		return metrics.Options{}, err
	}
	match, err := metrics.ParseMatchMode(cfg.ApprovalMatch)
	if err != nil {
		return metrics.Options{}, err
	}
	key, err := metrics.ParseKeyMode(cfg.AuthorKey)
	if err != nil {
		return metrics.Options{}, err
	}
	dates, err := cfg.HolidayDates()
	if err != nil {
		return metrics.Options{}, err
	}

	return metrics.Options{
		DurationMode:     durationMode,
		Location:         loc,
		ApprovalMatch:    match,
		AuthorKey:        key,
		MinCommentLength: cfg.MinCommentLength,
		Holidays:         holidays(dates),
	}, nil
}

// holidays turns configured dates into one-off calendar holidays.
func holidays(dates []time.Time) []*cal.Holiday {
	result := make([]*cal.Holiday, 0, len(dates))
	for _, d := range dates {
		result = append(result, &cal.Holiday{
			Name:      d.Format("2006-01-02"),
			Month:     d.Month(),
			Day:       d.Day(),
			StartYear: d.Year(),
			EndYear:   d.Year(),
			Func:      cal.CalcDayOfMonth,
		})
	}
	return result
}

// ServiceOptions translates configuration into report service options.
func ServiceOptions(cfg config.Config) (service.Options, error) {
	loc, err := cfg.Report.Location()
	if err != nil {
		return service.Options{}, err
	}
	source, err := service.ParseCommentSource(cfg.Report.CommentSource)
	if err != nil {
		return service.Options{}, err
	}

	return service.Options{
		CommentSource: source,
		IncludeDelta:  cfg.Report.IncludeDelta,
		Concurrency:   cfg.GitLab.FetchConcurrency,
		Location:      loc,
	}, nil
}

// Build creates the GitLab client, repository and engine from cfg.
func Build(cfg config.Config, logger *zap.SugaredLogger) (*Components, error) {
	engineOpts, err := EngineOptions(cfg.Report)
	if err != nil {
		return nil, fmt.Errorf("engine options: %w", err)
	}
	svcOpts, err := ServiceOptions(cfg)
	if err != nil {
		return nil, fmt.Errorf("service options: %w", err)
	}

	client, err := repository.NewClient(cfg.GitLab)
	if err != nil {
		return nil, fmt.Errorf("gitlab client: %w", err)
	}

	return &Components{
		Repository:     repository.New(client, cfg.GitLab.PerPage, logger),
		Engine:         metrics.NewEngine(engineOpts, logger),
		ServiceOptions: svcOpts,
		ChartOptions:   chart.Options{Width: cfg.Report.ChartWidth, Height: cfg.Report.ChartHeight},
	}, nil
}
