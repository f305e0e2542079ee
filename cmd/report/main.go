// Package main provides a one-shot command that prints a review report as
// JSON and writes its charts as PNG files.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/review_metrics/internal/app"
	"github.com/festy23/review_metrics/internal/chart"
	"github.com/festy23/review_metrics/internal/config"
	"github.com/festy23/review_metrics/internal/review/model"
	"github.com/festy23/review_metrics/internal/review/service"
	"github.com/festy23/review_metrics/pkg/logger"
)

const dateLayout = "2006-01-02"

func main() {
	start := flag.String("start", "", "window start, YYYY-MM-DD (required)")
	end := flag.String("end", "", "window end, exclusive, YYYY-MM-DD (required)")
	projects := flag.String("projects", "", "comma separated project ids (default GITLAB_PROJECT_IDS)")
	noCharts := flag.Bool("no-charts", false, "skip writing chart images")
	flag.Parse()

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	req, err := buildRequest(cfg, *start, *end, *projects)
	if err != nil {
		sugar.Fatalw("invalid arguments", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, req, !*noCharts, os.Stdout, sugar); err != nil {
		sugar.Fatalw("report failed", "error", err)
	}
}

func buildRequest(cfg config.Config, start, end, projects string) (model.ReportRequest, error) {
	loc, err := cfg.Report.Location()
	if err != nil {
		return model.ReportRequest{}, err
	}

	startAt, err := time.ParseInLocation(dateLayout, start, loc)
	if err != nil {
		return model.ReportRequest{}, fmt.Errorf("-start: %w", err)
	}
	endAt, err := time.ParseInLocation(dateLayout, end, loc)
	if err != nil {
		return model.ReportRequest{}, fmt.Errorf("-end: %w", err)
	}

	ids := cfg.GitLab.ProjectIDs
	if projects != "" {
		ids = nil
		for _, part := range strings.Split(projects, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return model.ReportRequest{}, fmt.Errorf("%w: %q", model.ErrInvalidProjectID, part)
			}
			ids = append(ids, id)
		}
	}

	req := model.ReportRequest{ProjectIDs: model.DistinctProjectIDs(ids), Start: startAt, End: endAt}
	return req, req.Validate()
}

func run(
	ctx context.Context, cfg config.Config, req model.ReportRequest, charts bool, out io.Writer, logger *zap.SugaredLogger,
) error {
	components, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}

	svc := service.New(components.Repository, components.Engine, components.ServiceOptions, logger)
	report, err := svc.GenerateReport(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	logger.Infow("report summary",
		"interval", report.Interval.Label,
		"merge_requests", len(report.MergeRequests),
		"average_time_in_review", meanString(report.AverageTimeInReview),
		"average_feedback_time", meanString(report.AverageFeedbackTime),
		"approvals", report.Approvals.Total(),
		"comments", report.Comments.Total(),
	)

	if !charts {
		return nil
	}
	for _, kind := range []string{chart.KindApprovals, chart.KindComments} {
		series, err := chart.Series(report, kind)
		if err != nil {
			return err
		}
		label := kind + " " + report.Interval.Label
		path, err := chart.WriteFile(cfg.Report.ChartDir, label, series, components.ChartOptions)
		if errors.Is(err, model.ErrEmptySeries) {
			logger.Warnw("chart skipped, nothing to draw", "kind", kind)
			continue
		}
		if err != nil {
			return fmt.Errorf("write %s chart: %w", kind, err)
		}
		logger.Infow("chart written", "kind", kind, "path", path)
	}
	return nil
}

func meanString(avg model.Average) string {
	if !avg.Defined() {
		return "n/a"
	}
	return avg.Mean.String()
}
