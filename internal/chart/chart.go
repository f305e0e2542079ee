// Package chart renders author aggregates as bar charts.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/festy23/review_metrics/internal/review/model"
)

// Kinds of chart a report provides.
const (
	KindApprovals = "approvals"
	KindComments  = "comments"
)

var (
	fillColor   = drawing.Color{R: 75, G: 192, B: 192, A: 51}
	strokeColor = drawing.Color{R: 75, G: 192, B: 192, A: 255}
)

// Options sets the canvas size in pixels.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions returns a 600x400 canvas.
func DefaultOptions() Options {
	return Options{Width: 600, Height: 400}
}

// Series picks the aggregate named by kind out of a report.
func Series(report *model.Report, kind string) (model.AuthorAggregate, error) {
	switch kind {
	case KindApprovals:
		return report.Approvals, nil
	case KindComments:
		return report.Comments, nil
	}
	return nil, fmt.Errorf("%w: %q", model.ErrUnknownChart, kind)
}

// RenderPNG draws one bar per aggregate key, in key order, with the count as
// the bar height and a y axis starting at zero.
func RenderPNG(w io.Writer, label string, agg model.AuthorAggregate, opts Options) error {
	if len(agg) == 0 {
		return model.ErrEmptySeries
	}

	keys := agg.Keys()
	bars := make([]chart.Value, 0, len(keys))
	maxCount := 0
	for _, key := range keys {
		count := agg[key].Count
		if count > maxCount {
			maxCount = count
		}
		bars = append(bars, chart.Value{
			Label: key,
			Value: float64(count),
			Style: chart.Style{
				FillColor:   fillColor,
				StrokeColor: strokeColor,
				StrokeWidth: 2,
			},
		})
	}

	graph := chart.BarChart{
		Title:      label,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth(opts.Width, len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s chart: %w", label, err)
	}
	return nil
}

// WriteFile renders the chart into dir/<label>.png and returns the path.
func WriteFile(dir, label string, agg model.AuthorAggregate, opts Options) (string, error) {
	path := filepath.Join(dir, label+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}

	if err := RenderPNG(f, label, agg, opts); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close chart file: %w", err)
	}
	return path, nil
}

func barWidth(width, bars int) int {
	w := width / (2 * bars)
	if w > 60 {
		return 60
	}
	if w < 8 {
		return 8
	}
	return w
}
