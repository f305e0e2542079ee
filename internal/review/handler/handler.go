// Package handler provides HTTP handlers for review report endpoints.
package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/review_metrics/internal/chart"
	"github.com/festy23/review_metrics/internal/review/model"
	"github.com/festy23/review_metrics/internal/review/service"
)

const dateLayout = "2006-01-02"

// Handler handles HTTP requests for review report endpoints.
type Handler struct {
	service         service.Service
	defaultProjects []int
	location        *time.Location
	chartOptions    chart.Options
	logger          *zap.SugaredLogger
}

// New creates a new report handler instance. defaultProjects are used when a
// request names no project_id; dates without a time are read in loc.
func New(
	svc service.Service, defaultProjects []int, loc *time.Location, chartOpts chart.Options, logger *zap.SugaredLogger,
) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		service:         svc,
		defaultProjects: model.DistinctProjectIDs(defaultProjects),
		location:        loc,
		chartOptions:    chartOpts,
		logger:          logger,
	}
}

// GetReport handles GET /reports request.
// @Summary Get review metrics for a window
// @Tags Reports
// @Produce json
// @Param start query string true "window start (YYYY-MM-DD or RFC3339)"
// @Param end query string true "window end, exclusive (YYYY-MM-DD or RFC3339)"
// @Param project_id query []int false "project ids, repeated or comma separated"
// @Success 200 {object} model.Report
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /reports [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetReport(c *gin.Context) {
	report, ok := h.generate(c, "GetReport")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetChart handles GET /reports/charts/:kind request.
// @Summary Get a bar chart of approvals or comments per author
// @Tags Reports
// @Produce png
// @Param kind path string true "approvals or comments"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reports/charts/{kind} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetChart(c *gin.Context) {
	kind := c.Param("kind")
	if kind != chart.KindApprovals && kind != chart.KindComments {
		h.handleError(c, "GetChart", fmt.Errorf("%w: %q", model.ErrUnknownChart, kind))
		return
	}

	report, ok := h.generate(c, "GetChart")
	if !ok {
		return
	}

	series, err := chart.Series(report, kind)
	if err != nil {
		h.handleError(c, "GetChart", err)
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderPNG(&buf, kind, series, h.chartOptions); err != nil {
		h.handleError(c, "GetChart", err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) generate(c *gin.Context, op string) (*model.Report, bool) {
	req, err := h.parseRequest(c)
	if err != nil {
		h.handleError(c, op, err)
		return nil, false
	}

	report, err := h.service.GenerateReport(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, op, err)
		return nil, false
	}
	return report, true
}

func (h *Handler) parseRequest(c *gin.Context) (model.ReportRequest, error) {
	start, err := h.parseTime(c.Query("start"), "start")
	if err != nil {
		return model.ReportRequest{}, err
	}
	end, err := h.parseTime(c.Query("end"), "end")
	if err != nil {
		return model.ReportRequest{}, err
	}

	projects := h.defaultProjects
	if raw := c.QueryArray("project_id"); len(raw) > 0 {
		projects, err = parseProjectIDs(raw)
		if err != nil {
			return model.ReportRequest{}, err
		}
	}

	return model.ReportRequest{ProjectIDs: projects, Start: start, End: end}, nil
}

func (h *Handler) parseTime(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", errInvalidQuery, name)
	}
	if t, err := time.ParseInLocation(dateLayout, value, h.location); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD or RFC3339", errInvalidQuery, name)
	}
	return t, nil
}

func parseProjectIDs(raw []string) ([]int, error) {
	var ids []int
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("%w: %q", model.ErrInvalidProjectID, part)
			}
			ids = append(ids, id)
		}
	}
	return model.DistinctProjectIDs(ids), nil
}
