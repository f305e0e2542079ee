// Package router provides review report module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/review_metrics/internal/chart"
	"github.com/festy23/review_metrics/internal/review/handler"
	"github.com/festy23/review_metrics/internal/review/metrics"
	"github.com/festy23/review_metrics/internal/review/repository"
	"github.com/festy23/review_metrics/internal/review/service"
)

// Options carries the settings the report routes need besides their dependencies.
type Options struct {
	Service         service.Options
	DefaultProjects []int
	Chart           chart.Options
}

// RegisterRoutes registers review report module routes.
func RegisterRoutes(
	r *gin.Engine, repo repository.Repository, engine *metrics.Engine, opts Options, logger *zap.SugaredLogger,
) {
	svc := service.New(repo, engine, opts.Service, logger)
	h := handler.New(svc, opts.DefaultProjects, opts.Service.Location, opts.Chart, logger)

	reports := r.Group("/reports")
	reports.GET("", h.GetReport)
	reports.GET("/charts/:kind", h.GetChart)
}
