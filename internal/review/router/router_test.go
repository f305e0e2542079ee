package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/festy23/review_metrics/internal/chart"
	"github.com/festy23/review_metrics/internal/review/metrics"
	"github.com/festy23/review_metrics/internal/review/model"
	"github.com/festy23/review_metrics/internal/review/repository"
)

// emptyRepository answers every call with no data.
type emptyRepository struct{}

func (emptyRepository) ListMergeRequests(context.Context, int, time.Time, time.Time) ([]model.MergeRequest, error) {
	return nil, nil
}

func (emptyRepository) ListNotes(context.Context, model.Key) ([]model.Note, error) { return nil, nil }

func (emptyRepository) ListDiscussionNotes(context.Context, model.Key) ([]model.Note, error) {
	return nil, nil
}

func (emptyRepository) Ping(context.Context) error { return nil }

var _ repository.Repository = emptyRepository{}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := zap.NewNop().Sugar()
	engine := metrics.NewEngine(metrics.DefaultOptions(), logger)

	RegisterRoutes(router, emptyRepository{}, engine, Options{
		DefaultProjects: []int{2282},
		Chart:           chart.DefaultOptions(),
	}, logger)
	return router
}

func TestRegisterRoutes(t *testing.T) {
	t.Run("registers report route", func(t *testing.T) {
		router := setupRouter()

		req := httptest.NewRequest(http.MethodGet, "/reports?start=2023-05-01&end=2023-06-01", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		// Route should exist and return 200 (even if empty)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"label":"2023-05-01 - 2023-06-01"`)
	})

	t.Run("registers chart route", func(t *testing.T) {
		router := setupRouter()

		req := httptest.NewRequest(http.MethodGet, "/reports/charts/approvals?start=2023-05-01&end=2023-06-01", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		// No merge requests means no bars to draw
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NO_DATA")
	})

	t.Run("non-existent route returns 404", func(t *testing.T) {
		router := setupRouter()

		req := httptest.NewRequest(http.MethodGet, "/reports/nonexistent/x/y", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("POST method not allowed on GET routes", func(t *testing.T) {
		router := setupRouter()

		req := httptest.NewRequest(http.MethodPost, "/reports", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		// Gin returns 404 for method not allowed
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
