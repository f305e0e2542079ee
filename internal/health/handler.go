// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const checkTimeout = 5 * time.Second

// Pinger reports whether an upstream dependency answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler handles health check requests.
type Handler struct {
	upstream Pinger
	logger   *zap.SugaredLogger
}

// New creates a new health handler instance. A nil upstream only reports
// that the process is up.
func New(upstream Pinger, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		upstream: upstream,
		logger:   logger,
	}
}

// Response represents health check response.
type Response struct {
	Status string `json:"status"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	if h.upstream == nil {
		c.JSON(http.StatusOK, Response{Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	// Check hosting API reachability
	if err := h.upstream.Ping(ctx); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{
			Status: "unhealthy",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Status: "ok",
	})
}
