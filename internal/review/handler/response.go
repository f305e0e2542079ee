// Package handler provides response helpers for the review report module.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festy23/review_metrics/internal/review/model"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorResponse sends an error response.
func errorResponse(c *gin.Context, code, message string, status int) {
	c.JSON(status, ErrorResponse{
		Error: struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}{
			Code:    code,
			Message: message,
		},
	})
}

// errInvalidQuery marks malformed query parameters.
var errInvalidQuery = errors.New("invalid query parameter")

// handleError maps domain errors onto HTTP responses.
func (h *Handler) handleError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, errInvalidQuery),
		errors.Is(err, model.ErrInvalidWindow),
		errors.Is(err, model.ErrNoProjects),
		errors.Is(err, model.ErrInvalidProjectID):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrUnknownChart):
		errorResponse(c, "NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrEmptySeries):
		errorResponse(c, "NO_DATA", err.Error(), http.StatusNotFound)
	case errors.Is(err, model.ErrFetchFailed):
		h.logger.Errorw(op+" failed upstream", "error", err)
		errorResponse(c, "UPSTREAM_ERROR", "hosting api request failed", http.StatusBadGateway)
	default:
		h.logger.Errorw(op+" failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
