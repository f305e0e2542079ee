package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTimeout(t *testing.T) {
	tests := []struct {
		name         string
		timeout      time.Duration
		wantDeadline bool
	}{
		{name: "sets deadline", timeout: time.Minute, wantDeadline: true},
		{name: "zero disables", timeout: 0, wantDeadline: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(Timeout(tt.timeout))

			var hasDeadline bool
			var remaining time.Duration
			r.GET("/reports", func(c *gin.Context) {
				var deadline time.Time
				deadline, hasDeadline = c.Request.Context().Deadline()
				remaining = time.Until(deadline)
				c.Status(http.StatusNoContent)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports", nil))

			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, tt.wantDeadline, hasDeadline)
			if tt.wantDeadline {
				assert.LessOrEqual(t, remaining, tt.timeout)
			}
		})
	}
}
