package repository

import (
	"net/http"

	"github.com/xanzy/go-gitlab"

	"github.com/festy23/review_metrics/internal/config"
)

// NewClient creates a GitLab API client that sends cfg.Token as a bearer
// token. Retries in the underlying transport are switched off: a failed
// request fails the report run.
func NewClient(cfg config.GitLabConfig) (*gitlab.Client, error) {
	return gitlab.NewOAuthClient(cfg.Token,
		gitlab.WithBaseURL(cfg.URL),
		gitlab.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		gitlab.WithCustomRetryMax(0),
	)
}
