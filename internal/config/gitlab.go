package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// GitLabConfig holds settings for the GitLab API client.
type GitLabConfig struct {
	// URL is the API base, e.g. https://gitlab.example.com/api/v4.
	URL string
	// Token is sent as a bearer token on every request.
	Token string
	// ProjectIDs are the projects tracked by default when a request names none.
	ProjectIDs []int
	// PerPage is the page size used when walking paginated endpoints.
	PerPage int
	// Timeout bounds a single HTTP request.
	Timeout time.Duration
	// FetchConcurrency limits concurrent fetches; 0 means unlimited.
	FetchConcurrency int
}

// LoadGitLabConfigFromEnv loads GitLab configuration from environment variables.
// Project IDs that are not integers are skipped and reported by Validate.
func LoadGitLabConfigFromEnv() GitLabConfig {
	rawIDs := GetEnvList("GITLAB_PROJECT_IDS", nil)
	ids := make([]int, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := strconv.Atoi(raw)
		if err != nil {
			id = -1
		}
		ids = append(ids, id)
	}

	return GitLabConfig{
		URL:              GetEnv("GITLAB_URL", "https://gitlab.com/api/v4"),
		Token:            GetEnv("GITLAB_TOKEN", ""),
		ProjectIDs:       ids,
		PerPage:          GetEnvInt("GITLAB_PER_PAGE", 100),
		Timeout:          GetEnvDuration("GITLAB_TIMEOUT", 30*time.Second),
		FetchConcurrency: GetEnvInt("GITLAB_FETCH_CONCURRENCY", 0),
	}
}

// Validate validates GitLab configuration.
func (c GitLabConfig) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid GITLAB_URL: %q", c.URL)
	}
	for _, id := range c.ProjectIDs {
		if id <= 0 {
			return fmt.Errorf("invalid GITLAB_PROJECT_IDS: project ids must be positive integers")
		}
	}
	if c.PerPage <= 0 || c.PerPage > 100 {
		return fmt.Errorf("invalid GITLAB_PER_PAGE: %d (must be 1..100)", c.PerPage)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("GITLAB_TIMEOUT must be greater than 0")
	}
	if c.FetchConcurrency < 0 {
		return fmt.Errorf("GITLAB_FETCH_CONCURRENCY must be non-negative")
	}
	return nil
}
