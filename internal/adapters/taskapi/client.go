// Package taskapi is the HTTP client for the task repository consumed by the
// calendar view model. It exposes the single "list all tasks" read the view
// performs once per mount; any transport or decoding failure collapses into
// one error absorbed by the view's fetch lifecycle.
package taskapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taskplanner/core/internal/application/calendar"
	"github.com/taskplanner/core/internal/infrastructure/config"
)

// Client talks to the task repository REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new task API client
func New(cfg config.ClientConfig) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL scheme: %q", base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// ListTasks fetches all tasks. Due dates are passed through as raw strings;
// the calendar binder decides what is usable.
func (c *Client) ListTasks(ctx context.Context) ([]calendar.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/tasks", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("task listing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("task listing returned status %d", resp.StatusCode)
	}

	var tasks []calendar.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task listing: %w", err)
	}

	return tasks, nil
}
