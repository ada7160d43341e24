package traffic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// CheckResult reports what the target's health endpoint answered.
type CheckResult struct {
	StatusCode int
	Healthy    bool
	Body       string
}

// Checker verifies the target service is reachable before an attack
// starts, so a bad URL or an expired token surfaces immediately instead
// of producing a run full of transport errors.
type Checker struct {
	client *http.Client
}

// NewChecker creates a checker with the given per-request timeout
func NewChecker(timeout time.Duration) *Checker {
	return &Checker{
		client: &http.Client{Timeout: timeout},
	}
}

// Check calls the service health endpoint. A transport failure returns an
// error; any HTTP answer returns a result, healthy or not.
func (c *Checker) Check(ctx context.Context, baseURL, token string) (*CheckResult, error) {
	endpoint := strings.TrimRight(baseURL, "/") + "/health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create health request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return nil, fmt.Errorf("failed to read health response: %w", err)
	}

	result := &CheckResult{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}

	if resp.StatusCode != http.StatusOK {
		return result, nil
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &health); err == nil && health.Status == "healthy" {
		result.Healthy = true
	}

	return result, nil
}
