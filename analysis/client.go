package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/andrewpaige1/coursemap-api/models"
)

const AnalyzePath = "/api/analyzeCourse"

// Client calls a remote analysis service. Calls go through a circuit breaker
// so a dead service fails fast instead of stalling every submission.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewClient builds a client for baseURL. A zero timeout leaves requests
// bounded only by the caller's context.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "analysis",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Calls cancelled because a sibling in the same batch failed say
		// nothing about the service's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return c
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("analysis: unexpected status %d: %s", e.StatusCode, e.Body)
}

func (c *Client) Analyze(ctx context.Context, course models.CourseFormInput) (Result, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, course)
	})
	if err != nil {
		return Result{}, err
	}
	return out.(Result), nil
}

func (c *Client) do(ctx context.Context, course models.CourseFormInput) (Result, error) {
	body, err := json.Marshal(course)
	if err != nil {
		return Result{}, fmt.Errorf("analysis: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+AnalyzePath, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("analysis: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("analysis: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, fmt.Errorf("analysis: decode response: %w", err)
	}
	c.logger.Debug("Course analyzed", zap.String("course", course.CourseName), zap.Int("topics", len(res.Topics)))
	return res, nil
}
