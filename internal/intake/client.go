// Package intake fetches grievance records from the upstream intake service.
package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"grievance-insights-go/internal/logger"
	"grievance-insights-go/internal/types"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	// MaxElapsed bounds the total time spent retrying one fetch.
	MaxElapsed time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		MaxElapsed: 20 * time.Second,
	}
}

// Fetch downloads every grievance from GET <base>/grievances. Transport
// errors and 5xx responses are retried with exponential backoff; 4xx
// responses and malformed bodies fail immediately.
func (c *Client) Fetch(ctx context.Context) ([]types.GrievanceRecord, error) {
	log := logger.New().Component("intake").WithField("base_url", c.baseURL)
	endpoint := c.baseURL + "/grievances"
	reqID := uuid.New().String()

	var out []types.GrievanceRecord
	attempt := 0
	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set(logger.RequestIDHeader, reqID)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.WithError(err).WithField("attempt", attempt).Warn("intake request failed")
			return err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode >= 500:
			log.WithField("status", resp.StatusCode).WithField("attempt", attempt).Warn("intake server error")
			return fmt.Errorf("server error: %d %s", resp.StatusCode, body)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("request rejected: %d %s", resp.StatusCode, body))
		}

		var records []types.GrievanceRecord
		if err := json.Unmarshal(body, &records); err != nil {
			return backoff.Permanent(fmt.Errorf("json decode error: %w", err))
		}
		out = records
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.MaxElapsed
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("intake.Fetch: %w", err)
	}
	log.WithField("records", len(out)).WithField("attempts", attempt).Info("intake fetch complete")
	return out, nil
}
