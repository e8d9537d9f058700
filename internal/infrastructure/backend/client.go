// Package backend talks to the backend data API that owns drivers,
// invitations and face-detection telemetry.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"drivebuddy-admin/internal/domain/session"
	"drivebuddy-admin/internal/logger"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Client is the record store and telemetry source backed by the data API.
type Client struct {
	httpClient   *resty.Client
	serviceToken string
}

// NewClient builds a client for baseURL. Failed calls are never retried;
// the dashboard user re-invokes the action instead.
func NewClient(baseURL string, timeout time.Duration, serviceToken string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient:   httpClient,
		serviceToken: serviceToken,
	}
}

// token prefers the acting admin's bearer token over the service token.
func (c *Client) token(ctx context.Context) string {
	if s, ok := session.FromContext(ctx); ok && s.Token != "" {
		return s.Token
	}
	return c.serviceToken
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.httpClient.R().SetContext(ctx)
	if tok := c.token(ctx); tok != "" {
		req.SetAuthToken(tok)
	}
	return req
}

// do executes req and decodes a 2xx JSON body into out when out is non-nil.
func (c *Client) do(req *resty.Request, method, path string, out any) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		logger.Error("Backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return networkError(err)
	}

	if resp.IsError() {
		logger.Warn("Backend returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
		)
		return upstreamError(resp.StatusCode(), resp.Body())
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Health checks that the data API answers at all.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.httpClient.R().SetContext(ctx).Get("/")
	if err != nil {
		return networkError(err)
	}
	if resp.StatusCode() >= 500 {
		return upstreamError(resp.StatusCode(), resp.Body())
	}
	return nil
}
