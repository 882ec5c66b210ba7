package gateway

import (
	"context"
	"time"

	"tradebot-dashboard-go/internal/config"
	"tradebot-dashboard-go/internal/session"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client issues authenticated JSON requests against the backend base URL
// and normalizes failures into the gateway error taxonomy. It applies no
// retry policy; retries, if any, belong to the caller.
type Client struct {
	http    *resty.Client
	tokens  session.Store
	logger  *zap.Logger
	limiter *rate.Limiter
}

// New creates a gateway client for the configured backend.
func New(cfg *config.API, tokens session.Store, logger *zap.Logger) *Client {
	client := resty.New().SetBaseURL(cfg.BaseURL)
	if cfg.Timeout > 0 {
		client.SetTimeout(time.Duration(cfg.Timeout) * time.Second)
	}

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		http:    client,
		tokens:  tokens,
		logger:  logger,
		limiter: limiter,
	}
}

// Request executes one authenticated request. The path may carry a
// pre-encoded query string so parameter order is preserved. On a 2xx
// response the body is unmarshalled into result (when non-nil); any other
// outcome maps to ErrUnauthenticated, *NetworkError or *HTTPError.
func (c *Client) Request(ctx context.Context, method, path string, body, result any) error {
	token, err := c.tokens.Get()
	if err != nil {
		return err
	}
	if token == "" {
		return ErrUnauthenticated
	}

	// Wait for the rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return &NetworkError{Err: err}
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	requestID := uuid.NewString()
	c.logger.Debug("Executing request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("Request failed at transport level",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return &NetworkError{Err: err}
	}

	if resp.IsError() {
		c.logger.Warn("Request failed",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode()),
		)
		return &HTTPError{Status: resp.StatusCode(), Body: resp.String()}
	}

	return nil
}
