package repository

import (
	"context"
	"fmt"
	"net/http"

	"tradebot-dashboard-go/internal/gateway"
	"tradebot-dashboard-go/internal/models"

	"go.uber.org/zap"
)

const feedPath = "/api/trading-feed/live"

// FeedAPI is the read contract for the cross-bot live feed.
type FeedAPI interface {
	ListFeed(ctx context.Context, opts models.FeedOptions) ([]models.TradingOperation, models.Pagination, error)
}

// FeedRepository reads the windowed stream of recent trading activity.
type FeedRepository struct {
	gw     *gateway.Client
	logger *zap.Logger
}

var _ FeedAPI = (*FeedRepository)(nil)

// NewFeedRepository creates a new FeedRepository.
func NewFeedRepository(gw *gateway.Client, logger *zap.Logger) *FeedRepository {
	return &FeedRepository{gw: gw, logger: logger}
}

// feedEnvelope is the backend's response shape for the live feed.
type feedEnvelope struct {
	Success    bool                      `json:"success"`
	Feed       []models.TradingOperation `json:"feed"`
	Pagination *models.Pagination        `json:"pagination"`
	Message    string                    `json:"message"`
}

// ListFeed fetches one window of the live feed. Query parameters are
// built only from the options that are set, in the fixed order limit,
// bot_ids, hours. A response missing the feed array or the pagination
// object is treated as an empty window, not an error.
func (r *FeedRepository) ListFeed(ctx context.Context, opts models.FeedOptions) ([]models.TradingOperation, models.Pagination, error) {
	path := feedPath
	if qs := opts.Encode(); qs != "" {
		path += "?" + qs
	}

	var env feedEnvelope
	if err := r.gw.Request(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list live feed: %w", err)
	}
	if !env.Success {
		return nil, models.Pagination{}, &gateway.APIError{Message: messageOr(env.Message, "could not load live feed")}
	}

	r.logger.Debug("Fetched live feed window", zap.Int("entries", len(env.Feed)))
	return normalizePage(env.Feed, env.Pagination)
}
