package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"tradebot-dashboard-go/internal/gateway"
	"tradebot-dashboard-go/internal/models"

	"go.uber.org/zap"
)

// OperationAPI is the read/write contract for a bot's trading operations.
type OperationAPI interface {
	Create(ctx context.Context, op models.TradingOperation) (*models.TradingOperation, error)
	ListForBot(ctx context.Context, botID string, opts models.ListOptions) ([]models.TradingOperation, models.Pagination, error)
	GetByID(ctx context.Context, tradeID string) (*models.TradingOperation, error)
}

// OperationRepository accesses trading-operation records over the gateway.
// It never swallows errors; every failure propagates to the caller.
type OperationRepository struct {
	gw     *gateway.Client
	logger *zap.Logger
}

var _ OperationAPI = (*OperationRepository)(nil)

// NewOperationRepository creates a new OperationRepository.
func NewOperationRepository(gw *gateway.Client, logger *zap.Logger) *OperationRepository {
	return &OperationRepository{gw: gw, logger: logger}
}

// listEnvelope is the backend's response shape for operation lists.
type listEnvelope struct {
	Success    bool                      `json:"success"`
	Operations []models.TradingOperation `json:"operations"`
	Pagination *models.Pagination        `json:"pagination"`
	Message    string                    `json:"message"`
}

// operationEnvelope is the backend's response shape for a single operation.
type operationEnvelope struct {
	Success   bool                     `json:"success"`
	Operation *models.TradingOperation `json:"operation"`
	Message   string                   `json:"message"`
}

// Create persists one operation record server-side, scoped by its bot id.
func (r *OperationRepository) Create(ctx context.Context, op models.TradingOperation) (*models.TradingOperation, error) {
	path := fmt.Sprintf("/api/bots/%s/trading-operations", url.PathEscape(op.BotID))

	var env operationEnvelope
	if err := r.gw.Request(ctx, http.MethodPost, path, op, &env); err != nil {
		return nil, fmt.Errorf("failed to create operation: %w", err)
	}
	if !env.Success {
		return nil, &gateway.APIError{Message: messageOr(env.Message, "operation was not created")}
	}

	r.logger.Info("Created trading operation",
		zap.String("bot_id", op.BotID),
		zap.String("symbol", op.Symbol),
		zap.String("side", string(op.Side)),
	)

	if env.Operation != nil {
		return env.Operation, nil
	}
	// Backend acknowledged without echoing the record.
	return &op, nil
}

// ListForBot fetches one page of a bot's operation history. Query
// parameters are built only from the options that are set, in the fixed
// order page, limit, side, days.
func (r *OperationRepository) ListForBot(ctx context.Context, botID string, opts models.ListOptions) ([]models.TradingOperation, models.Pagination, error) {
	path := fmt.Sprintf("/api/bots/%s/trading-operations", url.PathEscape(botID))
	if qs := opts.Encode(); qs != "" {
		path += "?" + qs
	}

	var env listEnvelope
	if err := r.gw.Request(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list operations for bot %s: %w", botID, err)
	}
	if !env.Success {
		return nil, models.Pagination{}, &gateway.APIError{Message: messageOr(env.Message, "could not load operations")}
	}

	return normalizePage(env.Operations, env.Pagination)
}

// GetByID fetches a single operation. Any non-2xx status for the id is
// reported as gateway.ErrNotFound.
func (r *OperationRepository) GetByID(ctx context.Context, tradeID string) (*models.TradingOperation, error) {
	path := fmt.Sprintf("/api/trading-operations/%s", url.PathEscape(tradeID))

	var env operationEnvelope
	if err := r.gw.Request(ctx, http.MethodGet, path, nil, &env); err != nil {
		var httpErr *gateway.HTTPError
		if errors.As(err, &httpErr) {
			return nil, fmt.Errorf("operation %s: %w", tradeID, gateway.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get operation %s: %w", tradeID, err)
	}
	if !env.Success || env.Operation == nil {
		return nil, &gateway.APIError{Message: messageOr(env.Message, "operation not available")}
	}

	return env.Operation, nil
}

// normalizePage defaults a missing collection to an empty slice and a
// missing pagination object to an empty first page, and recomputes the
// navigation flags from the counts.
func normalizePage(items []models.TradingOperation, p *models.Pagination) ([]models.TradingOperation, models.Pagination, error) {
	if items == nil {
		items = []models.TradingOperation{}
	}
	if p == nil {
		return items, models.DerivePagination(1, 0, 0), nil
	}
	return items, models.DerivePagination(p.CurrentPage, p.TotalPages, p.TotalCount), nil
}

func messageOr(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
