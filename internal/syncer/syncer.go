// Package syncer owns the fetch lifecycle of the dashboard's data views.
// Each controller holds one view's state (items, loading, error,
// pagination), triggers repository calls when its parameters change, and
// discards responses from superseded requests.
package syncer

import (
	"errors"
	"fmt"

	"tradebot-dashboard-go/internal/gateway"
	"tradebot-dashboard-go/internal/models"
)

// State is the renderer-facing snapshot of one data view. On failure the
// last-known-good items and pagination stay visible next to the error.
type State struct {
	Items      []models.TradingOperation `json:"items"`
	Pagination models.Pagination         `json:"pagination"`
	Loading    bool                      `json:"loading"`
	Err        string                    `json:"error,omitempty"`
}

// clone copies the state so callers can't mutate controller internals.
func (s State) clone() State {
	out := s
	out.Items = append([]models.TradingOperation(nil), s.Items...)
	return out
}

// errorMessage converts a repository failure into a display-ready string.
func errorMessage(err error) string {
	var apiErr *gateway.APIError
	var httpErr *gateway.HTTPError
	var netErr *gateway.NetworkError

	switch {
	case errors.Is(err, gateway.ErrUnauthenticated):
		return "Your session has expired. Please sign in again."
	case errors.Is(err, gateway.ErrNotFound):
		return "The requested record was not found."
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &httpErr):
		return fmt.Sprintf("The server returned an unexpected error (HTTP %d).", httpErr.Status)
	case errors.As(err, &netErr):
		return "Could not reach the server. Check your connection."
	default:
		return err.Error()
	}
}

// notify performs a coalescing, non-blocking send.
func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
