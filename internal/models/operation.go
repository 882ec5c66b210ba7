package models

import "fmt"

// Side is the direction of a trading operation.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Platform-wide fallbacks applied when a bot or raw trade omits a value.
const (
	DefaultStrategy   = "Smart Scalper"
	DefaultAlgorithm  = "EMA_CROSSOVER"
	DefaultConfidence = 0.75
)

// TradingOperation is a single executed trade belonging to one bot.
// Field names mirror the backend's JSON wire format.
type TradingOperation struct {
	ID            string   `json:"id,omitempty"`
	BotID         string   `json:"botId"`
	Symbol        string   `json:"symbol"`
	Side          Side     `json:"side"`
	Quantity      float64  `json:"quantity"`
	Price         float64  `json:"price"`
	Strategy      string   `json:"strategy"`
	Signal        string   `json:"signal,omitempty"`
	AlgorithmUsed string   `json:"algorithmUsed"`
	Confidence    float64  `json:"confidence"`
	PnL           *float64 `json:"pnl,omitempty"`
}

// Validate checks the operation before it is submitted to the backend.
// The mapper never fails; validation is the caller's responsibility.
func (op *TradingOperation) Validate() error {
	if op.BotID == "" {
		return fmt.Errorf("operation is missing a bot id")
	}
	if op.Side != SideBuy && op.Side != SideSell {
		return fmt.Errorf("invalid side %q", op.Side)
	}
	if op.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %v", op.Quantity)
	}
	if op.Price <= 0 {
		return fmt.Errorf("price must be positive, got %v", op.Price)
	}
	if op.Confidence < 0 || op.Confidence > 1 {
		return fmt.Errorf("confidence must be within [0,1], got %v", op.Confidence)
	}
	return nil
}

// Bot is the subset of a trading bot the sync layer needs.
type Bot struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	Strategy string `json:"strategy,omitempty"`
}

// RawTrade is an executed trade as reported by a bot, before it has been
// shaped into a TradingOperation.
type RawTrade struct {
	Type          Side     `json:"type"`
	Quantity      float64  `json:"quantity"`
	Price         float64  `json:"price"`
	Signal        string   `json:"signal,omitempty"`
	AlgorithmUsed string   `json:"algorithmUsed,omitempty"`
	Confidence    *float64 `json:"confidence,omitempty"`
	PnL           *float64 `json:"pnl,omitempty"`
}
