package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validOperation() TradingOperation {
	return TradingOperation{
		BotID:         "b1",
		Symbol:        "BTCUSDT",
		Side:          SideBuy,
		Quantity:      0.5,
		Price:         60000,
		Strategy:      DefaultStrategy,
		AlgorithmUsed: DefaultAlgorithm,
		Confidence:    DefaultConfidence,
	}
}

func TestTradingOperation_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		op := validOperation()
		assert.NoError(t, op.Validate())
	})

	t.Run("MissingBotID", func(t *testing.T) {
		op := validOperation()
		op.BotID = ""
		assert.Error(t, op.Validate())
	})

	t.Run("InvalidSide", func(t *testing.T) {
		op := validOperation()
		op.Side = "HOLD"
		assert.Error(t, op.Validate())
	})

	t.Run("NonPositiveQuantity", func(t *testing.T) {
		op := validOperation()
		op.Quantity = 0
		assert.Error(t, op.Validate())
	})

	t.Run("NonPositivePrice", func(t *testing.T) {
		op := validOperation()
		op.Price = -1
		assert.Error(t, op.Validate())
	})

	t.Run("ConfidenceOutOfRange", func(t *testing.T) {
		op := validOperation()
		op.Confidence = 1.2
		assert.Error(t, op.Validate())
	})
}
