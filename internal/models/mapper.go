package models

// MapOperation shapes a (bot, raw trade) pair into the canonical
// operation-creation payload, applying the platform fallbacks for
// strategy, algorithm and confidence. It is a pure transform with no
// failure path; callers validate the result before submission.
func MapOperation(bot Bot, trade RawTrade) TradingOperation {
	return TradingOperation{
		BotID:         bot.ID,
		Symbol:        bot.Symbol,
		Side:          trade.Type,
		Quantity:      trade.Quantity,
		Price:         trade.Price,
		Strategy:      stringOr(bot.Strategy, DefaultStrategy),
		Signal:        trade.Signal,
		AlgorithmUsed: stringOr(trade.AlgorithmUsed, DefaultAlgorithm),
		Confidence:    floatOr(trade.Confidence, DefaultConfidence),
		PnL:           trade.PnL,
	}
}

func stringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func floatOr(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}
