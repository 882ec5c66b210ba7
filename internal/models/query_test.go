package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func TestListOptions_Encode(t *testing.T) {
	t.Run("AllSet", func(t *testing.T) {
		side := SideBuy
		opts := ListOptions{Page: intp(2), Limit: intp(10), Side: &side, Days: intp(7)}
		assert.Equal(t, "page=2&limit=10&side=BUY&days=7", opts.Encode())
	})

	t.Run("AbsentFieldsOmitted", func(t *testing.T) {
		opts := ListOptions{Limit: intp(25)}
		assert.Equal(t, "limit=25", opts.Encode())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", ListOptions{}.Encode())
	})

	t.Run("OrderIsFixed", func(t *testing.T) {
		// page before limit before side before days, regardless of which
		// subset is present.
		side := SideSell
		opts := ListOptions{Side: &side, Page: intp(1)}
		assert.Equal(t, "page=1&side=SELL", opts.Encode())
	})
}

func TestFeedOptions_Encode(t *testing.T) {
	t.Run("AllSet", func(t *testing.T) {
		opts := FeedOptions{Limit: intp(50), BotIDs: []string{"b1", "b2"}, Hours: intp(24)}
		assert.Equal(t, "limit=50&bot_ids=b1%2Cb2&hours=24", opts.Encode())
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", FeedOptions{}.Encode())
	})

	t.Run("OnlyHours", func(t *testing.T) {
		assert.Equal(t, "hours=6", FeedOptions{Hours: intp(6)}.Encode())
	})
}
