package models

import (
	"net/url"
	"strconv"
	"strings"
)

// ListOptions are the filter and paging parameters for a bot's operation
// history. Nil fields are omitted from the request entirely.
type ListOptions struct {
	Page  *int
	Limit *int
	Side  *Side
	Days  *int
}

// Encode renders the options as a query string with parameters in the
// fixed order page, limit, side, days. Returns "" when nothing is set.
func (o ListOptions) Encode() string {
	var pairs []string
	pairs = appendIntParam(pairs, "page", o.Page)
	pairs = appendIntParam(pairs, "limit", o.Limit)
	if o.Side != nil {
		pairs = append(pairs, "side="+url.QueryEscape(string(*o.Side)))
	}
	pairs = appendIntParam(pairs, "days", o.Days)
	return strings.Join(pairs, "&")
}

// FeedOptions are the window parameters for the cross-bot live feed.
// Nil/empty fields are omitted from the request entirely.
type FeedOptions struct {
	Limit  *int
	BotIDs []string
	Hours  *int
}

// Encode renders the options as a query string with parameters in the
// fixed order limit, bot_ids, hours. Bot ids are comma-joined.
func (o FeedOptions) Encode() string {
	var pairs []string
	pairs = appendIntParam(pairs, "limit", o.Limit)
	if len(o.BotIDs) > 0 {
		pairs = append(pairs, "bot_ids="+url.QueryEscape(strings.Join(o.BotIDs, ",")))
	}
	pairs = appendIntParam(pairs, "hours", o.Hours)
	return strings.Join(pairs, "&")
}

func appendIntParam(pairs []string, key string, value *int) []string {
	if value == nil {
		return pairs
	}
	return append(pairs, key+"="+strconv.Itoa(*value))
}
