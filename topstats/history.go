package topstats

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// historyPoint mirrors one row of a historical response. Only the requested
// metric key is populated by the service.
type historyPoint struct {
	Time         time.Time `json:"time"`
	MonthlyVotes *int64    `json:"monthly_votes"`
	TotalVotes   *int64    `json:"total_votes"`
	ServerCount  *int64    `json:"server_count"`
	ShardCount   *int64    `json:"shard_count"`
}

func (p historyPoint) entry(metric Metric) HistoryEntry {
	var value *int64
	switch metric {
	case MetricMonthlyVotes:
		value = p.MonthlyVotes
	case MetricTotalVotes:
		value = p.TotalVotes
	case MetricShardCount:
		value = p.ShardCount
	default:
		value = p.ServerCount
	}

	entry := HistoryEntry{Timestamp: p.Time}
	if value != nil {
		entry.Value = *value
	}
	return entry
}

// GetHistoricalBotStats fetches a bot's samples of one metric for a period of
// time, in the chronological order the service returns them.
func (c *Client) GetHistoricalBotStats(ctx context.Context, id int64, period Period, metric Metric) ([]HistoryEntry, error) {
	if id <= 0 {
		return nil, ErrInvalidBotID
	}

	params := url.Values{
		"timeFrame": {period.Token()},
		"type":      {metric.Token()},
	}

	var payload struct {
		Data []historyPoint `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("/bots/%d/historical", id), params, &payload); err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(payload.Data))
	for _, p := range payload.Data {
		entries = append(entries, p.entry(metric))
	}
	return entries, nil
}

// GetHistoricalBotServerCount fetches a bot's historical server count.
func (c *Client) GetHistoricalBotServerCount(ctx context.Context, id int64, period Period) ([]HistoryEntry, error) {
	return c.GetHistoricalBotStats(ctx, id, period, MetricServerCount)
}

// GetHistoricalBotShardCount fetches a bot's historical shard count.
func (c *Client) GetHistoricalBotShardCount(ctx context.Context, id int64, period Period) ([]HistoryEntry, error) {
	return c.GetHistoricalBotStats(ctx, id, period, MetricShardCount)
}

// GetHistoricalBotMonthlyVotes fetches a bot's historical monthly votes.
func (c *Client) GetHistoricalBotMonthlyVotes(ctx context.Context, id int64, period Period) ([]HistoryEntry, error) {
	return c.GetHistoricalBotStats(ctx, id, period, MetricMonthlyVotes)
}

// GetHistoricalBotTotalVotes fetches a bot's historical total votes.
func (c *Client) GetHistoricalBotTotalVotes(ctx context.Context, id int64, period Period) ([]HistoryEntry, error) {
	return c.GetHistoricalBotStats(ctx, id, period, MetricTotalVotes)
}
