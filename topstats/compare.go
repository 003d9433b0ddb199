package topstats

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Compare operations accept between MinCompareBots and MaxCompareBots IDs.
const (
	MinCompareBots = 2
	MaxCompareBots = 4
)

// ComparedRow holds positionally paired samples, one per compared bot, in the
// order the IDs were passed. Rows are paired strictly by index after each
// series is fetched independently, truncated to the shortest series. Samples
// in one row are therefore not guaranteed to share a timestamp when the
// compared histories have gaps or differing cadences.
type ComparedRow []HistoryEntry

// validateCompareIDs rejects invalid ID sets before any request is made.
func validateCompareIDs(ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return ErrInvalidBotID
		}
		seen[id] = struct{}{}
	}

	if len(seen) < MinCompareBots || len(seen) > MaxCompareBots || len(seen) != len(ids) {
		return fmt.Errorf("%w, but got %d", ErrCompareArity, len(ids))
	}
	return nil
}

// CompareBotStats fetches one metric series per bot concurrently and pairs
// them row by row. If any fetch fails, the whole comparison fails.
func (c *Client) CompareBotStats(ctx context.Context, metric Metric, period Period, ids ...int64) ([]ComparedRow, error) {
	if err := validateCompareIDs(ids); err != nil {
		return nil, err
	}

	series := make([][]HistoryEntry, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxCompareBots)

	for i, id := range ids {
		g.Go(func() error {
			entries, err := c.GetHistoricalBotStats(gctx, id, period, metric)
			if err != nil {
				return fmt.Errorf("bot %d: %w", id, err)
			}
			series[i] = entries
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	length := len(series[0])
	for _, s := range series[1:] {
		if len(s) < length {
			length = len(s)
		}
	}

	rows := make([]ComparedRow, length)
	for r := range rows {
		row := make(ComparedRow, len(ids))
		for i := range ids {
			row[i] = series[i][r]
		}
		rows[r] = row
	}
	return rows, nil
}

// CompareBots fetches 2 to 4 ranked bots side by side, in the order the IDs
// were passed.
func (c *Client) CompareBots(ctx context.Context, ids ...int64) ([]Bot, error) {
	if err := validateCompareIDs(ids); err != nil {
		return nil, err
	}

	bots := make([]Bot, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxCompareBots)

	for i, id := range ids {
		g.Go(func() error {
			bot, err := c.GetBot(gctx, id)
			if err != nil {
				return fmt.Errorf("bot %d: %w", id, err)
			}
			bots[i] = *bot
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bots, nil
}

// CompareBotServerCount compares the all-time historical server counts of two
// bots, paired sample by sample.
func (c *Client) CompareBotServerCount(ctx context.Context, first, second int64) ([]ComparedRow, error) {
	return c.CompareBotStats(ctx, MetricServerCount, PeriodAllTime, first, second)
}

// CompareBotShardCount compares the all-time historical shard counts of two
// bots, paired sample by sample.
func (c *Client) CompareBotShardCount(ctx context.Context, first, second int64) ([]ComparedRow, error) {
	return c.CompareBotStats(ctx, MetricShardCount, PeriodAllTime, first, second)
}

// CompareBotMonthlyVotes compares the all-time historical monthly votes of two
// bots, paired sample by sample.
func (c *Client) CompareBotMonthlyVotes(ctx context.Context, first, second int64) ([]ComparedRow, error) {
	return c.CompareBotStats(ctx, MetricMonthlyVotes, PeriodAllTime, first, second)
}

// CompareBotTotalVotes compares the historical total votes of 2 to 4 bots
// within one shared time period, paired sample by sample.
func (c *Client) CompareBotTotalVotes(ctx context.Context, period Period, ids ...int64) ([]ComparedRow, error) {
	return c.CompareBotStats(ctx, MetricTotalVotes, period, ids...)
}
