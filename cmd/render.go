package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/top-stats/topstats-go/topstats"
)

// newTable returns a table writer with the shared output style.
func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	return t
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("2006-01-02")
}

func formatRanked(r topstats.Ranked) string {
	if r.Rank == 0 {
		return fmt.Sprintf("%d", r.Value)
	}
	return fmt.Sprintf("%d (#%d)", r.Value, r.Rank)
}

// renderBot prints a single bot as a field/value table.
func renderBot(bot *topstats.Bot) {
	t := newTable()
	t.AppendRows([]table.Row{
		{"ID", bot.ID},
		{"Name", bot.Name},
		{"Prefix", bot.Prefix},
		{"Description", bot.ShortDescription},
		{"Website", bot.Website},
		{"Server count", formatRanked(bot.ServerCount)},
		{"Shard count", formatRanked(bot.ShardCount)},
		{"Monthly votes", formatRanked(bot.MonthlyVotes)},
		{"Total votes", formatRanked(bot.TotalVotes)},
		{"Created", formatTime(bot.CreatedAt())},
		{"Approved", formatTime(bot.ApprovedAt)},
		{"Updated", formatTime(bot.UpdatedAt)},
	})
	t.Render()
}

// renderBots prints full bot records as a ranking-style table.
func renderBots(bots []topstats.Bot) {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Name", "Servers", "Shards", "Monthly votes", "Total votes"})
	for _, bot := range bots {
		t.AppendRow(table.Row{
			bot.ID,
			bot.Name,
			formatRanked(bot.ServerCount),
			formatRanked(bot.ShardCount),
			formatRanked(bot.MonthlyVotes),
			formatRanked(bot.TotalVotes),
		})
	}
	t.Render()
}

// renderPartialBots prints ranking rows, leading with the requested metric.
func renderPartialBots(bots []topstats.PartialBot, metric topstats.Metric) {
	t := newTable()
	t.AppendHeader(table.Row{"Rank", "Name", "ID", metricLabel(metric)})
	for _, bot := range bots {
		ranked := metricOf(bot, metric)
		t.AppendRow(table.Row{ranked.Rank, bot.Name, bot.ID, ranked.Value})
	}
	t.Render()
}

// renderHistory prints one bot's metric samples in service order.
func renderHistory(entries []topstats.HistoryEntry, metric topstats.Metric) {
	t := newTable()
	t.AppendHeader(table.Row{"Time", metricLabel(metric)})
	for _, entry := range entries {
		t.AppendRow(table.Row{entry.Timestamp.Format(time.RFC3339), entry.Value})
	}
	t.Render()
}

// renderComparison prints index-paired samples side by side, one column per bot.
func renderComparison(ids []int64, rows []topstats.ComparedRow, metric topstats.Metric) {
	t := newTable()

	header := table.Row{"Time"}
	for _, id := range ids {
		header = append(header, fmt.Sprintf("%d", id))
	}
	t.AppendHeader(header)

	for _, row := range rows {
		out := table.Row{row[0].Timestamp.Format(time.RFC3339)}
		for _, entry := range row {
			out = append(out, entry.Value)
		}
		t.AppendRow(out)
	}

	fmt.Printf("%s of %d bots:\n", metricLabel(metric), len(ids))
	t.Render()
}

func metricLabel(metric topstats.Metric) string {
	return strings.ReplaceAll(metric.Token(), "_", " ")
}

func metricOf(bot topstats.PartialBot, metric topstats.Metric) topstats.Ranked {
	switch metric {
	case topstats.MetricShardCount:
		return bot.ShardCount
	case topstats.MetricMonthlyVotes:
		return bot.MonthlyVotes
	case topstats.MetricTotalVotes:
		return bot.TotalVotes
	default:
		return bot.ServerCount
	}
}
