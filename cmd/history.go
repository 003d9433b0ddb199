package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/top-stats/topstats-go/topstats"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show a bot's historical metric samples",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <id> <id> [id] [id]",
	Short: "Compare the historical metrics of 2 to 4 bots",
	Long: `Compare the historical samples of one metric across 2 to 4 bots.
Each bot's series is fetched independently and rows are paired by
index, truncated to the shortest series.`,
	Args: cobra.RangeArgs(2, 4),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(compareCmd)

	historyCmd.Flags().StringVarP(&metricFlag, "metric", "m", "server_count", "metric (server_count, shard_count, monthly_votes, total_votes)")
	historyCmd.Flags().StringVarP(&periodFlag, "period", "p", "", "time period (1d, 7d, 30d, 90d, 1y, alltime, ...)")

	compareCmd.Flags().StringVarP(&metricFlag, "metric", "m", "server_count", "metric (server_count, shard_count, monthly_votes, total_votes)")
	compareCmd.Flags().StringVarP(&periodFlag, "period", "p", "", "time period (1d, 7d, 30d, 90d, 1y, alltime, ...)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	id, err := parseBotID(args[0])
	if err != nil {
		return err
	}

	metric, err := topstats.ParseMetric(metricFlag)
	if err != nil {
		return err
	}

	period, err := parsePeriodFlag()
	if err != nil {
		return err
	}

	entries, err := client.GetHistoricalBotStats(cmd.Context(), id, period, metric)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No historical data found.")
		return nil
	}

	renderHistory(entries, metric)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseBotID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	metric, err := topstats.ParseMetric(metricFlag)
	if err != nil {
		return err
	}

	period, err := parsePeriodFlag()
	if err != nil {
		return err
	}

	logger.Debug().Ints64("ids", ids).Str("metric", metric.String()).Msg("Comparing bots")

	rows, err := client.CompareBotStats(cmd.Context(), metric, period, ids...)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println("No overlapping historical data found.")
		return nil
	}

	renderComparison(ids, rows, metric)
	return nil
}
