package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/top-stats/topstats-go/filter"
	"github.com/top-stats/topstats-go/topstats"
)

// topCmd represents the top command
var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List the top ranked bots for a metric",
	Long: `List the bots ranked highest on topstats.gg for the chosen metric.
Results can be narrowed client-side with a filter expression, for example:

  topstats top --sort monthly_votes --filter "ServerCount > 10000"`,
	RunE: runTop,
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search ranked bots by name or tag",
	RunE:  runSearch,
}

func init() {
	topCmd.Flags().StringVarP(&sortMetric, "sort", "s", "server_count", "ranking metric (server_count, shard_count, monthly_votes, total_votes)")
	topCmd.Flags().BoolVar(&ascending, "ascending", false, "sort ascending instead of descending")
	topCmd.Flags().StringVarP(&periodFlag, "period", "p", "", "time period (1d, 7d, 30d, 90d, 1y, alltime, ...)")
	topCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the results")

	searchCmd.Flags().StringVarP(&searchName, "name", "n", "", "bot name to search for")
	searchCmd.Flags().StringVarP(&searchTag, "tag", "t", "", "bot tag to search for")
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to the results")
}

func runTop(cmd *cobra.Command, args []string) error {
	metric, err := topstats.ParseMetric(sortMetric)
	if err != nil {
		return err
	}

	period, err := parsePeriodFlag()
	if err != nil {
		return err
	}

	logger.Debug().Str("sort", sortMetric).Bool("ascending", ascending).Msg("Fetching top bots")

	bots, err := client.GetTopBots(cmd.Context(), topstats.SortBy{Metric: metric, Ascending: ascending}, period)
	if err != nil {
		return err
	}

	bots, err = applyFilter(bots)
	if err != nil {
		return err
	}

	if len(bots) == 0 {
		fmt.Println("No bots found.")
		return nil
	}

	renderPartialBots(bots, metric)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchName == "" && searchTag == "" {
		return fmt.Errorf("at least one of --name or --tag is required")
	}

	logger.Debug().Str("name", searchName).Str("tag", searchTag).Msg("Searching bots")

	bots, err := client.SearchBots(cmd.Context(), searchName, searchTag)
	if err != nil {
		return err
	}

	bots, err = applyFilter(bots)
	if err != nil {
		return err
	}

	if len(bots) == 0 {
		fmt.Println("No bots found matching the search criteria.")
		return nil
	}

	renderPartialBots(bots, topstats.MetricServerCount)
	return nil
}

// applyFilter narrows rows with the --filter expression when one is given
func applyFilter(bots []topstats.PartialBot) ([]topstats.PartialBot, error) {
	if filterExpr == "" {
		return bots, nil
	}

	f, err := filter.Compile(filterExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	matches, err := f.Apply(bots)
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("before", len(bots)).Int("after", len(matches)).Str("filter", f.Expression()).Msg("Applied filter")
	return matches, nil
}
