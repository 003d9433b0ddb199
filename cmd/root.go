package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/top-stats/topstats-go/config"
	"github.com/top-stats/topstats-go/topstats"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *topstats.Client

	// Command flags
	sortMetric string
	ascending  bool
	periodFlag string
	filterExpr string
	searchName string
	searchTag  string
	metricFlag string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "topstats",
	Short: "A CLI for the topstats.gg Discord bot statistics API",
	Long: `topstats is a CLI for querying the topstats.gg statistics service:
bot rankings, historical metrics, and side-by-side comparisons of up
to four bots.`,
	PersistentPreRunE: initializeApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if client != nil {
			client.Close()
		}
	},
}

// SetVersion sets the version information for the root command
func SetVersion(version, buildTime string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	units, err := topstats.ParseUnitSystem(cfg.API.UnitSystem)
	if err != nil {
		return fmt.Errorf("invalid unit system: %w", err)
	}

	opts := []topstats.Option{
		topstats.WithUnitSystem(units),
		topstats.WithPageLimit(cfg.API.PageLimit),
	}
	if cfg.API.BaseURL != "" {
		opts = append(opts, topstats.WithBaseURL(cfg.API.BaseURL))
	}
	if cfg.API.Timeout > 0 {
		opts = append(opts, topstats.WithTimeout(cfg.API.Timeout))
	}
	if cfg.RateLimit.Enabled {
		opts = append(opts, topstats.WithRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	client, err = topstats.NewClient(cfg.API.Token, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create topstats client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// parseBotID parses a positional bot ID argument
func parseBotID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid bot ID %q: expected a positive integer", arg)
	}
	return id, nil
}

// parsePeriodFlag converts the --period flag, treating empty as all-time
func parsePeriodFlag() (topstats.Period, error) {
	if periodFlag == "" {
		return topstats.PeriodAllTime, nil
	}
	return topstats.ParsePeriod(periodFlag)
}

// botCmd represents the bot command
var botCmd = &cobra.Command{
	Use:   "bot <id>",
	Short: "Show a ranked bot and its current metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	id, err := parseBotID(args[0])
	if err != nil {
		return err
	}

	bot, err := client.GetBot(cmd.Context(), id)
	if err != nil {
		return err
	}

	renderBot(bot)
	return nil
}

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user <id>",
	Short: "List the ranked bots owned by a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUser,
}

func runUser(cmd *cobra.Command, args []string) error {
	id, err := parseBotID(args[0])
	if err != nil {
		return err
	}

	bots, err := client.GetUserBots(cmd.Context(), id)
	if err != nil {
		return err
	}

	if len(bots) == 0 {
		fmt.Println("No bots found for this user.")
		return nil
	}

	renderBots(bots)
	return nil
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to topstats.gg",
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Println("Testing connection to topstats.gg...")

	if err := client.TestConnection(cmd.Context()); err != nil {
		return err
	}

	fmt.Println("✓ Connection successful!")
	return nil
}
