package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TsepisoMotloung/360-Rating/internal/app"
	"github.com/TsepisoMotloung/360-Rating/internal/config"
	"github.com/TsepisoMotloung/360-Rating/internal/logging"
	"github.com/TsepisoMotloung/360-Rating/internal/service"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    = config.Default()
	logger = zap.NewNop()
)

// convert flags
var (
	inputPath string
	sqlOut    string
	jsonOut   string
	dialect   string
	quoting   string
	periodID  int
)

// rootCmd без подкоманды работает как convert
var rootCmd = &cobra.Command{
	Use:   "ratingimport",
	Short: "Convert the manager rating guide CSV into SQL and JSON assignment imports",
	Long: `ratingimport reads the rating guide export (one ratee row followed by its raters,
ratee cell left blank on the following rows) and writes:

  - a SQL script inserting the assignments into the active rating period,
  - a JSON array of assignment records for the API import.

Run without a subcommand to convert with the configured paths.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format, verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runConvert,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the CSV into the SQL script and the JSON file",
	Args:  cobra.NoArgs,
	RunE:  runConvert,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	addConvertFlags(rootCmd)
	addConvertFlags(convertCmd)

	rootCmd.AddCommand(convertCmd, sql2jsonCmd, serveCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "CSV export to read")
	cmd.Flags().StringVar(&sqlOut, "sql-out", "", "Where to write the SQL script")
	cmd.Flags().StringVar(&jsonOut, "json-out", "", "Where to write the JSON file")
	cmd.Flags().StringVarP(&dialect, "dialect", "d", "", "SQL dialect: mssql, postgres, sqlite")
	cmd.Flags().StringVar(&quoting, "quoting", "", "Literal quoting: escape or raw")
	cmd.Flags().IntVar(&periodID, "period-id", 0, "periodId placeholder written to JSON")
}

// applyConvertFlags переносит явно заданные флаги поверх конфига.
func applyConvertFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input.Path = inputPath
	}
	if flags.Changed("sql-out") {
		cfg.Output.SQLPath = sqlOut
	}
	if flags.Changed("json-out") {
		cfg.Output.JSONPath = jsonOut
	}
	if flags.Changed("dialect") {
		cfg.SQL.Dialect = dialect
	}
	if flags.Changed("quoting") {
		cfg.SQL.Quoting = quoting
	}
	if flags.Changed("period-id") {
		cfg.JSON.PeriodID = periodID
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	applyConvertFlags(cmd)

	opts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	repos := app.NewRepositories(cfg.Columns())
	converter := service.NewConverterService(repos.Artifacts, cfg.Input.RaterColumn, logger)

	out := cmd.OutOrStdout()
	logger.Info("converting assignments",
		zap.String("input", cfg.Input.Path),
		zap.String("dialect", string(opts.Dialect)),
		zap.String("quoting", string(opts.Quoting)),
	)
	_, _ = fmt.Fprintln(out, "Generating SQL INSERT statements...")

	report, err := converter.Run(commandContext(cmd), repos.File(cfg.Input.Path), opts, cfg.Outputs())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "✓ SQL file created: %s\n", report.SQLPath)
	_, _ = fmt.Fprintf(out, "✓ JSON file created: %s\n", report.JSONPath)
	_, _ = fmt.Fprintf(out, "✓ Total assignments processed: %d\n", report.Assignments)
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
