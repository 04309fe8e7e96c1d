package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TsepisoMotloung/360-Rating/internal/app"
	"github.com/TsepisoMotloung/360-Rating/internal/domain"
	"github.com/TsepisoMotloung/360-Rating/internal/service"
)

var (
	sqlIn          string
	restoredJSON   string
	keepCase       bool
	keepDuplicates bool
)

// sql2jsonCmd восстанавливает JSON по уже сгенерированному (или поправленному руками) скрипту
var sql2jsonCmd = &cobra.Command{
	Use:   "sql2json",
	Short: "Rebuild the JSON assignment file from a generated SQL script",
	Long: `Scans the VALUES list of an import script for ('rater', 'ratee') tuples and
writes them as JSON assignment records. Emails are lower-cased and duplicate
pairs dropped unless told otherwise.`,
	Args: cobra.NoArgs,
	RunE: runSQLToJSON,
}

func init() {
	sql2jsonCmd.Flags().StringVar(&sqlIn, "in", "", "SQL script to read (default: configured sql output)")
	sql2jsonCmd.Flags().StringVar(&restoredJSON, "out", "", "JSON file to write (default: configured json output)")
	sql2jsonCmd.Flags().BoolVar(&keepCase, "keep-case", false, "Do not lower-case emails")
	sql2jsonCmd.Flags().BoolVar(&keepDuplicates, "keep-duplicates", false, "Keep repeated (rater, ratee) pairs")
}

func runSQLToJSON(cmd *cobra.Command, args []string) error {
	in := cfg.Output.SQLPath
	if sqlIn != "" {
		in = sqlIn
	}
	out := cfg.Output.JSONPath
	if restoredJSON != "" {
		out = restoredJSON
	}

	repos := app.NewRepositories(cfg.Columns())
	converter := service.NewConverterService(repos.Artifacts, cfg.Input.RaterColumn, logger)

	n, err := converter.SQLToJSON(commandContext(cmd), in, out, domain.ParseOptions{
		Lowercase: !keepCase,
		Dedup:     !keepDuplicates,
	}, cfg.JSON.PeriodID)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d assignments to %s\n", n, out)
	return nil
}
