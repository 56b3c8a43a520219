package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"go-zone-diff/internal/repository"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded comparison runs",
		Long: `List the runs recorded in the history database, newest first.

Examples:
  zonediff history --history runs.db
  zonediff history -n 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := root.cfg.HistoryDB
			if dbPath != "" {
				path = dbPath
			}
			if path == "" {
				return fmt.Errorf("no history database: pass --history or set HISTORY_DB")
			}

			history, err := repository.NewSQLiteHistoryRepository(path)
			if err != nil {
				return err
			}
			defer history.Close()

			runs, err := history.ListRuns(context.Background(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderRuns(runs))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "history", "", "SQLite history database (default from HISTORY_DB)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "max runs")

	return cmd
}
