package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/moviescope/internal/service"
)

func newExportCmd(app *cli) *cobra.Command {
	var databaseURL string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the cleaned tables into Postgres (movie_snapshots, character_snapshots)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				databaseURL = app.cfg.DatabaseURL
			}
			ds, err := app.dataset()
			if err != nil {
				return err
			}
			if err := service.ExportSnapshot(databaseURL, ds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d movies, %d characters\n", len(ds.Movies), len(ds.Characters))
			return nil
		},
	}
	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres DSN (overrides DATABASE_URL)")
	return cmd
}
