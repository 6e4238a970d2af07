package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/user/moviescope/internal/service"
)

func newFetchCmd(app *cli) *cobra.Command {
	var url string
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download and extract the dataset (skips steps whose output already exists)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url != "" {
				app.cfg.DataURL = url
			}
			if err := service.Fetch(cmd.Context(), app.cfg); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "archive:   %s\n", app.cfg.ArchivePath())
			fmt.Fprintf(out, "extracted: %s\n", app.cfg.ExtractDir())
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "dataset URL (overrides DATA_URL)")
	return cmd
}
