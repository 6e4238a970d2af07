package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newProfileCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Missing values and skewness per column, plus load and clean statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.dataset()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			loads := make([][]string, 0, len(ds.LoadReports))
			for _, r := range ds.LoadReports {
				loads = append(loads, []string{r.File, strconv.Itoa(r.Rows), strconv.Itoa(r.Skipped)})
			}
			if err := printTable(out, []string{"FILE", "ROWS", "SKIPPED"}, loads); err != nil {
				return err
			}
			fmt.Fprintln(out)

			cols := ds.Profile()
			rows := make([][]string, 0, len(cols))
			for _, c := range cols {
				rows = append(rows, []string{
					c.Table, c.Column, strconv.Itoa(c.Total), strconv.Itoa(c.Missing), optionalFloat(c.Skewness),
				})
			}
			if err := printTable(out, []string{"TABLE", "COLUMN", "TOTAL", "MISSING", "SKEWNESS"}, rows); err != nil {
				return err
			}
			fmt.Fprintln(out)

			r := ds.CleanReport
			return printTable(out, []string{"CLEANING", "COUNT"}, [][]string{
				{"malformed category maps", strconv.Itoa(r.MalformedCategories)},
				{"release date missing", strconv.Itoa(r.ReleaseDateMissing)},
				{"birth date missing", strconv.Itoa(r.BirthDateMissing)},
				{"heights rescaled m->cm", strconv.Itoa(r.HeightRescaled)},
				{"heights missing", strconv.Itoa(r.HeightMissing)},
				{"gender unknown", strconv.Itoa(r.GenderUnknown)},
				{"box office filled", strconv.Itoa(r.BoxOfficeFilled)},
				{"runtime filled", strconv.Itoa(r.RuntimeFilled)},
			})
		},
	}
}
