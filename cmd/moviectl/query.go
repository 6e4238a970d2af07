package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/user/moviescope/internal/service"
)

func newQueryCmd(app *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run one of the dashboard queries",
	}
	cmd.AddCommand(
		newQueryGenresCmd(app),
		newQueryActorsCmd(app),
		newQueryHeightsCmd(app),
		newQueryReleasesCmd(app),
		newQueryBirthsCmd(app),
	)
	return cmd
}

func newQueryGenresCmd(app *cli) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "genres",
		Short: "Most common genres",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.dataset()
			if err != nil {
				return err
			}
			top, err := ds.TopGenres(n)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(top))
			for _, g := range top {
				rows = append(rows, []string{g.Genre, strconv.Itoa(g.Count)})
			}
			return printTable(cmd.OutOrStdout(), []string{"GENRE", "MOVIES"}, rows)
		},
	}
	cmd.Flags().IntVarP(&n, "top", "n", 10, "number of genres")
	return cmd
}

func newQueryActorsCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "actors",
		Short: "Distribution of actor counts per movie",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.dataset()
			if err != nil {
				return err
			}
			hist := ds.ActorCountHistogram()
			rows := make([][]string, 0, len(hist))
			for _, b := range hist {
				rows = append(rows, []string{strconv.Itoa(b.Actors), strconv.Itoa(b.Movies)})
			}
			return printTable(cmd.OutOrStdout(), []string{"ACTORS", "MOVIES"}, rows)
		},
	}
}

func newQueryHeightsCmd(app *cli) *cobra.Command {
	var (
		gender     string
		minH, maxH float64
		bins       int
		list       bool
	)
	cmd := &cobra.Command{
		Use:   "heights",
		Short: "Actors filtered by gender and height range (cm)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if bins < 1 {
				return fmt.Errorf("%w: --bins must be positive", service.ErrInvalidParam)
			}
			ds, err := app.dataset()
			if err != nil {
				return err
			}
			actors, err := ds.ActorsByGenderAndHeight(gender, minH, maxH)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if list {
				rows := make([][]string, 0, len(actors))
				for _, a := range actors {
					rows = append(rows, []string{
						strconv.FormatInt(a.MovieID, 10), a.ActorName, a.Gender,
						strconv.FormatFloat(a.Height, 'f', 2, 64),
					})
				}
				return printTable(out, []string{"MOVIE", "ACTOR", "GENDER", "HEIGHT"}, rows)
			}
			if len(actors) == 0 {
				_, err := fmt.Fprintln(out, noRows)
				return err
			}
			hist := service.HeightHistogram(actors, minH, maxH, bins)
			rows := make([][]string, 0, len(hist))
			for _, b := range hist {
				rows = append(rows, []string{
					strconv.FormatFloat(b.Lower, 'f', 1, 64),
					strconv.FormatFloat(b.Upper, 'f', 1, 64),
					strconv.Itoa(b.Count),
				})
			}
			fmt.Fprintf(out, "%d actors\n", len(actors))
			return printTable(out, []string{"FROM", "TO", "ACTORS"}, rows)
		},
	}
	f := cmd.Flags()
	f.StringVar(&gender, "gender", "all", "all, male, female or unknown (m/f accepted)")
	f.Float64Var(&minH, "min", 150, "minimum height in cm (inclusive)")
	f.Float64Var(&maxH, "max", 200, "maximum height in cm (inclusive)")
	f.IntVar(&bins, "bins", 10, "histogram bins")
	f.BoolVar(&list, "list", false, "print matching actors instead of a histogram")
	return cmd
}

func newQueryReleasesCmd(app *cli) *cobra.Command {
	var genre string
	cmd := &cobra.Command{
		Use:   "releases",
		Short: "Movies released per year, optionally filtered by genre",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := app.dataset()
			if err != nil {
				return err
			}
			counts := ds.ReleasesPerYear(genre)
			rows := make([][]string, 0, len(counts))
			for _, c := range counts {
				rows = append(rows, []string{strconv.Itoa(c.Period), strconv.Itoa(c.Count)})
			}
			return printTable(cmd.OutOrStdout(), []string{"YEAR", "MOVIES"}, rows)
		},
	}
	cmd.Flags().StringVar(&genre, "genre", "", "case-insensitive genre substring")
	return cmd
}

func newQueryBirthsCmd(app *cli) *cobra.Command {
	var unit string
	cmd := &cobra.Command{
		Use:   "births",
		Short: "Actor births per year or per month",
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := service.ParsePeriod(unit)
			if err != nil {
				return err
			}
			ds, err := app.dataset()
			if err != nil {
				return err
			}
			counts, err := ds.BirthsPerPeriod(period)
			if err != nil {
				return err
			}
			label := "YEAR"
			if period == service.PeriodMonth {
				label = "MONTH"
			}
			rows := make([][]string, 0, len(counts))
			for _, c := range counts {
				rows = append(rows, []string{strconv.Itoa(c.Period), strconv.Itoa(c.Count)})
			}
			return printTable(cmd.OutOrStdout(), []string{label, "ACTORS"}, rows)
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "year", "year or month")
	return cmd
}
