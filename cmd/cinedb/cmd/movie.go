package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/cinedb/pkg/cinema"
	"github.com/ssargent/cinedb/pkg/query"
)

func newMovieCmd(app *cli) *cobra.Command {
	movieCmd := &cobra.Command{
		Use:     "movie",
		Aliases: []string{"movies", "m"},
		Short:   "Search, inspect and update movies",
	}

	movieCmd.AddCommand(
		newMovieSearchCmd(app),
		newMovieGetCmd(app),
		newMovieRawCmd(app),
		newMovieAddCmd(app),
		newMovieStatusCmd(app),
		newMovieTopRatedCmd(app),
		newMoviePopularCmd(app),
		newMovieReviewCmd(app),
		newMovieSellCmd(app),
		newMovieShowtimesCmd(app),
		newMovieDeleteCmd(app),
	)
	return movieCmd
}

func newMovieSearchCmd(app *cli) *cobra.Command {
	var filters []string

	searchCmd := &cobra.Command{
		Use:   "search [title]",
		Short: "Search movies by title",
		Long: `Search movies whose title contains the given text, ignoring case.
Movies that have ended their run are not listed.

With --filter the search runs over every movie instead and keeps the
ones matching all conditions.

Examples:
  cinedb movie search bat
  cinedb movie search --filter 'runtime>=150' --filter 'status=now_showing'
  cinedb movie search nolan --filter 'director~nolan'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) == 1 {
				title = args[0]
			}

			var (
				movies []*cinema.Movie
				err    error
			)
			if len(filters) == 0 {
				movies, err = app.movies.Search(cmd.Context(), title)
			} else {
				parsed := make([]query.Filter, 0, len(filters)+1)
				for _, expr := range filters {
					f, err := query.ParseFilter(expr)
					if err != nil {
						return err
					}
					parsed = append(parsed, f)
				}
				if title != "" {
					parsed = append(parsed, query.Filter{Field: "title", Operator: "~", Value: title})
				}
				movies, err = app.movies.Filter(cmd.Context(), parsed...)
			}
			if err != nil {
				return err
			}
			return app.printer(cmd.OutOrStdout()).movies(movies)
		},
	}

	searchCmd.Flags().StringArrayVarP(&filters, "filter", "f", nil,
		"field condition, e.g. runtime>=120 (fields: title, status, director, runtime, ticket_sales, rating, released)")
	return searchCmd
}

func newMovieGetCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a movie with its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.movies.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.printer(cmd.OutOrStdout()).movie(m)
		},
	}
}

func newMovieRawCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "raw <id>",
		Short: "Print the stored flat string of a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := app.movies.Raw(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), raw)
			return nil
		},
	}
}

func newMovieAddCmd(app *cli) *cobra.Command {
	var (
		status   string
		director string
		synopsis string
		cast     []string
		runtime  int
		released string
	)

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a movie to the catalogue",
		Long: `Add a movie to the catalogue.

Examples:
  cinedb movie add "Perfect Days" --director "Wim Wenders" --runtime 124
  cinedb movie add "Inside Out 2" --status now_showing --cast "Amy Poehler,Maya Hawke"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := cinema.NewMovie(args[0])
			st, err := cinema.ParseShowingStatus(status)
			if err != nil {
				return err
			}
			m.Status = st
			if director != "" {
				m.Director = &director
			}
			if synopsis != "" {
				m.Synopsis = &synopsis
			}
			if cast != nil {
				m.Cast = cast
			}
			m.Runtime = runtime
			if released != "" {
				at, err := time.Parse(time.DateOnly, released)
				if err != nil {
					return fmt.Errorf("--released needs a date (YYYY-MM-DD): %w", err)
				}
				m.ReleasedAt = at
			}

			id, err := app.movies.Add(cmd.Context(), m)
			if err != nil {
				return err
			}
			if app.format == "json" {
				return app.printer(cmd.OutOrStdout()).json(m)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	flags := addCmd.Flags()
	flags.StringVar(&status, "status", string(cinema.StatusComingSoon), "coming_soon, preview, now_showing or end_of_showing")
	flags.StringVar(&director, "director", "", "director")
	flags.StringVar(&synopsis, "synopsis", "", "short synopsis")
	flags.StringSliceVar(&cast, "cast", nil, "cast members, comma separated")
	flags.IntVar(&runtime, "runtime", 0, "running time in minutes")
	flags.StringVar(&released, "released", "", "release date (YYYY-MM-DD)")
	return addCmd
}

func newMovieStatusCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a movie to another point in its run",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cinema.ParseShowingStatus(args[1])
			if err != nil {
				return err
			}
			m, err := app.movies.SetStatus(cmd.Context(), args[0], st)
			if err != nil {
				return err
			}
			app.say(cmd, "%s is now %s\n", m.Title, m.Status)
			return nil
		},
	}
}

func newMovieDeleteCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a movie and its showings",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.movies.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.say(cmd, "Deleted movie %s and %d showings\n", args[0], n)
			return nil
		},
	}
}

func newMovieTopRatedCmd(app *cli) *cobra.Command {
	var n int
	topCmd := &cobra.Command{
		Use:   "top-rated",
		Short: "List the movies with the best average rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			movies, err := app.movies.TopRated(cmd.Context(), n)
			if err != nil {
				return err
			}
			return app.printer(cmd.OutOrStdout()).movies(movies)
		},
	}
	topCmd.Flags().IntVarP(&n, "number", "n", 5, "number of movies to list")
	return topCmd
}

func newMoviePopularCmd(app *cli) *cobra.Command {
	var n int
	popularCmd := &cobra.Command{
		Use:   "popular",
		Short: "List the movies with the most tickets sold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			movies, err := app.movies.Popular(cmd.Context(), n)
			if err != nil {
				return err
			}
			return app.printer(cmd.OutOrStdout()).movies(movies)
		},
	}
	popularCmd.Flags().IntVarP(&n, "number", "n", 5, "number of movies to list")
	return popularCmd
}

func newMovieReviewCmd(app *cli) *cobra.Command {
	var (
		reviewer string
		text     string
		rating   float64
	)

	reviewCmd := &cobra.Command{
		Use:   "review <id>",
		Short: "Write a review",
		Long: `Add a review with a rating between 1 and 5 to a movie.

Examples:
  cinedb movie review 2aXk... --reviewer sam --rating 4.5 --text "worth the IMAX ticket"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body *string
			if text != "" {
				body = &text
			}
			m, err := app.movies.AddReview(cmd.Context(), args[0], reviewer, body, rating)
			if err != nil {
				return err
			}
			avg, _ := m.AverageRating()
			app.say(cmd, "Review added. %s now has %d reviews averaging %.1f\n", m.Title, len(m.Reviews), avg)
			return nil
		},
	}

	reviewCmd.Flags().StringVar(&reviewer, "reviewer", "anonymous", "name shown with the review")
	reviewCmd.Flags().StringVar(&text, "text", "", "review text")
	reviewCmd.Flags().Float64VarP(&rating, "rating", "r", 0, "rating between 1 and 5 (required)")
	_ = reviewCmd.MarkFlagRequired("rating")
	return reviewCmd
}

func newMovieSellCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <id> <tickets>",
		Short: "Record ticket sales",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tickets, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("tickets must be a number: %w", err)
			}
			m, err := app.movies.RecordSale(cmd.Context(), args[0], tickets)
			if err != nil {
				return err
			}
			app.say(cmd, "%s has sold %d tickets\n", m.Title, m.TicketSales)
			return nil
		},
	}
}

func newMovieShowtimesCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "showtimes <id>",
		Short: "List the showings of a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			showings, err := app.movies.Showtimes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.printer(cmd.OutOrStdout()).showings(showings)
		},
	}
}
