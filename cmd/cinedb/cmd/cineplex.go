package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/cinedb/pkg/cinema"
)

func newCineplexCmd(app *cli) *cobra.Command {
	cineplexCmd := &cobra.Command{
		Use:     "cineplex",
		Aliases: []string{"cineplexes", "c"},
		Short:   "Manage cineplexes",
	}
	cineplexCmd.AddCommand(
		newCineplexListCmd(app),
		newCineplexAddCmd(app),
		newCineplexShowingsCmd(app),
		newCineplexDeleteCmd(app),
	)
	return cineplexCmd
}

func newCineplexListCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cineplexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plexes, err := app.cineplexes.List(cmd.Context())
			if err != nil {
				return err
			}
			return app.printer(cmd.OutOrStdout()).cineplexes(plexes)
		},
	}
}

// parseCinema reads a hall written as code:class:seats
func parseCinema(s string) (*cinema.Cinema, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("cinema %q must be code:class:seats", s)
	}
	seats, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("cinema %q: seats must be a number", s)
	}
	return &cinema.Cinema{
		Code:  parts[0],
		Class: cinema.CinemaClass(strings.ToLower(parts[1])),
		Seats: seats,
	}, nil
}

func newCineplexAddCmd(app *cli) *cobra.Command {
	var (
		location string
		halls    []string
	)

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a cineplex",
		Long: `Add a cineplex and its cinemas.

Examples:
  cinedb cineplex add "Downtown" --location "1 Main St" --cinema A1:standard:120 --cinema P1:platinum:24`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plex := &cinema.Cineplex{Name: args[0], Cinemas: []*cinema.Cinema{}}
			if location != "" {
				plex.Location = &location
			}
			for _, h := range halls {
				hall, err := parseCinema(h)
				if err != nil {
					return err
				}
				plex.Cinemas = append(plex.Cinemas, hall)
			}

			id, err := app.cineplexes.Add(cmd.Context(), plex)
			if err != nil {
				return err
			}
			if app.format == "json" {
				return app.printer(cmd.OutOrStdout()).json(plex)
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	addCmd.Flags().StringVar(&location, "location", "", "address of the cineplex")
	addCmd.Flags().StringArrayVar(&halls, "cinema", nil, "cinema as code:class:seats (repeatable)")
	return addCmd
}

func newCineplexDeleteCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a cineplex and its showings",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.cineplexes.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.say(cmd, "Deleted cineplex %s and %d showings\n", args[0], n)
			return nil
		},
	}
}

func newCineplexShowingsCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "showings <id>",
		Short: "List the showings at a cineplex",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			showings, err := app.cineplexes.Showings(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.printer(cmd.OutOrStdout()).showings(showings)
		},
	}
}

func newShowingCmd(app *cli) *cobra.Command {
	showingCmd := &cobra.Command{
		Use:     "showing",
		Aliases: []string{"showings", "s"},
		Short:   "Schedule showings",
	}

	var (
		movieID    string
		cineplexID string
		code       string
		at         string
		price      float64
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a movie in a cinema",
		Long: `Schedule a movie in one cinema of a cineplex.

Examples:
  cinedb showing add --movie 2aXk... --cineplex 2aXm... --cinema P1 --at "2024-03-01 21:30" --price 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startsAt, err := time.Parse(timeFormat, at)
			if err != nil {
				return fmt.Errorf("--at needs a time as %q: %w", timeFormat, err)
			}
			showing, err := app.cineplexes.AddShowing(cmd.Context(), movieID, cineplexID, code, startsAt, price)
			if err != nil {
				return err
			}
			if app.format == "json" {
				return app.printer(cmd.OutOrStdout()).json(showing)
			}
			fmt.Fprintln(cmd.OutOrStdout(), showing.ID)
			return nil
		},
	}

	flags := addCmd.Flags()
	flags.StringVar(&movieID, "movie", "", "movie id")
	flags.StringVar(&cineplexID, "cineplex", "", "cineplex id")
	flags.StringVar(&code, "cinema", "", "cinema code within the cineplex")
	flags.StringVar(&at, "at", "", "start time, UTC (YYYY-MM-DD HH:MM)")
	flags.Float64Var(&price, "price", 0, "ticket price")
	for _, name := range []string{"movie", "cineplex", "cinema", "at"} {
		_ = addCmd.MarkFlagRequired(name)
	}

	showingCmd.AddCommand(addCmd)
	return showingCmd
}
