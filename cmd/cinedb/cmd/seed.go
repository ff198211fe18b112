package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/cinedb/pkg/cinema"
)

type seedMovie struct {
	title    string
	status   cinema.ShowingStatus
	director string
	cast     []string
	runtime  int
	released string
	sales    int
	ratings  []float64
}

var seedMovies = []seedMovie{
	{"Oppenheimer", cinema.StatusNowShowing, "Christopher Nolan",
		[]string{"Cillian Murphy", "Emily Blunt"}, 180, "2023-07-21", 1200, []float64{5, 4.5}},
	{"Barbie", cinema.StatusNowShowing, "Greta Gerwig",
		[]string{"Margot Robbie", "Ryan Gosling"}, 114, "2023-07-21", 1500, []float64{4, 3.5}},
	{"Dune: Part Two", cinema.StatusPreview, "Denis Villeneuve",
		[]string{"Timothee Chalamet", "Zendaya"}, 166, "2024-03-01", 300, []float64{5}},
	{"Past Lives", cinema.StatusComingSoon, "Celine Song",
		[]string{"Greta Lee", "Teo Yoo"}, 105, "2023-06-02", 0, nil},
	{"Tenet", cinema.StatusEndOfShowing, "Christopher Nolan",
		[]string{"John David Washington"}, 150, "2020-08-26", 900, []float64{3}},
}

var seedCineplexes = []cinema.Cineplex{
	{Name: "Downtown Cineplex", Cinemas: []*cinema.Cinema{
		{Code: "D1", Class: cinema.ClassStandard, Seats: 180},
		{Code: "D2", Class: cinema.ClassGold, Seats: 60},
		{Code: "DP", Class: cinema.ClassPlatinum, Seats: 24},
	}},
	{Name: "Harbourfront Cineplex", Cinemas: []*cinema.Cinema{
		{Code: "H1", Class: cinema.ClassStandard, Seats: 140},
		{Code: "H2", Class: cinema.ClassStandard, Seats: 140},
	}},
}

func newSeedCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a small sample catalogue",
		Long: `Load sample movies, reviews, cineplexes and a day of showings.

Running seed twice adds a second copy of the catalogue.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.seed(cmd.Context())
		},
		PostRun: func(cmd *cobra.Command, args []string) {
			app.say(cmd, "Seeded %d movies and %d cineplexes\n", len(seedMovies), len(seedCineplexes))
		},
	}
}

func (app *cli) seed(ctx context.Context) error {
	var nowShowing []string
	for _, sm := range seedMovies {
		released, err := time.Parse(time.DateOnly, sm.released)
		if err != nil {
			return fmt.Errorf("seed movie %q: %w", sm.title, err)
		}
		m := cinema.NewMovie(sm.title)
		m.Status = sm.status
		m.Director = &sm.director
		m.Cast = sm.cast
		m.Runtime = sm.runtime
		m.ReleasedAt = released
		m.TicketSales = sm.sales

		id, err := app.movies.Add(ctx, m)
		if err != nil {
			return err
		}
		for _, rating := range sm.ratings {
			if _, err := app.movies.AddReview(ctx, id, "seed", nil, rating); err != nil {
				return err
			}
		}
		if sm.status == cinema.StatusNowShowing || sm.status == cinema.StatusPreview {
			nowShowing = append(nowShowing, id)
		}
	}

	day := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	for i := range seedCineplexes {
		plex := seedCineplexes[i]
		plexID, err := app.cineplexes.Add(ctx, &plex)
		if err != nil {
			return err
		}
		for j, movieID := range nowShowing {
			hall := plex.Cinemas[j%len(plex.Cinemas)]
			startsAt := day.Add(time.Duration(12+3*j) * time.Hour)
			price := 12.0
			switch hall.Class {
			case cinema.ClassGold:
				price = 20
			case cinema.ClassPlatinum:
				price = 32
			}
			if _, err := app.cineplexes.AddShowing(ctx, movieID, plexID, hall.Code, startsAt, price); err != nil {
				return err
			}
		}
	}
	return nil
}
