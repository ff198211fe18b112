package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ssargent/cinedb/pkg/cinema"
)

const timeFormat = "2006-01-02 15:04"

// printer writes results as tables or JSON
type printer struct {
	w      io.Writer
	format string
}

func (app *cli) printer(w io.Writer) *printer {
	return &printer{w: w, format: app.format}
}

func (p *printer) json(v any) error {
	encoder := json.NewEncoder(p.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// movies displays multiple movies
func (p *printer) movies(movies []*cinema.Movie) error {
	if p.format == "json" {
		return p.json(nonNil(movies))
	}
	if len(movies) == 0 {
		fmt.Fprintln(p.w, "No movies found")
		return nil
	}

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tRATING\tSALES\tRUNTIME")
	for _, m := range movies {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			m.ID,
			truncate(m.Title, 40),
			m.Status,
			formatRating(m),
			m.TicketSales,
			formatRuntime(m.Runtime))
	}
	return nil
}

// movie displays a single movie with its reviews
func (p *printer) movie(m *cinema.Movie) error {
	if p.format == "json" {
		return p.json(m)
	}

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", m.ID)
	fmt.Fprintf(w, "Title:\t%s\n", m.Title)
	fmt.Fprintf(w, "Status:\t%s\n", m.Status)
	fmt.Fprintf(w, "Duration:\t%s\n", formatRuntime(m.Runtime))
	fmt.Fprintf(w, "Rating:\t%s\n", formatRating(m))
	fmt.Fprintf(w, "Ticket sales:\t%d\n", m.TicketSales)
	if m.Director != nil {
		fmt.Fprintf(w, "Director:\t%s\n", *m.Director)
	}
	if m.Synopsis != nil {
		fmt.Fprintf(w, "Synopsis:\t%s\n", *m.Synopsis)
	}
	if len(m.Cast) > 0 {
		fmt.Fprintf(w, "Cast:\t%s\n", strings.Join(m.Cast, ", "))
	}
	if !m.ReleasedAt.IsZero() {
		fmt.Fprintf(w, "Released:\t%s\n", m.ReleasedAt.Format(time.DateOnly))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(m.Reviews) == 0 {
		fmt.Fprintln(p.w, "\nNo reviews yet")
		return nil
	}
	fmt.Fprintln(p.w, "\nReviews:")
	for _, r := range m.Reviews {
		if r == nil {
			continue
		}
		fmt.Fprintf(p.w, "  %s, Rating: %g", r.Reviewer, r.Rating)
		if r.Text != nil {
			fmt.Fprintf(p.w, " - %s", *r.Text)
		}
		fmt.Fprintln(p.w)
	}
	return nil
}

// cineplexes displays multiple cineplexes
func (p *printer) cineplexes(plexes []*cinema.Cineplex) error {
	if p.format == "json" {
		return p.json(nonNil(plexes))
	}
	if len(plexes) == 0 {
		fmt.Fprintln(p.w, "No cineplexes found")
		return nil
	}

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tNAME\tLOCATION\tCINEMAS")
	for _, c := range plexes {
		location := ""
		if c.Location != nil {
			location = *c.Location
		}
		codes := make([]string, 0, len(c.Cinemas))
		for _, hall := range c.Cinemas {
			codes = append(codes, fmt.Sprintf("%s (%s, %d seats)", hall.Code, hall.Class, hall.Seats))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, location, strings.Join(codes, ", "))
	}
	return nil
}

// showings displays showings in start order
func (p *printer) showings(showings []*cinema.Showing) error {
	if p.format == "json" {
		return p.json(nonNil(showings))
	}
	if len(showings) == 0 {
		fmt.Fprintln(p.w, "No showings found")
		return nil
	}

	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "ID\tSTARTS\tMOVIE\tCINEPLEX\tCINEMA\tCLASS\tPRICE")
	for _, s := range showings {
		code, class := "", ""
		if s.Cinema != nil {
			code, class = s.Cinema.Code, string(s.Cinema.Class)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\n",
			s.ID, s.StartsAt.Format(timeFormat), s.MovieID, s.CineplexID, code, class, s.Price)
	}
	return nil
}

// fields displays a parsed field mapping sorted by name
func (p *printer) fields(names []string, values map[string]string) error {
	if p.format == "json" {
		return p.json(values)
	}
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "FIELD\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", name, values[name])
	}
	return nil
}

func formatRating(m *cinema.Movie) string {
	avg, ok := m.AverageRating()
	if !ok {
		return "NaN"
	}
	return fmt.Sprintf("%.1f (%d)", avg, len(m.Reviews))
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d min", minutes)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
