package cinema

import (
	"math"
	"time"

	"github.com/ssargent/cinedb/pkg/serial"
)

// Showing is a screening of a movie in one cinema of a cineplex.
type Showing struct {
	ID         string    `json:"id"`
	MovieID    string    `json:"movie_id"`
	CineplexID string    `json:"cineplex_id"`
	Cinema     *Cinema   `json:"cinema"`
	StartsAt   time.Time `json:"starts_at"`
	Price      float64   `json:"price"`
}

func (s *Showing) Key() string       { return s.ID }
func (s *Showing) SetKey(key string) { s.ID = key }

func (s *Showing) Validate() error {
	if s.MovieID == "" || s.CineplexID == "" {
		return &ValidationError{"showing", "movie and cineplex are required"}
	}
	if s.Cinema == nil {
		return &ValidationError{"showing", "cinema is required"}
	}
	if s.Price < 0 || math.IsNaN(s.Price) || math.IsInf(s.Price, 0) {
		return &ValidationError{"showing", "price must be a finite non-negative number"}
	}
	for _, id := range []string{s.ID, s.MovieID, s.CineplexID} {
		if err := checkText("showing", id); err != nil {
			return err
		}
	}
	return s.Cinema.Validate()
}

func (s *Showing) FieldString() string {
	return serial.Join(
		serial.EncodeString(&s.ID, "id"),
		serial.EncodeString(&s.MovieID, "movie_id"),
		serial.EncodeString(&s.CineplexID, "cineplex_id"),
		serial.EncodeObject(s.Cinema, "cinema"),
		serial.EncodeTime(s.StartsAt, "starts_at"),
		serial.EncodeFloat(s.Price, "price"),
	)
}

func (s *Showing) FromFieldString(str string) error {
	fr, err := newFieldReader(str)
	if err != nil {
		return err
	}
	s.ID = fr.text("id")
	s.MovieID = fr.text("movie_id")
	s.CineplexID = fr.text("cineplex_id")
	s.Cinema = readObject[Cinema](fr, "cinema")
	s.StartsAt = fr.time("starts_at")
	s.Price = fr.float("price")
	return fr.err
}
