package cinema

import (
	"fmt"
	"strings"
	"time"

	"github.com/ssargent/cinedb/pkg/serial"
)

// ShowingStatus is where a movie is in its run.
type ShowingStatus string

const (
	StatusComingSoon   ShowingStatus = "coming_soon"
	StatusPreview      ShowingStatus = "preview"
	StatusNowShowing   ShowingStatus = "now_showing"
	StatusEndOfShowing ShowingStatus = "end_of_showing"
)

// ParseShowingStatus accepts the status names with either underscores,
// hyphens or spaces.
func ParseShowingStatus(s string) (ShowingStatus, error) {
	norm := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	if st := ShowingStatus(norm); st.Valid() {
		return st, nil
	}
	return "", &ValidationError{"movie", fmt.Sprintf("unknown showing status %q", s)}
}

func (s ShowingStatus) Valid() bool {
	switch s {
	case StatusComingSoon, StatusPreview, StatusNowShowing, StatusEndOfShowing:
		return true
	}
	return false
}

// Movie is a title in the catalogue together with its reviews.
type Movie struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Status      ShowingStatus `json:"status"`
	Synopsis    *string       `json:"synopsis,omitempty"`
	Director    *string       `json:"director,omitempty"`
	Cast        []string      `json:"cast"`
	Runtime     int           `json:"runtime_minutes"`
	ReleasedAt  time.Time     `json:"released_at"`
	TicketSales int           `json:"ticket_sales"`
	Reviews     []*Review     `json:"reviews"`
}

// NewMovie creates a movie that is coming soon.
func NewMovie(title string) *Movie {
	return &Movie{
		Title:   title,
		Status:  StatusComingSoon,
		Cast:    []string{},
		Reviews: []*Review{},
	}
}

func (m *Movie) Key() string       { return m.ID }
func (m *Movie) SetKey(key string) { m.ID = key }

// AverageRating returns the mean rating of all reviews. ok is false when
// the movie has no reviews.
func (m *Movie) AverageRating() (avg float64, ok bool) {
	var sum float64
	var n int
	for _, r := range m.Reviews {
		if r == nil {
			continue
		}
		sum += r.Rating
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Validate checks required fields and that all text can be stored.
func (m *Movie) Validate() error {
	if m.Title == "" {
		return &ValidationError{"movie", "title is required"}
	}
	if !m.Status.Valid() {
		return &ValidationError{"movie", fmt.Sprintf("unknown showing status %q", m.Status)}
	}
	if m.Runtime < 0 || m.TicketSales < 0 {
		return &ValidationError{"movie", "runtime and ticket sales can't be negative"}
	}

	texts := append([]string{m.ID, m.Title}, m.Cast...)
	if m.Synopsis != nil {
		texts = append(texts, *m.Synopsis)
	}
	if m.Director != nil {
		texts = append(texts, *m.Director)
	}
	for _, s := range texts {
		if err := checkText("movie", s); err != nil {
			return err
		}
	}

	for _, r := range m.Reviews {
		if r == nil {
			continue
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Movie) FieldString() string {
	status := string(m.Status)
	return serial.Join(
		serial.EncodeString(&m.ID, "id"),
		serial.EncodeString(&m.Title, "title"),
		serial.EncodeString(&status, "status"),
		serial.EncodeString(m.Synopsis, "synopsis"),
		serial.EncodeString(m.Director, "director"),
		serial.EncodeStringList(m.Cast, "cast"),
		serial.EncodeInt(m.Runtime, "runtime"),
		serial.EncodeTime(m.ReleasedAt, "released_at"),
		serial.EncodeInt(m.TicketSales, "ticket_sales"),
		serial.EncodeList(m.Reviews, "reviews"),
	)
}

func (m *Movie) FromFieldString(s string) error {
	fr, err := newFieldReader(s)
	if err != nil {
		return err
	}
	m.ID = fr.text("id")
	m.Title = fr.text("title")
	m.Status = ShowingStatus(fr.text("status"))
	m.Synopsis = fr.nullable("synopsis")
	m.Director = fr.nullable("director")
	m.Cast = fr.strings("cast")
	m.Runtime = fr.int("runtime")
	m.ReleasedAt = fr.time("released_at")
	m.TicketSales = fr.int("ticket_sales")
	m.Reviews = readList[Review](fr, "reviews")
	return fr.err
}
