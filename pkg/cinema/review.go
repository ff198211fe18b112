package cinema

import (
	"fmt"
	"math"
	"time"

	"github.com/ssargent/cinedb/pkg/serial"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a moviegoer's rating of a movie with optional text.
type Review struct {
	Reviewer string    `json:"reviewer"`
	Text     *string   `json:"text,omitempty"`
	Rating   float64   `json:"rating"`
	PostedAt time.Time `json:"posted_at"`
}

// NewReview creates a review posted now.
func NewReview(reviewer string, text *string, rating float64) *Review {
	return &Review{
		Reviewer: reviewer,
		Text:     text,
		Rating:   rating,
		PostedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// ValidRating reports whether v is a finite rating within MinRating and
// MaxRating inclusive.
func ValidRating(v float64) bool {
	return !math.IsNaN(v) && v >= MinRating && v <= MaxRating
}

// Validate checks the rating range and that all text can be stored.
func (r *Review) Validate() error {
	if r.Reviewer == "" {
		return &ValidationError{"review", "reviewer is required"}
	}
	if !ValidRating(r.Rating) {
		return &ValidationError{"review", fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating)}
	}
	if err := checkText("review", r.Reviewer); err != nil {
		return err
	}
	if r.Text != nil {
		return checkText("review", *r.Text)
	}
	return nil
}

func (r *Review) FieldString() string {
	return serial.Join(
		serial.EncodeString(&r.Reviewer, "reviewer"),
		serial.EncodeString(r.Text, "text"),
		serial.EncodeFloat(r.Rating, "rating"),
		serial.EncodeTime(r.PostedAt, "posted_at"),
	)
}

func (r *Review) FromFieldString(s string) error {
	fr, err := newFieldReader(s)
	if err != nil {
		return err
	}
	r.Reviewer = fr.text("reviewer")
	r.Text = fr.nullable("text")
	r.Rating = fr.float("rating")
	r.PostedAt = fr.time("posted_at")
	return fr.err
}
