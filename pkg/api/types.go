package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/ssargent/cinedb/pkg/cinema"
	"github.com/ssargent/cinedb/pkg/query"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ReviewRequest is the body of POST /movies/{id}/reviews
type ReviewRequest struct {
	Reviewer string  `json:"reviewer"`
	Text     *string `json:"text,omitempty"`
	Rating   float64 `json:"rating"`
}

// SaleRequest is the body of POST /movies/{id}/sales
type SaleRequest struct {
	Tickets int `json:"tickets"`
}

// ParseResponse is the field mapping of a parsed flat string. Null is set
// when the input was the null sentinel.
type ParseResponse struct {
	Fields map[string]string `json:"fields"`
	Null   bool              `json:"null,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Addr            string
	APIKey          string
	Logger          *slog.Logger
	ShutdownTimeout time.Duration
}

// MovieQuerier is the part of query.MovieService the API uses
type MovieQuerier interface {
	Search(ctx context.Context, title string) ([]*cinema.Movie, error)
	Filter(ctx context.Context, filters ...query.Filter) ([]*cinema.Movie, error)
	Get(ctx context.Context, id string) (*cinema.Movie, error)
	Raw(ctx context.Context, id string) (string, error)
	TopRated(ctx context.Context, n int) ([]*cinema.Movie, error)
	Popular(ctx context.Context, n int) ([]*cinema.Movie, error)
	AddReview(ctx context.Context, movieID, reviewer string, text *string, rating float64) (*cinema.Movie, error)
	RecordSale(ctx context.Context, movieID string, tickets int) (*cinema.Movie, error)
	Showtimes(ctx context.Context, movieID string) ([]*cinema.Showing, error)
}

// CineplexQuerier is the part of query.CineplexService the API uses
type CineplexQuerier interface {
	List(ctx context.Context) ([]*cinema.Cineplex, error)
	Get(ctx context.Context, id string) (*cinema.Cineplex, error)
	Showings(ctx context.Context, cineplexID string) ([]*cinema.Showing, error)
}
