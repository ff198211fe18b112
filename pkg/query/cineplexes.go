package query

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ssargent/cinedb/pkg/cinema"
	"github.com/ssargent/cinedb/pkg/storage"
)

// CineplexService manages cineplexes and their showings.
type CineplexService struct {
	cineplexes *storage.Collection[cinema.Cineplex, *cinema.Cineplex]
	movies     *storage.Collection[cinema.Movie, *cinema.Movie]
	showings   *storage.Collection[cinema.Showing, *cinema.Showing]
	logger     *slog.Logger
}

// NewCineplexService creates a cineplex service over store.
func NewCineplexService(store *storage.Store) *CineplexService {
	return &CineplexService{
		cineplexes: storage.NewCollection[cinema.Cineplex](store, cinema.TagCineplex),
		movies:     storage.NewCollection[cinema.Movie](store, cinema.TagMovie),
		showings:   storage.NewCollection[cinema.Showing](store, cinema.TagShowing),
		logger:     store.Logger(),
	}
}

// List returns every cineplex in name order.
func (s *CineplexService) List(ctx context.Context) ([]*cinema.Cineplex, error) {
	all, err := s.cineplexes.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
	})
	return all, nil
}

// Get returns the cineplex with the given id.
func (s *CineplexService) Get(ctx context.Context, id string) (*cinema.Cineplex, error) {
	c, err := s.cineplexes.Get(id)
	if err != nil {
		return nil, notFound("cineplex", id, err)
	}
	return c, nil
}

// Add stores a new cineplex and returns its id.
func (s *CineplexService) Add(ctx context.Context, c *cinema.Cineplex) (string, error) {
	if c.Cinemas == nil {
		c.Cinemas = []*cinema.Cinema{}
	}
	id, err := s.cineplexes.Create(c)
	if err != nil {
		return "", fmt.Errorf("add cineplex: %w", err)
	}
	s.logger.Info("cineplex added", "id", id, "name", c.Name, "cinemas", len(c.Cinemas))
	return id, nil
}

// AddShowing schedules the movie in one cinema of the cineplex.
func (s *CineplexService) AddShowing(ctx context.Context, movieID, cineplexID, cinemaCode string, startsAt time.Time, price float64) (*cinema.Showing, error) {
	if _, err := s.movies.Get(movieID); err != nil {
		return nil, notFound("movie", movieID, err)
	}
	plex, err := s.Get(ctx, cineplexID)
	if err != nil {
		return nil, err
	}
	hall := plex.Cinema(cinemaCode)
	if hall == nil {
		return nil, fmt.Errorf("cinema %q in cineplex %q: %w", cinemaCode, cineplexID, ErrNotFound)
	}

	showing := &cinema.Showing{
		MovieID:    movieID,
		CineplexID: cineplexID,
		Cinema:     hall,
		StartsAt:   startsAt.UTC(),
		Price:      price,
	}
	if _, err := s.showings.Create(showing); err != nil {
		return nil, fmt.Errorf("add showing: %w", err)
	}
	s.logger.Info("showing added", "id", showing.ID, "movie", movieID,
		"cineplex", cineplexID, "cinema", cinemaCode, "starts_at", showing.StartsAt)
	return showing, nil
}

// Delete removes the cineplex and its showings. It returns the number of
// showings removed.
func (s *CineplexService) Delete(ctx context.Context, id string) (int, error) {
	if err := s.cineplexes.Delete(id); err != nil {
		return 0, notFound("cineplex", id, err)
	}
	n, err := deleteShowings(ctx, s.showings, func(sh *cinema.Showing) bool {
		return sh.CineplexID == id
	})
	if err != nil {
		return n, err
	}
	s.logger.Info("cineplex deleted", "id", id, "showings", n)
	return n, nil
}

// Showings returns the showings at the cineplex ordered by start time.
func (s *CineplexService) Showings(ctx context.Context, cineplexID string) ([]*cinema.Showing, error) {
	if _, err := s.Get(ctx, cineplexID); err != nil {
		return nil, err
	}
	all, err := s.showings.All(ctx)
	if err != nil {
		return nil, err
	}

	var out []*cinema.Showing
	for _, sh := range all {
		if sh.CineplexID == cineplexID {
			out = append(out, sh)
		}
	}
	sortByStart(out)
	return out, nil
}
