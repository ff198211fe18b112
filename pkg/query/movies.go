package query

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/ssargent/cinedb/pkg/cinema"
	"github.com/ssargent/cinedb/pkg/storage"
)

// MovieService answers questions about the movie catalogue and records
// reviews and ticket sales.
type MovieService struct {
	movies   *storage.Collection[cinema.Movie, *cinema.Movie]
	showings *storage.Collection[cinema.Showing, *cinema.Showing]
	logger   *slog.Logger

	// serializes read-modify-write updates of a movie
	mu sync.Mutex
}

// NewMovieService creates a movie service over store.
func NewMovieService(store *storage.Store) *MovieService {
	return &MovieService{
		movies:   storage.NewCollection[cinema.Movie](store, cinema.TagMovie),
		showings: storage.NewCollection[cinema.Showing](store, cinema.TagShowing),
		logger:   store.Logger(),
	}
}

// Search returns the movies whose title contains title, ignoring case, in
// title order. Movies that have ended their run are left out. An empty
// title matches every movie.
func (s *MovieService) Search(ctx context.Context, title string) ([]*cinema.Movie, error) {
	all, err := s.movies.All(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(title))
	var found []*cinema.Movie
	for _, m := range all {
		if m.Status == cinema.StatusEndOfShowing {
			continue
		}
		if strings.Contains(strings.ToLower(m.Title), needle) {
			found = append(found, m)
		}
	}
	sortByTitle(found)
	return found, nil
}

// Filter returns the movies matching every filter, in title order.
func (s *MovieService) Filter(ctx context.Context, filters ...Filter) ([]*cinema.Movie, error) {
	for _, f := range filters {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}

	all, err := s.movies.All(ctx)
	if err != nil {
		return nil, err
	}

	var found []*cinema.Movie
next:
	for _, m := range all {
		for _, f := range filters {
			if !f.Match(m) {
				continue next
			}
		}
		found = append(found, m)
	}
	sortByTitle(found)
	return found, nil
}

// Get returns the movie with the given id.
func (s *MovieService) Get(ctx context.Context, id string) (*cinema.Movie, error) {
	m, err := s.movies.Get(id)
	if err != nil {
		return nil, notFound("movie", id, err)
	}
	return m, nil
}

// Raw returns the stored flat string of the movie with the given id.
func (s *MovieService) Raw(ctx context.Context, id string) (string, error) {
	raw, err := s.movies.Raw(id)
	if err != nil {
		return "", notFound("movie", id, err)
	}
	return raw, nil
}

// Add stores a new movie and returns its id.
func (s *MovieService) Add(ctx context.Context, m *cinema.Movie) (string, error) {
	if m.Status == "" {
		m.Status = cinema.StatusComingSoon
	}
	if m.Cast == nil {
		m.Cast = []string{}
	}
	if m.Reviews == nil {
		m.Reviews = []*cinema.Review{}
	}
	id, err := s.movies.Create(m)
	if err != nil {
		return "", fmt.Errorf("add movie: %w", err)
	}
	s.logger.Info("movie added", "id", id, "title", m.Title)
	return id, nil
}

// SetStatus moves the movie to a new point in its run.
func (s *MovieService) SetStatus(ctx context.Context, id string, status cinema.ShowingStatus) (*cinema.Movie, error) {
	return s.update(id, func(m *cinema.Movie) error {
		m.Status = status
		return nil
	})
}

// TopRated returns up to n reviewed movies with the highest average rating.
// Ties are broken by title.
func (s *MovieService) TopRated(ctx context.Context, n int) ([]*cinema.Movie, error) {
	if err := checkLimit(n); err != nil {
		return nil, err
	}
	all, err := s.movies.All(ctx)
	if err != nil {
		return nil, err
	}

	type rated struct {
		movie *cinema.Movie
		avg   float64
	}
	var candidates []rated
	for _, m := range all {
		if avg, ok := m.AverageRating(); ok {
			candidates = append(candidates, rated{m, avg})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].avg != candidates[j].avg {
			return candidates[i].avg > candidates[j].avg
		}
		return candidates[i].movie.Title < candidates[j].movie.Title
	})

	out := make([]*cinema.Movie, 0, n)
	for _, c := range candidates {
		if len(out) == n {
			break
		}
		out = append(out, c.movie)
	}
	return out, nil
}

// Popular returns up to n movies with the most tickets sold. Ties are
// broken by title.
func (s *MovieService) Popular(ctx context.Context, n int) ([]*cinema.Movie, error) {
	if err := checkLimit(n); err != nil {
		return nil, err
	}
	all, err := s.movies.All(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].TicketSales != all[j].TicketSales {
			return all[i].TicketSales > all[j].TicketSales
		}
		return all[i].Title < all[j].Title
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// AddReview appends a review to the movie. The rating must be between
// cinema.MinRating and cinema.MaxRating.
func (s *MovieService) AddReview(ctx context.Context, movieID, reviewer string, text *string, rating float64) (*cinema.Movie, error) {
	if !cinema.ValidRating(rating) {
		return nil, fmt.Errorf("%w: %g is not between %d and %d",
			ErrInvalidRating, rating, cinema.MinRating, cinema.MaxRating)
	}

	review := cinema.NewReview(reviewer, text, rating)
	if err := review.Validate(); err != nil {
		return nil, err
	}

	m, err := s.update(movieID, func(m *cinema.Movie) error {
		m.Reviews = append(m.Reviews, review)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("review added", "movie", movieID, "reviewer", reviewer, "rating", rating)
	return m, nil
}

// RecordSale adds tickets to the movie's ticket sales.
func (s *MovieService) RecordSale(ctx context.Context, movieID string, tickets int) (*cinema.Movie, error) {
	if tickets <= 0 {
		return nil, fmt.Errorf("tickets must be positive: %d", tickets)
	}
	return s.update(movieID, func(m *cinema.Movie) error {
		m.TicketSales += tickets
		return nil
	})
}

// Showtimes returns the showings of the movie ordered by start time.
func (s *MovieService) Showtimes(ctx context.Context, movieID string) ([]*cinema.Showing, error) {
	if _, err := s.Get(ctx, movieID); err != nil {
		return nil, err
	}
	all, err := s.showings.All(ctx)
	if err != nil {
		return nil, err
	}

	var out []*cinema.Showing
	for _, sh := range all {
		if sh.MovieID == movieID {
			out = append(out, sh)
		}
	}
	sortByStart(out)
	return out, nil
}

// Delete removes the movie and every showing scheduled for it. It returns
// the number of showings removed.
func (s *MovieService) Delete(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.movies.Delete(id); err != nil {
		return 0, notFound("movie", id, err)
	}
	n, err := deleteShowings(ctx, s.showings, func(sh *cinema.Showing) bool {
		return sh.MovieID == id
	})
	if err != nil {
		return n, err
	}
	s.logger.Info("movie deleted", "id", id, "showings", n)
	return n, nil
}

func (s *MovieService) update(id string, fn func(m *cinema.Movie) error) (*cinema.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.movies.Get(id)
	if err != nil {
		return nil, notFound("movie", id, err)
	}
	if err := fn(m); err != nil {
		return nil, err
	}
	if err := s.movies.Put(m); err != nil {
		return nil, fmt.Errorf("update movie %q: %w", id, err)
	}
	return m, nil
}

func sortByTitle(movies []*cinema.Movie) {
	sort.SliceStable(movies, func(i, j int) bool {
		return strings.ToLower(movies[i].Title) < strings.ToLower(movies[j].Title)
	})
}

func sortByStart(showings []*cinema.Showing) {
	sort.SliceStable(showings, func(i, j int) bool {
		return showings[i].StartsAt.Before(showings[j].StartsAt)
	})
}

func deleteShowings(ctx context.Context, showings *storage.Collection[cinema.Showing, *cinema.Showing], match func(*cinema.Showing) bool) (int, error) {
	all, err := showings.All(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, sh := range all {
		if !match(sh) {
			continue
		}
		if err := showings.Delete(sh.ID); err != nil {
			return n, fmt.Errorf("delete showing %q: %w", sh.ID, err)
		}
		n++
	}
	return n, nil
}
