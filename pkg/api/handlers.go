package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssargent/cinedb/pkg/cinema"
	"github.com/ssargent/cinedb/pkg/query"
	"github.com/ssargent/cinedb/pkg/serial"
)

const (
	defaultLimit = 10
	maxBodyBytes = 1 << 20
)

// Server holds the API server state
type Server struct {
	movies     MovieQuerier
	cineplexes CineplexQuerier
	metrics    *Metrics
	logger     *slog.Logger
}

// NewServer creates a new API server
func NewServer(movies MovieQuerier, cineplexes CineplexQuerier, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		movies:     movies,
		cineplexes: cineplexes,
		metrics:    metrics,
		logger:     logger,
	}
}

// observe records the outcome of a query operation and reports failures.
// It returns true when err is nil.
func (s *Server) observe(w http.ResponseWriter, op string, start time.Time, err error) bool {
	if s.metrics != nil {
		s.metrics.RecordQuery(op, err == nil, time.Since(start))
	}
	if err == nil {
		return true
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("query failed", "operation", op, "error", err)
	}
	sendError(w, err.Error(), status)
	return false
}

func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", query.ErrInvalidLimit, raw)
	}
	return n, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleMovies searches by title with ?q=. Each ?filter= adds a field
// condition such as runtime>=120; filtered results include movies that
// have ended their run.
func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	title := r.URL.Query().Get("q")
	raw := r.URL.Query()["filter"]

	if len(raw) == 0 {
		movies, err := s.movies.Search(r.Context(), title)
		if s.observe(w, "search", start, err) {
			sendSuccess(w, nonNil(movies))
		}
		return
	}

	filters := make([]query.Filter, 0, len(raw)+1)
	for _, expr := range raw {
		f, err := query.ParseFilter(expr)
		if err != nil {
			s.observe(w, "filter", start, err)
			return
		}
		filters = append(filters, f)
	}
	if title != "" {
		filters = append(filters, query.Filter{Field: "title", Operator: "~", Value: title})
	}
	movies, err := s.movies.Filter(r.Context(), filters...)
	if s.observe(w, "filter", start, err) {
		sendSuccess(w, nonNil(movies))
	}
}

func (s *Server) handleTopRated(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n, err := limitParam(r)
	if err != nil {
		s.observe(w, "top_rated", start, err)
		return
	}
	movies, err := s.movies.TopRated(r.Context(), n)
	if s.observe(w, "top_rated", start, err) {
		sendSuccess(w, nonNil(movies))
	}
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n, err := limitParam(r)
	if err != nil {
		s.observe(w, "popular", start, err)
		return
	}
	movies, err := s.movies.Popular(r.Context(), n)
	if s.observe(w, "popular", start, err) {
		sendSuccess(w, nonNil(movies))
	}
}

func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	movie, err := s.movies.Get(r.Context(), chi.URLParam(r, "id"))
	if s.observe(w, "get_movie", start, err) {
		sendSuccess(w, movie)
	}
}

// handleMovieRaw returns the stored flat string as text/plain
func (s *Server) handleMovieRaw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	raw, err := s.movies.Raw(r.Context(), chi.URLParam(r, "id"))
	if !s.observe(w, "raw_movie", start, err) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, raw)
}

func (s *Server) handleAddReview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req ReviewRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	movie, err := s.movies.AddReview(r.Context(), chi.URLParam(r, "id"), req.Reviewer, req.Text, req.Rating)
	if s.observe(w, "add_review", start, err) {
		sendSuccessStatus(w, movie, http.StatusCreated)
	}
}

func (s *Server) handleRecordSale(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req SaleRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}
	if req.Tickets <= 0 {
		sendError(w, "tickets must be positive", http.StatusBadRequest)
		return
	}

	movie, err := s.movies.RecordSale(r.Context(), chi.URLParam(r, "id"), req.Tickets)
	if s.observe(w, "record_sale", start, err) {
		sendSuccess(w, movie)
	}
}

func (s *Server) handleShowtimes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	showings, err := s.movies.Showtimes(r.Context(), chi.URLParam(r, "id"))
	if s.observe(w, "showtimes", start, err) {
		sendSuccess(w, nonNil(showings))
	}
}

func (s *Server) handleCineplexes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	plexes, err := s.cineplexes.List(r.Context())
	if s.observe(w, "list_cineplexes", start, err) {
		sendSuccess(w, nonNil(plexes))
	}
}

func (s *Server) handleCineplex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	plex, err := s.cineplexes.Get(r.Context(), chi.URLParam(r, "id"))
	if s.observe(w, "get_cineplex", start, err) {
		sendSuccess(w, plex)
	}
}

func (s *Server) handleCineplexShowings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	showings, err := s.cineplexes.Showings(r.Context(), chi.URLParam(r, "id"))
	if s.observe(w, "cineplex_showings", start, err) {
		sendSuccess(w, nonNil(showings))
	}
}

// handleParse splits the request body into its top-level fields. With
// ?type= it decodes the body as a record of that type instead.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	text := string(body)

	if tag := r.URL.Query().Get("type"); tag != "" {
		rec, err := cinema.Registry.DecodeFields(tag, text)
		s.recordParse(err)
		if err != nil {
			sendError(w, err.Error(), parseStatus(err))
			return
		}
		sendSuccess(w, rec)
		return
	}

	fields, err := serial.Parse(text)
	s.recordParse(err)
	if err != nil {
		sendError(w, err.Error(), parseStatus(err))
		return
	}
	if fields == nil {
		sendSuccess(w, ParseResponse{Fields: map[string]string{}, Null: true})
		return
	}
	sendSuccess(w, ParseResponse{Fields: fields})
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string][]string{"types": cinema.Registry.Tags()})
}

func (s *Server) recordParse(err error) {
	if s.metrics != nil {
		s.metrics.RecordParse(err == nil)
	}
}

// nonNil keeps empty results encoding as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
