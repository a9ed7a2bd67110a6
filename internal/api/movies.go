package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"cinecraze/internal/domain"
	"cinecraze/internal/service"
)

// catalogService is the catalog surface the movie handlers need.
type catalogService interface {
	Create(ctx context.Context, input service.CreateMovieInput) (*domain.Movie, error)
	Update(ctx context.Context, tmdbID int64, input service.UpdateMovieInput) (*domain.Movie, error)
	Get(ctx context.Context, tmdbID int64) (*domain.Movie, error)
	List(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, error)
	Delete(ctx context.Context, tmdbID int64) (*domain.Movie, error)
}

var _ catalogService = (*service.CatalogService)(nil)

type MovieHandler struct {
	catalog catalogService
	logger  *slog.Logger
}

func NewMovieHandler(catalog catalogService, logger *slog.Logger) *MovieHandler {
	return &MovieHandler{
		catalog: catalog,
		logger:  logger.With("handler", "movies"),
	}
}

func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := domain.MovieFilter{
		Language:   strings.TrimSpace(query.Get("languages")),
		Genre:      strings.TrimSpace(query.Get("genres")),
		Search:     strings.TrimSpace(query.Get("search")),
		NewRelease: boolParam(query.Get("new_release")),
		Upcoming:   boolParam(query.Get("upcoming")),
	}

	movies, err := h.catalog.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if movies == nil {
		movies = []domain.Movie{}
	}
	writeJSON(w, http.StatusOK, movies)
}

func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := pathID(r, "tmdb_id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	movie, err := h.catalog.Get(r.Context(), tmdbID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateMovieInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, domain.Validationf("invalid request body"))
		return
	}

	movie, err := h.catalog.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, movie)
}

func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := pathID(r, "tmdb_id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var input service.UpdateMovieInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, domain.Validationf("invalid request body"))
		return
	}

	movie, err := h.catalog.Update(r.Context(), tmdbID, input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tmdbID, err := pathID(r, "tmdb_id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	movie, err := h.catalog.Delete(r.Context(), tmdbID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Movie '%s' has been deleted.", movie.Title),
	})
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("'%s' must be a positive integer", name)
	}
	return id, nil
}

func boolParam(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}
