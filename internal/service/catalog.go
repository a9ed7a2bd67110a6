package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx/types"

	"cinecraze/internal/domain"
	"cinecraze/internal/publisher"
)

// CatalogService keeps the movie catalog in sync with the metadata provider.
// Derived fields always come from upstream via the metadata source; opaque
// fields (download/streaming URLs, tier flags) always come from the caller.
type CatalogService struct {
	metadata  MetadataSource
	movies    MovieStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
}

func NewCatalogService(
	metadata MetadataSource,
	movies MovieStore,
	txManager TransactionManager,
	pub Publisher,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		metadata:  metadata,
		movies:    movies,
		txManager: txManager,
		publisher: pub,
		logger:    logger.With("component", "catalog"),
	}
}

// CreateMovieInput carries the caller-supplied part of a new record. Everything
// else is fetched from the metadata provider.
type CreateMovieInput struct {
	TMDBID        int64          `json:"tmdb_id"`
	DownloadURLs  types.JSONText `json:"download_urls"`
	StreamingURLs types.JSONText `json:"streaming_urls"`
	StandardUser  bool           `json:"standard_user"`
	PremiumUser   bool           `json:"premium_user"`
}

// UpdateMovieInput is a partial update. Nil pointers mean "not supplied";
// FetchLatest must be explicitly present, its absence is a validation error.
type UpdateMovieInput struct {
	FetchLatest *bool `json:"fetch_latest"`

	IMDBID              *string            `json:"imdb_id"`
	Title               *string            `json:"title"`
	Overview            *string            `json:"overview"`
	ReleaseDate         *domain.Date       `json:"release_date"`
	PosterURL           *string            `json:"poster_url"`
	BackdropURL         *string            `json:"backdrop_url"`
	TrailerURL          *string            `json:"trailer_url"`
	IMDBRating          *float64           `json:"imdb_rating"`
	TMDBRating          *float64           `json:"tmdb_rating"`
	Genres              *domain.StringList `json:"genres"`
	Languages           *domain.StringList `json:"languages"`
	ProductionCountries *domain.StringList `json:"production_countries"`
	Casts               *domain.CastList   `json:"casts"`
	Director            *domain.Person     `json:"director"`
	DownloadURLs        types.JSONText     `json:"download_urls"`
	StreamingURLs       types.JSONText     `json:"streaming_urls"`
	StandardUser        *bool              `json:"standard_user"`
	PremiumUser         *bool              `json:"premium_user"`
}

func (in *UpdateMovieInput) apply(m *domain.Movie) {
	if in.IMDBID != nil {
		m.IMDBID = in.IMDBID
	}
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Overview != nil {
		m.Overview = *in.Overview
	}
	if in.ReleaseDate != nil {
		m.ReleaseDate = *in.ReleaseDate
	}
	if in.PosterURL != nil {
		m.PosterURL = *in.PosterURL
	}
	if in.BackdropURL != nil {
		m.BackdropURL = *in.BackdropURL
	}
	if in.TrailerURL != nil {
		m.TrailerURL = *in.TrailerURL
	}
	if in.IMDBRating != nil {
		m.IMDBRating = *in.IMDBRating
	}
	if in.TMDBRating != nil {
		m.TMDBRating = *in.TMDBRating
	}
	if in.Genres != nil {
		m.Genres = *in.Genres
	}
	if in.Languages != nil {
		m.Languages = *in.Languages
	}
	if in.ProductionCountries != nil {
		m.ProductionCountries = *in.ProductionCountries
	}
	if in.Casts != nil {
		m.Casts = *in.Casts
	}
	if in.Director != nil {
		m.Director = *in.Director
	}
	if in.DownloadURLs != nil {
		m.DownloadURLs = in.DownloadURLs
	}
	if in.StreamingURLs != nil {
		m.StreamingURLs = in.StreamingURLs
	}
	if in.StandardUser != nil {
		m.StandardUser = *in.StandardUser
	}
	if in.PremiumUser != nil {
		m.PremiumUser = *in.PremiumUser
	}
}

// Create validates the TMDB id against upstream, merges the normalized fields
// with the caller-supplied ones and persists the record. Nothing is persisted
// when any upstream lookup fails.
func (s *CatalogService) Create(ctx context.Context, input CreateMovieInput) (*domain.Movie, error) {
	if input.TMDBID <= 0 {
		return nil, domain.Validationf("'tmdb_id' must be a positive integer")
	}

	if _, err := s.movies.GetByTMDBID(ctx, input.TMDBID); err == nil {
		return nil, domain.Validationf("movie with tmdb_id %d already exists", input.TMDBID)
	} else if !domain.IsNotFound(err) {
		return nil, fmt.Errorf("check existing movie: %w", err)
	}

	fields, err := s.metadata.FetchMovie(ctx, input.TMDBID)
	if err != nil {
		return nil, err
	}

	movie := &domain.Movie{
		TMDBID:        input.TMDBID,
		DownloadURLs:  input.DownloadURLs,
		StreamingURLs: input.StreamingURLs,
		StandardUser:  input.StandardUser,
		PremiumUser:   input.PremiumUser,
	}
	movie.ApplyDerived(*fields)

	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.publish(ctx, movie, publisher.ActionCreate)

	s.logger.Info("movie created", "tmdb_id", movie.TMDBID, "title", movie.Title)
	return movie, nil
}

// Update applies a partial update to an existing record. With FetchLatest set,
// every derived field is overwritten from upstream first; the explicit patch
// fields are applied on top either way. The read-modify-write runs in one
// transaction; the upstream call happens before it.
func (s *CatalogService) Update(ctx context.Context, tmdbID int64, input UpdateMovieInput) (*domain.Movie, error) {
	if input.FetchLatest == nil {
		return nil, domain.Validationf("'fetch_latest' field is required")
	}

	var fields *domain.MovieFields
	if *input.FetchLatest {
		var err error
		fields, err = s.metadata.FetchMovie(ctx, tmdbID)
		if err != nil {
			return nil, err
		}
	}

	var movie *domain.Movie
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		movie, err = s.movies.GetByTMDBID(txCtx, tmdbID)
		if err != nil {
			return err
		}

		if fields != nil {
			movie.ApplyDerived(*fields)
		}
		input.apply(movie)

		return s.movies.Update(txCtx, movie)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, movie, publisher.ActionUpdate)

	s.logger.Info("movie updated", "tmdb_id", tmdbID, "fetch_latest", *input.FetchLatest)
	return movie, nil
}

func (s *CatalogService) Get(ctx context.Context, tmdbID int64) (*domain.Movie, error) {
	return s.movies.GetByTMDBID(ctx, tmdbID)
}

func (s *CatalogService) List(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, error) {
	return s.movies.List(ctx, filter)
}

func (s *CatalogService) Delete(ctx context.Context, tmdbID int64) (*domain.Movie, error) {
	movie, err := s.movies.GetByTMDBID(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	if err := s.movies.Delete(ctx, tmdbID); err != nil {
		return nil, err
	}

	s.publish(ctx, movie, publisher.ActionDelete)

	s.logger.Info("movie deleted", "tmdb_id", tmdbID, "title", movie.Title)
	return movie, nil
}

// RefreshAll re-fetches upstream metadata for every stored movie and
// overwrites the derived fields, leaving opaque fields untouched. Failures are
// counted per record and do not stop the run.
func (s *CatalogService) RefreshAll(ctx context.Context) (*domain.RefreshStats, error) {
	startTime := time.Now()

	movies, err := s.movies.List(ctx, domain.MovieFilter{})
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	stats := &domain.RefreshStats{Total: len(movies)}

	for i := range movies {
		tmdbID := movies[i].TMDBID

		fields, err := s.metadata.FetchMovie(ctx, tmdbID)
		if err != nil {
			s.logger.Warn("refresh fetch failed", "tmdb_id", tmdbID, "error", err)
			stats.Errors++
			continue
		}

		err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			movie, err := s.movies.GetByTMDBID(txCtx, tmdbID)
			if err != nil {
				return err
			}
			movie.ApplyDerived(*fields)
			return s.movies.Update(txCtx, movie)
		})
		if err != nil {
			s.logger.Warn("refresh update failed", "tmdb_id", tmdbID, "error", err)
			stats.Errors++
			continue
		}

		stats.Refreshed++
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info("catalog refresh completed",
		"total", stats.Total,
		"refreshed", stats.Refreshed,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (s *CatalogService) publish(ctx context.Context, movie *domain.Movie, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishMovie(ctx, movie, action); err != nil {
		s.logger.Error("failed to publish movie event", "tmdb_id", movie.TMDBID, "action", action, "error", err)
	}
}
