package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"cinecraze/internal/domain"
)

const uniqueViolation = "23505"

const movieColumns = `
	id, tmdb_id, imdb_id, title, overview, release_date,
	poster_url, backdrop_url, trailer_url, imdb_rating, tmdb_rating,
	genres, languages, production_countries, casts, director,
	download_urls, streaming_urls, standard_user, premium_user,
	created_at, updated_at`

type MovieStore struct {
	db *sqlx.DB
}

func NewMovieStore(db *sqlx.DB) *MovieStore {
	return &MovieStore{db: db}
}

func (s *MovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (
			tmdb_id, imdb_id, title, overview, release_date,
			poster_url, backdrop_url, trailer_url, imdb_rating, tmdb_rating,
			genres, languages, production_countries, casts, director,
			download_urls, streaming_urls, standard_user, premium_user
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		)
		RETURNING id, created_at, updated_at`

	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		movie.TMDBID,
		movie.IMDBID,
		movie.Title,
		movie.Overview,
		movie.ReleaseDate,
		movie.PosterURL,
		movie.BackdropURL,
		movie.TrailerURL,
		movie.IMDBRating,
		movie.TMDBRating,
		movie.Genres,
		movie.Languages,
		movie.ProductionCountries,
		movie.Casts,
		movie.Director,
		nullableJSON(movie.DownloadURLs),
		nullableJSON(movie.StreamingURLs),
		movie.StandardUser,
		movie.PremiumUser,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return domain.Validationf("movie with tmdb_id %d already exists", movie.TMDBID)
	}

	return err
}

func (s *MovieStore) GetByTMDBID(ctx context.Context, tmdbID int64) (*domain.Movie, error) {
	query := `SELECT` + movieColumns + ` FROM movies WHERE tmdb_id = $1`

	var movie domain.Movie
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &movie, query, tmdbID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "movie"}
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (s *MovieStore) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies SET
			imdb_id = $2,
			title = $3,
			overview = $4,
			release_date = $5,
			poster_url = $6,
			backdrop_url = $7,
			trailer_url = $8,
			imdb_rating = $9,
			tmdb_rating = $10,
			genres = $11,
			languages = $12,
			production_countries = $13,
			casts = $14,
			director = $15,
			download_urls = $16,
			streaming_urls = $17,
			standard_user = $18,
			premium_user = $19,
			updated_at = NOW()
		WHERE tmdb_id = $1
		RETURNING updated_at`

	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		movie.TMDBID,
		movie.IMDBID,
		movie.Title,
		movie.Overview,
		movie.ReleaseDate,
		movie.PosterURL,
		movie.BackdropURL,
		movie.TrailerURL,
		movie.IMDBRating,
		movie.TMDBRating,
		movie.Genres,
		movie.Languages,
		movie.ProductionCountries,
		movie.Casts,
		movie.Director,
		nullableJSON(movie.DownloadURLs),
		nullableJSON(movie.StreamingURLs),
		movie.StandardUser,
		movie.PremiumUser,
	).Scan(&movie.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Resource: "movie"}
	}
	return err
}

func (s *MovieStore) Delete(ctx context.Context, tmdbID int64) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM movies WHERE tmdb_id = $1", tmdbID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.NotFoundError{Resource: "movie"}
	}
	return nil
}

func (s *MovieStore) List(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, error) {
	query, args := buildListQuery(filter, domain.DateOf(time.Now()))

	var movies []domain.Movie
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &movies, query, args...); err != nil {
		return nil, err
	}
	return movies, nil
}

// buildListQuery turns the filter predicates into one conjunctive WHERE
// clause. The release-date predicates are derived from today at query time,
// never stored.
func buildListQuery(filter domain.MovieFilter, today domain.Date) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Language != "" {
		conditions = append(conditions, "languages::text ILIKE "+arg("%"+filter.Language+"%"))
	}
	if filter.Genre != "" {
		conditions = append(conditions, "genres::text ILIKE "+arg("%"+filter.Genre+"%"))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, "(title ILIKE "+arg(pattern)+" OR overview ILIKE "+arg(pattern)+")")
	}
	if filter.NewRelease {
		from, to := domain.ReleaseWindow(today)
		conditions = append(conditions, "release_date BETWEEN "+arg(from)+" AND "+arg(to))
	}
	if filter.Upcoming {
		conditions = append(conditions, "release_date > "+arg(today))
	}

	query := `SELECT` + movieColumns + ` FROM movies`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	return query, args
}

// nullableJSON maps empty opaque payloads onto SQL NULL.
func nullableJSON(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	return []byte(data)
}
