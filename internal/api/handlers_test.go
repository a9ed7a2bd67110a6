package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinecraze/internal/domain"
	"cinecraze/internal/service"
)

type stubCatalog struct {
	createFn func(ctx context.Context, input service.CreateMovieInput) (*domain.Movie, error)
	updateFn func(ctx context.Context, tmdbID int64, input service.UpdateMovieInput) (*domain.Movie, error)
	getFn    func(ctx context.Context, tmdbID int64) (*domain.Movie, error)
	listFn   func(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, error)
	deleteFn func(ctx context.Context, tmdbID int64) (*domain.Movie, error)
}

func (s *stubCatalog) Create(ctx context.Context, input service.CreateMovieInput) (*domain.Movie, error) {
	return s.createFn(ctx, input)
}

func (s *stubCatalog) Update(ctx context.Context, tmdbID int64, input service.UpdateMovieInput) (*domain.Movie, error) {
	return s.updateFn(ctx, tmdbID, input)
}

func (s *stubCatalog) Get(ctx context.Context, tmdbID int64) (*domain.Movie, error) {
	return s.getFn(ctx, tmdbID)
}

func (s *stubCatalog) List(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, error) {
	return s.listFn(ctx, filter)
}

func (s *stubCatalog) Delete(ctx context.Context, tmdbID int64) (*domain.Movie, error) {
	return s.deleteFn(ctx, tmdbID)
}

type stubRequests struct {
	createFn     func(ctx context.Context, input service.CreateRequestInput) (*domain.CineRequest, error)
	getFn        func(ctx context.Context, id int64) (*domain.CineRequest, error)
	listFn       func(ctx context.Context) ([]domain.CineRequest, error)
	deleteFn     func(ctx context.Context, id int64) error
	markSolvedFn func(ctx context.Context, id int64) error
}

func (s *stubRequests) Create(ctx context.Context, input service.CreateRequestInput) (*domain.CineRequest, error) {
	return s.createFn(ctx, input)
}

func (s *stubRequests) Get(ctx context.Context, id int64) (*domain.CineRequest, error) {
	return s.getFn(ctx, id)
}

func (s *stubRequests) List(ctx context.Context) ([]domain.CineRequest, error) {
	return s.listFn(ctx)
}

func (s *stubRequests) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubRequests) MarkSolved(ctx context.Context, id int64) error {
	return s.markSolvedFn(ctx, id)
}

func newTestRouter(catalog *stubCatalog, requests *stubRequests) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(
		NewMovieHandler(catalog, logger),
		NewRequestHandler(requests, logger),
		logger,
	)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListMovies_FilterQueryParams(t *testing.T) {
	var captured domain.MovieFilter
	catalog := &stubCatalog{
		listFn: func(_ context.Context, filter domain.MovieFilter) ([]domain.Movie, error) {
			captured = filter
			return []domain.Movie{}, nil
		},
	}
	router := newTestRouter(catalog, &stubRequests{})

	rec := doRequest(t, router, http.MethodGet,
		"/api/movies?languages=English&genres=Action&search=space&new_release=true&upcoming=false", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.MovieFilter{
		Language:   "English",
		Genre:      "Action",
		Search:     "space",
		NewRelease: true,
		Upcoming:   false,
	}, captured)
}

func TestListMovies_EmptyResultIsArray(t *testing.T) {
	catalog := &stubCatalog{
		listFn: func(context.Context, domain.MovieFilter) ([]domain.Movie, error) {
			return nil, nil
		},
	}
	router := newTestRouter(catalog, &stubRequests{})

	rec := doRequest(t, router, http.MethodGet, "/api/movies", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestGetMovie_InvalidID(t *testing.T) {
	router := newTestRouter(&stubCatalog{}, &stubRequests{})

	rec := doRequest(t, router, http.MethodGet, "/api/movies/abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMovie_NotFound(t *testing.T) {
	catalog := &stubCatalog{
		getFn: func(context.Context, int64) (*domain.Movie, error) {
			return nil, &domain.NotFoundError{Resource: "movie"}
		},
	}
	router := newTestRouter(catalog, &stubRequests{})

	rec := doRequest(t, router, http.MethodGet, "/api/movies/550", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateMovie_Success(t *testing.T) {
	catalog := &stubCatalog{
		createFn: func(_ context.Context, input service.CreateMovieInput) (*domain.Movie, error) {
			assert.Equal(t, int64(550), input.TMDBID)
			return &domain.Movie{TMDBID: input.TMDBID, Title: "Fight Club"}, nil
		},
	}
	router := newTestRouter(catalog, &stubRequests{})

	rec := doRequest(t, router, http.MethodPost, "/api/movies/add", map[string]any{
		"tmdb_id": 550,
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	var movie domain.Movie
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &movie))
	assert.Equal(t, "Fight Club", movie.Title)
}

func TestCreateMovie_UpstreamFailure(t *testing.T) {
	catalog := &stubCatalog{
		createFn: func(context.Context, service.CreateMovieInput) (*domain.Movie, error) {
			return nil, domain.ErrUpstreamLookup
		},
	}
	router := newTestRouter(catalog, &stubRequests{})

	rec := doRequest(t, router, http.MethodPost, "/api/movies/add", map[string]any{
		"tmdb_id": 550,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to fetch data from TMDB")
}

func TestUpdateMovie_MissingFetchLatest(t *testing.T) {
	catalog := &stubCatalog{
		updateFn: func(_ context.Context, _ int64, input service.UpdateMovieInput) (*domain.Movie, error) {
			require.Nil(t, input.FetchLatest)
			return nil, domain.Validationf("'fetch_latest' field is required")
		},
	}
	router := newTestRouter(catalog, &stubRequests{})

	rec := doRequest(t, router, http.MethodPatch, "/api/movies/550/update", map[string]any{
		"title": "Renamed",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "'fetch_latest' field is required")
}

func TestUpdateMovie_Success(t *testing.T) {
	catalog := &stubCatalog{
		updateFn: func(_ context.Context, tmdbID int64, input service.UpdateMovieInput) (*domain.Movie, error) {
			assert.Equal(t, int64(550), tmdbID)
			require.NotNil(t, input.FetchLatest)
			assert.False(t, *input.FetchLatest)
			return &domain.Movie{TMDBID: tmdbID, Title: "Renamed"}, nil
		},
	}
	router := newTestRouter(catalog, &stubRequests{})

	rec := doRequest(t, router, http.MethodPatch, "/api/movies/550/update", map[string]any{
		"fetch_latest": false,
		"title":        "Renamed",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteMovie_Message(t *testing.T) {
	catalog := &stubCatalog{
		deleteFn: func(_ context.Context, tmdbID int64) (*domain.Movie, error) {
			return &domain.Movie{TMDBID: tmdbID, Title: "Fight Club"}, nil
		},
	}
	router := newTestRouter(catalog, &stubRequests{})

	rec := doRequest(t, router, http.MethodDelete, "/api/movies/550/delete", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Movie 'Fight Club' has been deleted.", payload["message"])
}

func TestCreateRequest_Success(t *testing.T) {
	requests := &stubRequests{
		createFn: func(_ context.Context, input service.CreateRequestInput) (*domain.CineRequest, error) {
			assert.Equal(t, "Jamie", input.Name)
			return &domain.CineRequest{ID: 1, Name: input.Name, Email: input.Email, Message: input.Message}, nil
		},
	}
	router := newTestRouter(&stubCatalog{}, requests)

	rec := doRequest(t, router, http.MethodPost, "/api/requests", map[string]any{
		"name":    "Jamie",
		"email":   "jamie@example.com",
		"message": "Please add Dune",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestMarkSolved_Success(t *testing.T) {
	requests := &stubRequests{
		markSolvedFn: func(_ context.Context, id int64) error {
			assert.Equal(t, int64(7), id)
			return nil
		},
	}
	router := newTestRouter(&stubCatalog{}, requests)

	rec := doRequest(t, router, http.MethodPatch, "/api/requests/7/solved", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Request marked as solved and email sent.", payload["status"])
}

func TestMarkSolved_AlreadySolved(t *testing.T) {
	requests := &stubRequests{
		markSolvedFn: func(context.Context, int64) error {
			return domain.ErrAlreadySolved
		},
	}
	router := newTestRouter(&stubCatalog{}, requests)

	rec := doRequest(t, router, http.MethodPatch, "/api/requests/7/solved", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Request is already marked as solved.")
}

func TestMarkSolved_NotificationFailure(t *testing.T) {
	requests := &stubRequests{
		markSolvedFn: func(context.Context, int64) error {
			return &domain.NotificationFailedError{Err: errors.New("smtp refused")}
		},
	}
	router := newTestRouter(&stubCatalog{}, requests)

	rec := doRequest(t, router, http.MethodPatch, "/api/requests/7/solved", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An error occurred while sending email.")
}

func TestUnclassifiedError_GenericMessage(t *testing.T) {
	catalog := &stubCatalog{
		listFn: func(context.Context, domain.MovieFilter) ([]domain.Movie, error) {
			return nil, errors.New("connection reset by peer")
		},
	}
	router := newTestRouter(catalog, &stubRequests{})

	rec := doRequest(t, router, http.MethodGet, "/api/movies", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An error occurred while processing the request.")
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
