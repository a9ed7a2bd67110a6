package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the HTTP routes for the catalog and request APIs.
func NewRouter(movies *MovieHandler, requests *RequestHandler, logger *slog.Logger) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("SERVER IS UP"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/movies", movies.List).Methods(http.MethodGet)
	api.HandleFunc("/movies/add", movies.Create).Methods(http.MethodPost)
	api.HandleFunc("/movies/{tmdb_id}", movies.Get).Methods(http.MethodGet)
	api.HandleFunc("/movies/{tmdb_id}/update", movies.Update).Methods(http.MethodPatch)
	api.HandleFunc("/movies/{tmdb_id}/delete", movies.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/requests", requests.List).Methods(http.MethodGet)
	api.HandleFunc("/requests", requests.Create).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id}", requests.Get).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id}", requests.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/requests/{id}/solved", requests.MarkSolved).Methods(http.MethodPatch)

	r.Use(loggingMiddleware(logger))

	return r
}

func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug("request received",
				"method", r.Method,
				"path", r.URL.Path,
			)
			next.ServeHTTP(w, r)
		})
	}
}
