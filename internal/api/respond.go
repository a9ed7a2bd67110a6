package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"cinecraze/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy onto stable status codes and
// messages. Anything unclassified becomes a generic internal failure so no
// internal detail crosses the boundary.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Msg})
		return
	}

	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: nf.Error()})
		return
	}

	if errors.Is(err, domain.ErrUpstreamLookup) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "Failed to fetch data from TMDB. Please check the tmdb id.",
		})
		return
	}

	if errors.Is(err, domain.ErrAlreadySolved) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "Request is already marked as solved.",
		})
		return
	}

	var nfe *domain.NotificationFailedError
	if errors.As(err, &nfe) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "An error occurred while sending email.",
		})
		return
	}

	logger.Error("unhandled error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: "An error occurred while processing the request.",
	})
}
