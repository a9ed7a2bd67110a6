package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"cinecraze/internal/domain"
	"cinecraze/internal/service"
)

// requestService is the request-intake surface the request handlers need.
type requestService interface {
	Create(ctx context.Context, input service.CreateRequestInput) (*domain.CineRequest, error)
	Get(ctx context.Context, id int64) (*domain.CineRequest, error)
	List(ctx context.Context) ([]domain.CineRequest, error)
	Delete(ctx context.Context, id int64) error
	MarkSolved(ctx context.Context, id int64) error
}

var _ requestService = (*service.RequestService)(nil)

type RequestHandler struct {
	requests requestService
	logger   *slog.Logger
}

func NewRequestHandler(requests requestService, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		requests: requests,
		logger:   logger.With("handler", "requests"),
	}
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requests.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if requests == nil {
		requests = []domain.CineRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	req, err := h.requests.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, domain.Validationf("invalid request body"))
		return
	}

	req, err := h.requests.Create(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, req)
}

func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.requests.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *RequestHandler) MarkSolved(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.requests.MarkSolved(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "Request marked as solved and email sent.",
	})
}
