package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"cinecraze/internal/domain"
)

// RequestService manages cine requests and the mark-solved notification flow.
type RequestService struct {
	requests RequestStore
	mailer   Mailer
	logger   *slog.Logger
}

func NewRequestService(requests RequestStore, m Mailer, logger *slog.Logger) *RequestService {
	return &RequestService{
		requests: requests,
		mailer:   m,
		logger:   logger.With("component", "requests"),
	}
}

// CreateRequestInput carries a new cine request.
type CreateRequestInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (s *RequestService) Create(ctx context.Context, input CreateRequestInput) (*domain.CineRequest, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.Validationf("'name' field is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, domain.Validationf("'message' field is required")
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, domain.Validationf("'email' must be a valid email address")
	}

	req := &domain.CineRequest{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("cine request created", "request_id", req.ID)
	return req, nil
}

func (s *RequestService) Get(ctx context.Context, id int64) (*domain.CineRequest, error) {
	return s.requests.GetByID(ctx, id)
}

func (s *RequestService) List(ctx context.Context) ([]domain.CineRequest, error) {
	return s.requests.List(ctx)
}

func (s *RequestService) Delete(ctx context.Context, id int64) error {
	return s.requests.Delete(ctx, id)
}

// MarkSolved flips the solved flag and notifies the requester by email. The
// flag is committed before the send so a failed send can be compensated: on
// failure the flag is reverted and NotificationFailedError returned. The two
// writes are independent commits; a crash between them can leave the request
// solved with no email sent.
func (s *RequestService) MarkSolved(ctx context.Context, id int64) error {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if req.Solved {
		return domain.ErrAlreadySolved
	}

	if err := s.requests.SetSolved(ctx, id, true); err != nil {
		return err
	}
	req.Solved = true

	if err := s.mailer.SendRequestFulfilled(ctx, req); err != nil {
		s.logger.Error("fulfillment email failed, reverting solved flag", "request_id", id, "error", err)

		if revertErr := s.requests.SetSolved(ctx, id, false); revertErr != nil {
			s.logger.Error("failed to revert solved flag", "request_id", id, "error", revertErr)
			err = errors.Join(err, revertErr)
		}

		return &domain.NotificationFailedError{Err: err}
	}

	s.logger.Info("request marked as solved", "request_id", id)
	return nil
}
