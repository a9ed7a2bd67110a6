package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"cinecraze/internal/domain"
	"cinecraze/internal/service/mocks"
)

type RequestServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	requests *mocks.MockRequestStore
	mailer   *mocks.MockMailer

	service *RequestService
	logger  *slog.Logger
}

func (s *RequestServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.requests = mocks.NewMockRequestStore(s.ctrl)
	s.mailer = mocks.NewMockMailer(s.ctrl)

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.service = NewRequestService(s.requests, s.mailer, s.logger)
}

func (s *RequestServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RequestServiceTestSuite))
}

func pendingRequest() *domain.CineRequest {
	return &domain.CineRequest{
		ID:      7,
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Message: "Please add The Matrix",
		Solved:  false,
	}
}

func (s *RequestServiceTestSuite) TestCreate_Valid() {
	ctx := context.Background()

	s.requests.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, req *domain.CineRequest) error {
			req.ID = 7
			return nil
		},
	)

	req, err := s.service.Create(ctx, CreateRequestInput{
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Message: "Please add The Matrix",
	})

	s.Require().NoError(err)
	s.Equal(int64(7), req.ID)
	s.False(req.Solved)
}

func (s *RequestServiceTestSuite) TestCreate_InvalidInput() {
	cases := []struct {
		name  string
		input CreateRequestInput
	}{
		{"missing_name", CreateRequestInput{Email: "a@b.com", Message: "hi"}},
		{"missing_message", CreateRequestInput{Name: "A", Email: "a@b.com"}},
		{"bad_email", CreateRequestInput{Name: "A", Email: "not-an-email", Message: "hi"}},
		{"empty_email", CreateRequestInput{Name: "A", Message: "hi"}},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			req, err := s.service.Create(context.Background(), tc.input)
			s.Require().Error(err)
			s.True(domain.IsValidation(err))
			s.Nil(req)
		})
	}
}

func (s *RequestServiceTestSuite) TestMarkSolved_Success() {
	ctx := context.Background()

	s.requests.EXPECT().GetByID(ctx, int64(7)).Return(pendingRequest(), nil)
	s.requests.EXPECT().SetSolved(ctx, int64(7), true).Return(nil)
	s.mailer.EXPECT().SendRequestFulfilled(ctx, gomock.Any()).DoAndReturn(
		func(ctx context.Context, req *domain.CineRequest) error {
			s.True(req.Solved)
			s.Equal("jordan@example.com", req.Email)
			return nil
		},
	)

	err := s.service.MarkSolved(ctx, 7)

	s.NoError(err)
}

func (s *RequestServiceTestSuite) TestMarkSolved_AlreadySolved() {
	ctx := context.Background()

	solved := pendingRequest()
	solved.Solved = true
	s.requests.EXPECT().GetByID(ctx, int64(7)).Return(solved, nil)

	err := s.service.MarkSolved(ctx, 7)

	// No second notification is attempted: the mailer mock has no
	// expectations, so any send would fail the test.
	s.Require().Error(err)
	s.ErrorIs(err, domain.ErrAlreadySolved)
}

func (s *RequestServiceTestSuite) TestMarkSolved_NotFound() {
	ctx := context.Background()

	s.requests.EXPECT().GetByID(ctx, int64(99)).Return(nil, &domain.NotFoundError{Resource: "request"})

	err := s.service.MarkSolved(ctx, 99)

	s.Require().Error(err)
	s.True(domain.IsNotFound(err))
}

func (s *RequestServiceTestSuite) TestMarkSolved_NotificationFailureCompensates() {
	ctx := context.Background()

	s.requests.EXPECT().GetByID(ctx, int64(7)).Return(pendingRequest(), nil)

	gomock.InOrder(
		s.requests.EXPECT().SetSolved(ctx, int64(7), true).Return(nil),
		s.mailer.EXPECT().SendRequestFulfilled(ctx, gomock.Any()).Return(errors.New("smtp unreachable")),
		s.requests.EXPECT().SetSolved(ctx, int64(7), false).Return(nil),
	)

	err := s.service.MarkSolved(ctx, 7)

	s.Require().Error(err)
	var nfe *domain.NotificationFailedError
	s.ErrorAs(err, &nfe)
}

func (s *RequestServiceTestSuite) TestMarkSolved_CompensationFailureStillReported() {
	ctx := context.Background()

	s.requests.EXPECT().GetByID(ctx, int64(7)).Return(pendingRequest(), nil)

	gomock.InOrder(
		s.requests.EXPECT().SetSolved(ctx, int64(7), true).Return(nil),
		s.mailer.EXPECT().SendRequestFulfilled(ctx, gomock.Any()).Return(errors.New("smtp unreachable")),
		s.requests.EXPECT().SetSolved(ctx, int64(7), false).Return(errors.New("db down")),
	)

	err := s.service.MarkSolved(ctx, 7)

	s.Require().Error(err)
	var nfe *domain.NotificationFailedError
	s.ErrorAs(err, &nfe)
}

func (s *RequestServiceTestSuite) TestDelete_PassesThrough() {
	ctx := context.Background()

	s.requests.EXPECT().Delete(ctx, int64(7)).Return(nil)

	s.NoError(s.service.Delete(ctx, 7))
}
