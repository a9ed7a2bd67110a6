package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"cinecraze/internal/domain"
)

type MetadataSource interface {
	FetchMovie(ctx context.Context, tmdbID int64) (*domain.MovieFields, error)
}

type MovieStore interface {
	Create(ctx context.Context, movie *domain.Movie) error
	GetByTMDBID(ctx context.Context, tmdbID int64) (*domain.Movie, error)
	Update(ctx context.Context, movie *domain.Movie) error
	Delete(ctx context.Context, tmdbID int64) error
	List(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, error)
}

type RequestStore interface {
	Create(ctx context.Context, req *domain.CineRequest) error
	GetByID(ctx context.Context, id int64) (*domain.CineRequest, error)
	List(ctx context.Context) ([]domain.CineRequest, error)
	SetSolved(ctx context.Context, id int64, solved bool) error
	Delete(ctx context.Context, id int64) error
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	PublishMovie(ctx context.Context, movie *domain.Movie, action string) error
	Close() error
}

type Mailer interface {
	SendRequestFulfilled(ctx context.Context, req *domain.CineRequest) error
}
