package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"cinecraze/internal/domain"
)

type RequestStore struct {
	db *sqlx.DB
}

func NewRequestStore(db *sqlx.DB) *RequestStore {
	return &RequestStore{db: db}
}

func (s *RequestStore) Create(ctx context.Context, req *domain.CineRequest) error {
	query := `
		INSERT INTO cine_requests (name, email, message, solved)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		req.Name,
		req.Email,
		req.Message,
		req.Solved,
	).Scan(&req.ID, &req.CreatedAt)
}

func (s *RequestStore) GetByID(ctx context.Context, id int64) (*domain.CineRequest, error) {
	query := `
		SELECT id, name, email, message, solved, created_at
		FROM cine_requests
		WHERE id = $1`

	var req domain.CineRequest
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "request"}
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *RequestStore) List(ctx context.Context) ([]domain.CineRequest, error) {
	query := `
		SELECT id, name, email, message, solved, created_at
		FROM cine_requests
		ORDER BY created_at DESC`

	var requests []domain.CineRequest
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &requests, query); err != nil {
		return nil, err
	}
	return requests, nil
}

// SetSolved persists the solved flag. The mark-solved flow commits the flag
// and its rollback as two independent writes, so this is deliberately not
// transactional with anything else.
func (s *RequestStore) SetSolved(ctx context.Context, id int64, solved bool) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx,
		"UPDATE cine_requests SET solved = $2 WHERE id = $1", id, solved)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.NotFoundError{Resource: "request"}
	}
	return nil
}

func (s *RequestStore) Delete(ctx context.Context, id int64) error {
	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, "DELETE FROM cine_requests WHERE id = $1", id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.NotFoundError{Resource: "request"}
	}
	return nil
}
