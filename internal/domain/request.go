package domain

import "time"

// CineRequest is a viewer's request for a title that is not in the catalog yet.
type CineRequest struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Message   string    `db:"message" json:"message"`
	Solved    bool      `db:"solved" json:"solved"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
