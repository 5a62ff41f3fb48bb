package race

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("race not found")

type Repository interface {
	GetByID(ctx context.Context, id string) (*Race, error)
	// ListBySeason returns the calendar in round order.
	ListBySeason(ctx context.Context, season int) ([]Race, error)
	Upsert(ctx context.Context, r *Race) error
}
