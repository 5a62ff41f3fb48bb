package rider

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("rider not found")

type Repository interface {
	GetByID(ctx context.Context, id string) (*Rider, error)
	ListBySeason(ctx context.Context, season int) ([]Rider, error)
	ListByCategory(ctx context.Context, season int, category Category) ([]Rider, error)
	// Upsert inserts the rider or refreshes an existing entry with the
	// same ID, keeping the original creation time.
	Upsert(ctx context.Context, r *Rider) error
}
