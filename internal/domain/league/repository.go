package league

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("league not found")

type Repository interface {
	GetByID(ctx context.Context, id string) (*League, error)
	ListBySeason(ctx context.Context, season int) ([]League, error)
	Create(ctx context.Context, l *League) error
	Update(ctx context.Context, l *League) error
}
