package teammate

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no teammate matches the given id.
var ErrNotFound = errors.New("teammate not found")

// ErrDuplicate is returned when a teammate with the same function already exists.
var ErrDuplicate = errors.New("teammate function already exists")

// Repository provides create, read and delete operations on the teammates table.
// Teammates are never updated in place.
type Repository interface {
	Create(ctx context.Context, t *Teammate) error
	GetByID(ctx context.Context, id int64) (*Teammate, error)
	List(ctx context.Context) ([]Teammate, error)
	Delete(ctx context.Context, id int64) error
}
