package project

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no project matches the given id.
var ErrNotFound = errors.New("project not found")

// ErrDuplicate is returned when a project with the same title or description already exists.
var ErrDuplicate = errors.New("project title or description already exists")

// Repository provides CRUD operations on the projects table.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, id int64, fields UpdateFields) (*Project, error)
	Delete(ctx context.Context, id int64) error
}
