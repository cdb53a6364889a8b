package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Repository backed by the given connection pool.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new project record and sets its ID.
func (r *PostgresRepository) Create(ctx context.Context, p *Project) error {
	query := `
		INSERT INTO projects (title, description)
		VALUES ($1, $2)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, p.Title, p.Description).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting project: %w", err)
	}

	return nil
}

// GetByID retrieves a single project by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Project, error) {
	query := `
		SELECT id, title, description
		FROM projects
		WHERE id = $1`

	var p Project
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Title, &p.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying project: %w", err)
	}

	return &p, nil
}

// List retrieves all projects in insertion order.
func (r *PostgresRepository) List(ctx context.Context) ([]Project, error) {
	query := `
		SELECT id, title, description
		FROM projects
		ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project rows: %w", err)
	}

	return projects, nil
}

// Update overwrites title and description of the project with the given id.
func (r *PostgresRepository) Update(ctx context.Context, id int64, fields UpdateFields) (*Project, error) {
	query := `
		UPDATE projects
		SET title = $2, description = $3
		WHERE id = $1
		RETURNING id, title, description`

	var p Project
	err := r.pool.QueryRow(ctx, query, id, fields.Title, fields.Description).Scan(&p.ID, &p.Title, &p.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return &p, nil
}

// Delete removes the project with the given id.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
