package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// SQLiteRepository implements Repository on a SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new Repository backed by the given SQLite handle.
func NewSQLiteRepository(db *sql.DB) Repository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new project record and sets its ID.
func (r *SQLiteRepository) Create(ctx context.Context, p *Project) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (title, description) VALUES (?, ?)`,
		p.Title, p.Description)
	if err != nil {
		if isSQLiteUnique(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading project id: %w", err)
	}
	p.ID = id

	return nil
}

// GetByID retrieves a single project by id.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Project, error) {
	var p Project
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Title, &p.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying project: %w", err)
	}

	return &p, nil
}

// List retrieves all projects in insertion order.
func (r *SQLiteRepository) List(ctx context.Context) ([]Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, description FROM projects ORDER BY id ASC`)
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
func (r *SQLiteRepository) Update(ctx context.Context, id int64, fields UpdateFields) (*Project, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ? WHERE id = ?`,
		fields.Title, fields.Description, id)
	if err != nil {
		if isSQLiteUnique(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	return &Project{ID: id, Title: fields.Title, Description: fields.Description}, nil
}

// Delete removes the project with the given id.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func isSQLiteUnique(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
