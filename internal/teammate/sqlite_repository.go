package teammate

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

func (r *SQLiteRepository) Create(ctx context.Context, t *Teammate) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO teammates (name, function) VALUES (?, ?)`,
		t.Name, t.Function)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting teammate: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading teammate id: %w", err)
	}
	t.ID = id

	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Teammate, error) {
	var t Teammate
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, function FROM teammates WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Function)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying teammate: %w", err)
	}

	return &t, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Teammate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, function FROM teammates ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing teammates: %w", err)
	}
	defer rows.Close()

	teammates := []Teammate{}
	for rows.Next() {
		var t Teammate
		if err := rows.Scan(&t.ID, &t.Name, &t.Function); err != nil {
			return nil, fmt.Errorf("scanning teammate row: %w", err)
		}
		teammates = append(teammates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teammate rows: %w", err)
	}

	return teammates, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teammates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting teammate: %w", err)
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
