package teammate

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

// Create inserts a new teammate record and sets its ID.
func (r *PostgresRepository) Create(ctx context.Context, t *Teammate) error {
	query := `
		INSERT INTO teammates (name, function)
		VALUES ($1, $2)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, t.Name, t.Function).Scan(&t.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return fmt.Errorf("inserting teammate: %w", err)
	}

	return nil
}

// GetByID retrieves a single teammate by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Teammate, error) {
	query := `
		SELECT id, name, function
		FROM teammates
		WHERE id = $1`

	var t Teammate
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Function)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying teammate: %w", err)
	}

	return &t, nil
}

// List retrieves all teammates in insertion order.
func (r *PostgresRepository) List(ctx context.Context) ([]Teammate, error) {
	query := `
		SELECT id, name, function
		FROM teammates
		ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query)
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

// Delete removes the teammate with the given id.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM teammates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting teammate: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
