// Package storage opens the relational backend that holds the projects and
// teammates tables and hands out the per-entity repositories bound to it.
package storage

import (
	"context"
	"strings"

	"github.com/daap14/crewdesk/internal/project"
	"github.com/daap14/crewdesk/internal/teammate"
)

// Driver names a supported storage backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Store is an opened backend together with the repositories that use it.
type Store struct {
	driver    Driver
	projects  project.Repository
	teammates teammate.Repository
	ping      func(ctx context.Context) error
	close     func() error
}

// Open connects to the backend named by databaseURL, verifies the connection
// and creates the tables if they do not exist yet.
//
// postgres:// and postgresql:// URLs select PostgreSQL. sqlite://<path>,
// file: URIs and bare paths select SQLite; ":memory:" gives a private
// in-memory database.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	switch DriverFor(databaseURL) {
	case DriverPostgres:
		return openPostgres(ctx, databaseURL)
	default:
		return openSQLite(ctx, sqlitePath(databaseURL))
	}
}

// DriverFor reports which backend Open would select for databaseURL.
func DriverFor(databaseURL string) Driver {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

func sqlitePath(databaseURL string) string {
	return strings.TrimPrefix(databaseURL, "sqlite://")
}

// Driver returns the backend in use.
func (s *Store) Driver() Driver { return s.driver }

// Projects returns the project repository.
func (s *Store) Projects() project.Repository { return s.projects }

// Teammates returns the teammate repository.
func (s *Store) Teammates() teammate.Repository { return s.teammates }

// Ping verifies the backend connection is alive.
func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

// Close releases the underlying connections.
func (s *Store) Close() error { return s.close() }
