package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Strob0t/clientdesk/internal/port/database"
)

// Ensure Store implements database.Store at compile time.
var _ database.Store = (*Store)(nil)

// Store implements database.Store using PostgreSQL. Every method issues one
// parameterized statement.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
