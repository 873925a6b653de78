// Package metadata is a small key/value repository over the local SQLite
// database. The credential store keeps its slots here.
package metadata

import (
	"context"
	"database/sql"
)

// Querier is what SQLiteRepository runs its statements on. *sql.DB binds the
// repository to the database, *sql.Tx to one transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository stores opaque byte values by key. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
