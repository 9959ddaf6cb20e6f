// Package metadata stores small string values under fixed keys in the local
// SQLite database. It is the client's equivalent of browser localStorage.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// InTx runs fn against a repository bound to a single transaction.
	InTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
