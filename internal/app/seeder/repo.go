// Package seeder applies database migrations and imports curated lexicon
// data into PostgreSQL.
package seeder

import (
	"context"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
)

// LexiconRepo is the repository contract consumed by the pipeline.
// Implemented by the postgres lexicon repository.
type LexiconRepo interface {
	Upsert(ctx context.Context, offset int, entries []domain.LexiconEntry) (int, error)
	Count(ctx context.Context) (int, error)
}

// TxManager runs fn inside a single database transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// MigrateFunc applies pending schema migrations and returns their versions.
type MigrateFunc func(ctx context.Context) ([]int64, error)
