package mutationlog

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Reader when a mutation has no entries.
var ErrNotFound = errors.New("mutationlog: mutation not found")

// Repository persists journal entries. The table is append-only.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
}

// Reader looks entries up again, for the status endpoint and tests.
type Reader interface {
	GetLatest(ctx context.Context, mutationID string) (*Entry, error)
	History(ctx context.Context, mutationID string) ([]Entry, error)
}
