package entity

import (
	"context"
	"time"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (Entity, bool, error)
	// ListLinked returns every entity with a non-nil external player
	// reference, ordered by id for deterministic bulk passes.
	ListLinked(ctx context.Context) ([]Entity, error)
	SetExternalRef(ctx context.Context, id string, ref int64) error
	ClearExternalRef(ctx context.Context, id string) error
	SetLastSyncAt(ctx context.Context, id string, at time.Time) error
}
