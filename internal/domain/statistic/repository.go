package statistic

import "context"

type Repository interface {
	// Upsert writes the record identified by its key, creating it on first
	// sight and fully replacing the mapped fields on subsequent calls.
	Upsert(ctx context.Context, rec Record) error
	GetByKey(ctx context.Context, key Key) (Record, bool, error)
	// ListByOwner returns every record for one owner across all seasons and
	// competitions, newest season first.
	ListByOwner(ctx context.Context, ownerID string) ([]Record, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}
