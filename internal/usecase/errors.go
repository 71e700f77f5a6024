package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrNotLinked means the entity carries no external player reference;
	// retrying is pointless until the owner links one.
	ErrNotLinked = errors.New("entity has no external player reference")
	// ErrSyncInProgress is a dedup rejection, not a queue: the caller may
	// retry once the active refresh finishes.
	ErrSyncInProgress = errors.New("refresh already in progress")
	ErrBulkRunActive  = errors.New("bulk run already active")
	// ErrMalformedBlock marks a raw block missing its league or team
	// identifier; the block is skipped and the sync continues.
	ErrMalformedBlock = errors.New("malformed statistic block")
	ErrNoRemoteData   = errors.New("remote source returned no statistic blocks")
)
