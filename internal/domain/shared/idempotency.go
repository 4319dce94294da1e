package shared

import (
	"context"
	"time"
)

// IdempotencyStore tracks in-flight or recently processed operation keys so
// duplicate triggers collapse into a single execution.
type IdempotencyStore interface {
	// MarkProcessed marks a key with a TTL. Returns true if the key was
	// newly marked, false if it is already held.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key is currently held
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release drops a key before its TTL expires, re-allowing the operation
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
