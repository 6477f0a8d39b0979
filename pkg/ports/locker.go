package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker defines the interface for distributed concurrency control.
// The HTTP service takes the lock of a document id around read-modify-write
// sequences so that replicas sharing a store do not interleave.
type DistributedLocker interface {
	// Lock blocks until the lock for key is acquired or ctx is done. The
	// lock expires after ttl if never released. The returned UnlockFunc
	// MUST be called to release it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
