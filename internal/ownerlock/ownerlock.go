// Package ownerlock serializes mutations per owner. Two mutations for the same
// owner never overlap; mutations for different owners proceed independently.
package ownerlock

import (
	"context"
	"errors"
)

// ErrLockLost is returned by a distributed Unlock when the lease expired and
// another process took the lock in the meantime.
var ErrLockLost = errors.New("owner lock lease was lost before release")

// Unlock releases a held owner lock. It must be called exactly once.
type Unlock func() error

// Locker acquires the exclusive mutation lock of one owner, blocking until
// it is free or ctx is done.
type Locker interface {
	Lock(ctx context.Context, ownerID string) (Unlock, error)
}
