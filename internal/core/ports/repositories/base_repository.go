package repositories

import (
	"context"
	"time"
)

// TxRunner runs fn inside one database transaction. The provider handed to fn
// is bound to that transaction; returning an error rolls everything back.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos RepositoryProvider) error) error
}

// Locker is a keyed mutual-exclusion primitive with a lease.
// release must be called once the caller is done when ok is true.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}
