// Package storetx provides the transactional boundary every mutating workflow
// operation runs inside. The in-memory implementation serializes but cannot
// roll back, so callers must order effects: validate all preconditions, then
// run any fallible effect (the audit append), then perform the store writes,
// which cannot fail once validated. The shared lock guarantees no two
// operations interleave between the validation and the writes.
package storetx

import (
	"context"
	"sync"
	"time"

	dErrors "allograft/pkg/domain-errors"
)

// StoreTx provides a transactional boundary for workflow mutations.
// Implementations may wrap a database transaction or an in-memory lock.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const defaultTxTimeout = 5 * time.Second

// InMemory serializes mutations for in-memory stores. A single instance is
// shared by all services so cross-registry operations (matching, surgery)
// observe a consistent snapshot.
type InMemory struct {
	mu      sync.Mutex
	timeout time.Duration
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (t *InMemory) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx)
}
