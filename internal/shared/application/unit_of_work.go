package application

import (
	"context"
	"errors"
	"sync"
)

// UnitOfWork brackets a read-modify-write so it is applied as one step.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWorkFunc is a function that executes within a unit of work.
type UnitOfWorkFunc func(ctx context.Context) error

// WithUnitOfWork executes the given function within a unit of work.
func WithUnitOfWork(ctx context.Context, uow UnitOfWork, fn UnitOfWorkFunc) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(txCtx); err != nil {
		_ = uow.Rollback(txCtx)
		return err
	}

	return uow.Commit(txCtx)
}

type lockKey struct{}

type lockInfo struct {
	owner *LockingUnitOfWork
	owned bool
}

// LockingUnitOfWork serializes units of work behind one mutex. Every handler
// sharing an instance gets exclusive access to the store for the duration of
// its unit. A Begin on a context that already holds the lock joins it.
type LockingUnitOfWork struct {
	mu sync.Mutex
}

// NewLockingUnitOfWork creates an unlocked unit of work.
func NewLockingUnitOfWork() *LockingUnitOfWork {
	return &LockingUnitOfWork{}
}

// Begin acquires the lock unless ctx already holds it.
func (u *LockingUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if info, ok := ctx.Value(lockKey{}).(lockInfo); ok && info.owner == u {
		return context.WithValue(ctx, lockKey{}, lockInfo{owner: u, owned: false}), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u.mu.Lock()
	return context.WithValue(ctx, lockKey{}, lockInfo{owner: u, owned: true}), nil
}

// Commit releases the lock if this unit acquired it.
func (u *LockingUnitOfWork) Commit(ctx context.Context) error {
	return u.release(ctx)
}

// Rollback releases the lock if this unit acquired it. State changes already
// applied in memory are not undone; handlers validate before mutating.
func (u *LockingUnitOfWork) Rollback(ctx context.Context) error {
	return u.release(ctx)
}

func (u *LockingUnitOfWork) release(ctx context.Context) error {
	info, ok := ctx.Value(lockKey{}).(lockInfo)
	if !ok || info.owner != u {
		return errors.New("no unit of work in context")
	}
	if info.owned {
		u.mu.Unlock()
	}
	return nil
}
