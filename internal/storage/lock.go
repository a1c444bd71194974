package storage

import (
	"context"
	"fmt"
	"os"
	"time"
)

const (
	lockTimeout = 5 * time.Second
	lockRetry   = 50 * time.Millisecond
	// locks older than this are assumed abandoned by a crashed process
	lockStaleAfter = 30 * time.Second
)

// Lock guards a file against concurrent writers from other processes by
// creating a sibling directory.
type Lock struct {
	dir string
}

// NewLock returns a lock backed by the directory dir.
func NewLock(dir string) *Lock {
	return &Lock{dir: dir}
}

// Acquire waits until the lock directory can be created, the context is
// done, or lockTimeout passes.
func (l *Lock) Acquire(ctx context.Context) error {
	deadline := time.Now().Add(lockTimeout)
	ticker := time.NewTicker(lockRetry)
	defer ticker.Stop()

	for {
		err := os.Mkdir(l.dir, FileModeDir)
		switch {
		case err == nil:
			return nil
		case !os.IsExist(err):
			return fmt.Errorf("create lock directory: %w", err)
		case l.stale():
			_ = os.Remove(l.dir)
			continue
		case time.Now().After(deadline):
			return fmt.Errorf("lock %s still held after %s", l.dir, lockTimeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *Lock) stale() bool {
	info, err := os.Stat(l.dir)
	return err == nil && time.Since(info.ModTime()) > lockStaleAfter
}

// Release removes the lock directory.
func (l *Lock) Release() error {
	return os.Remove(l.dir)
}

// WithLock runs fn while holding the lock at dir.
func WithLock(ctx context.Context, dir string, fn func() error) error {
	lock := NewLock(dir)
	if err := lock.Acquire(ctx); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = lock.Release() }()
	return fn()
}
