package storage

import (
	"fmt"
	"os"
	"time"
)

const (
	lockTimeout = 10 * time.Second
	lockRetry   = 50 * time.Millisecond
)

// Lock is a directory-based lock shared between processes. Creating the
// directory acquires it; removing it releases it.
type Lock struct {
	dir     string
	timeout time.Duration
}

// NewLock creates a lock at the given directory path.
func NewLock(dir string) *Lock {
	return &Lock{dir: dir, timeout: lockTimeout}
}

// Acquire creates the lock directory, retrying while another holder has it.
func (l *Lock) Acquire() error {
	start := time.Now()
	for {
		err := os.Mkdir(l.dir, FileModeDir)
		if err == nil {
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("create lock directory: %w", err)
		}
		if time.Since(start) > l.timeout {
			return fmt.Errorf("lock %s held for more than %s", l.dir, l.timeout)
		}
		time.Sleep(lockRetry)
	}
}

// Release removes the lock directory.
func (l *Lock) Release() error {
	return os.Remove(l.dir)
}

// WithLock executes fn while holding the lock at dir.
func WithLock(dir string, fn func() error) error {
	lock := NewLock(dir)
	if err := lock.Acquire(); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = lock.Release() }()
	return fn()
}
