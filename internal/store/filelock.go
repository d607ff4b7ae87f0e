package store

import (
	"fmt"
	"time"

	"github.com/dawsen1208/shelfd/internal/config"

	"github.com/gofrs/flock"
)

// FileLock guards read-modify-write cycles against other processes
// sharing the same state directory. Unlike a single-instance lock it is
// held only for the duration of one write, so concurrent instances
// interleave instead of excluding each other.
type FileLock struct {
	fileLock *flock.Flock
	lockPath string

	timeout  time.Duration
	retry    time.Duration
	maxRetry int
}

type FileLockConfig struct {
	LockTimeout  time.Duration
	LockRetry    time.Duration
	LockMaxRetry int
}

func DefaultFileLockConfig() *FileLockConfig {
	lockTimeout, _ := config.DurationOrDefault("", config.DefaultStoreLockTimeout)
	lockRetry, _ := config.DurationOrDefault("", config.DefaultStoreLockRetry)

	return &FileLockConfig{
		LockTimeout:  lockTimeout,
		LockRetry:    lockRetry,
		LockMaxRetry: config.DefaultStoreLockMaxRetry,
	}
}

func NewFileLock(basePath string, cfg *FileLockConfig) *FileLock {
	if cfg == nil {
		cfg = DefaultFileLockConfig()
	}

	lockPath := LockPath(basePath)
	return &FileLock{
		fileLock: flock.New(lockPath),
		lockPath: lockPath,
		timeout:  cfg.LockTimeout,
		retry:    cfg.LockRetry,
		maxRetry: cfg.LockMaxRetry,
	}
}

// WithLock runs fn while holding the lock. The acquire retries until
// maxRetry attempts or timeout elapse, whichever comes first.
func (fl *FileLock) WithLock(fn func() error) error {
	if err := fl.acquireWithRetry(); err != nil {
		return err
	}
	defer fl.fileLock.Unlock() //nolint:errcheck

	return fn()
}

func (fl *FileLock) acquireWithRetry() error {
	deadline := time.Now().Add(fl.timeout)

	for i := 0; i < fl.maxRetry; i++ {
		locked, err := fl.fileLock.TryLock()
		if err != nil {
			return fmt.Errorf("failed to attempt lock: %w", err)
		}
		if locked {
			return nil
		}

		if time.Now().After(deadline) {
			break
		}
		if i < fl.maxRetry-1 {
			time.Sleep(fl.retry)
		}
	}

	return fmt.Errorf("state dir is locked by another instance (timeout after %v): %s",
		fl.timeout, fl.lockPath)
}
