package main

import (
	"path/filepath"

	"github.com/dawsen1208/shelfd/internal/config"
	"github.com/dawsen1208/shelfd/internal/notify"
	"github.com/dawsen1208/shelfd/internal/prefs"
	"github.com/dawsen1208/shelfd/internal/store"
)

// state bundles the durable stores shared by every subcommand.
type state struct {
	basePath string
	lock     *store.FileLock
	prefs    *prefs.Store
	engine   *notify.Engine
}

func openState(cfg *config.Config) (*state, error) {
	basePath, err := store.EnsureStateDir(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	lockTimeout, err := config.DurationOrDefault(cfg.Store.LockTimeout, config.DefaultStoreLockTimeout)
	if err != nil {
		return nil, err
	}
	lockRetry, err := config.DurationOrDefault(cfg.Store.LockRetry, config.DefaultStoreLockRetry)
	if err != nil {
		return nil, err
	}
	lockMaxRetry := cfg.Store.LockMaxRetry
	if lockMaxRetry <= 0 {
		lockMaxRetry = config.DefaultStoreLockMaxRetry
	}

	lock := store.NewFileLock(basePath, &store.FileLockConfig{
		LockTimeout:  lockTimeout,
		LockRetry:    lockRetry,
		LockMaxRetry: lockMaxRetry,
	})

	prefStore, err := prefs.NewStore(basePath, lock)
	if err != nil {
		return nil, err
	}

	known, err := notify.NewKnownSet(filepath.Join(basePath, store.KnownIDsFile), lock)
	if err != nil {
		return nil, err
	}

	log, err := notify.NewLog(filepath.Join(basePath, store.NotificationsFile), lock, cfg.Notify.LogCap)
	if err != nil {
		return nil, err
	}

	return &state{
		basePath: basePath,
		lock:     lock,
		prefs:    prefStore,
		engine:   notify.NewEngine(known, log),
	}, nil
}
