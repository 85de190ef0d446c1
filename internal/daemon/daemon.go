package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"shelf/internal/catalog"
	"shelf/internal/config"
	"shelf/internal/logging"
	"shelf/internal/server"
)

// Daemon ties the catalog store and API server into a single lifecycle and
// enforces single-instance execution through a lock file.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *catalog.Store
	server *server.Server

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// Status reports daemon runtime information.
type Status struct {
	Running      bool
	BindAddress  string
	DatabasePath string
	LockFilePath string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *catalog.Store, srv *server.Server, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || srv == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, server, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "shelfd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logger.With(logging.FieldComponent, "daemon"),
		store:    store,
		server:   srv,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock and brings up the API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another shelf daemon instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.server.Start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start api server: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("shelf daemon started",
		slog.String("addr", d.server.Addr()),
		slog.String("lock", d.lockPath))
	return nil
}

// Stop shuts down the API server and releases the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", slog.String("error", err.Error()))
	}
	d.ctx = nil
	d.running.Store(false)
	d.logger.Info("shelf daemon stopped")
}

// Close stops the daemon and closes the catalog store.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status reports the daemon's current runtime state.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		BindAddress:  d.server.Addr(),
		DatabasePath: d.cfg.DatabasePath(),
		LockFilePath: d.lockPath,
	}
}
