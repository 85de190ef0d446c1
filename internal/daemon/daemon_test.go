package daemon_test

import (
	"context"
	"testing"

	"shelf/internal/daemon"
	"shelf/internal/logging"
	"shelf/internal/server"
	"shelf/internal/testsupport"
)

func TestDaemonStartStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	srv, err := server.New(cfg, store, nil, nil, nil)
	if err != nil {
		t.Fatalf("server.New failed: %v", err)
	}

	d, err := daemon.New(cfg, store, srv, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New failed: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	ctx := context.Background()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	status := d.Status()
	if !status.Running {
		t.Fatal("expected running status")
	}
	if status.BindAddress == "" {
		t.Error("expected a bound address")
	}

	if err := d.Start(ctx); err == nil {
		t.Fatal("expected error on double start")
	}

	d.Stop()
	if d.Status().Running {
		t.Fatal("expected stopped status")
	}
}

func TestDaemonLockExcludesSecondInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	first, err := server.New(cfg, store, nil, nil, nil)
	if err != nil {
		t.Fatalf("server.New failed: %v", err)
	}
	d1, err := daemon.New(cfg, store, first, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New failed: %v", err)
	}
	t.Cleanup(func() { d1.Close() })
	if err := d1.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	t.Cleanup(d1.Stop)

	second, err := server.New(cfg, store, nil, nil, nil)
	if err != nil {
		t.Fatalf("server.New failed: %v", err)
	}
	d2, err := daemon.New(cfg, store, second, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New failed: %v", err)
	}
	if err := d2.Start(context.Background()); err == nil {
		d2.Stop()
		t.Fatal("expected second instance to fail acquiring the lock")
	}
}
