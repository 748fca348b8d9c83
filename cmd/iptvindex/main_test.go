package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/voyagen/iptvindex/internal/config"
)

func clearStoreEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CHANNEL_STORE", "CHANNELS_FILE", "DATABASE_URL", "REDIS_URL", "SERVER_PORT"} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func TestRun_StopsOnCancel(t *testing.T) {
	clearStoreEnv(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, "", "0") }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRun_ConfigError(t *testing.T) {
	clearStoreEnv(t)
	t.Setenv("CHANNEL_STORE", "postgres")

	err := run(context.Background(), "", "0")
	if !errors.Is(err, config.ErrMissingDatabaseURL) {
		t.Fatalf("expected ErrMissingDatabaseURL, got %v", err)
	}
}

func TestRun_ConfigFileNotFound(t *testing.T) {
	clearStoreEnv(t)
	if err := run(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
