package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSuiteFile(t *testing.T) {
	assert.True(t, isSuiteFile("a.yaml"))
	assert.True(t, isSuiteFile("a.YML"))
	assert.True(t, isSuiteFile("dir/a.cue"))
	assert.False(t, isSuiteFile("a.golden"))
	assert.False(t, isSuiteFile("a.yaml.swp"))
}

func TestWatchSuites_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeSuite(t, dir, "tiny.yaml", passingSuite)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watchSuites(ctx, []string{dir}, slog.New(slog.DiscardHandler), func() { changes.Add(1) })
	}()

	// The watcher may not be registered yet on the first write, so keep
	// touching the file until a change is observed.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(passingSuite), 0o644)
		return changes.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchSuites did not stop after cancel")
	}
}

func TestWatchSuites_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	var changes atomic.Int32
	go func() {
		for ctx.Err() == nil {
			_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
			time.Sleep(20 * time.Millisecond)
		}
	}()

	err := watchSuites(ctx, []string{dir}, slog.New(slog.DiscardHandler), func() { changes.Add(1) })
	require.NoError(t, err)
	assert.Zero(t, changes.Load())
}

func TestWatchSuites_MissingPath(t *testing.T) {
	err := watchSuites(context.Background(), []string{filepath.Join(t.TempDir(), "absent")}, slog.New(slog.DiscardHandler), func() {})
	assert.Error(t, err)
}
