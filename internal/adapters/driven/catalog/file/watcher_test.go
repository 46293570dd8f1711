package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher_ReportsChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonCatalog), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 10)
	done := make(chan error, 1)

	w := NewWatcher(path, 20*time.Millisecond)
	go func() {
		done <- w.Watch(ctx, func() { changes <- struct{}{} })
	}()

	// Keep writing until the watcher is registered and reports.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
loop:
	for {
		select {
		case <-changes:
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte(jsonCatalog), 0600))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonCatalog), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)

	w := NewWatcher(path, 10*time.Millisecond)
	go func() {
		done <- w.Watch(ctx, func() { calls.Add(1) })
	}()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0600))
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, calls.Load())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	w := NewWatcher(filepath.Join(t.TempDir(), "nope", "catalog.json"), 0)

	err := w.Watch(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewWatcher_DefaultDebounce(t *testing.T) {
	w := NewWatcher("catalog.json", 0)
	assert.Equal(t, DefaultDebounce, w.debounce)
}
