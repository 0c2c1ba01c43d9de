package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for watcher:
//
// 1. A write to a monitored extension fires the callback after the
//    debounce with the changed path.
// 2. Rapid successive writes collapse into one callback.
// 3. Files with unmonitored extensions never fire.
// 4. Stop is idempotent and safe before Start.

func collectChanges(t *testing.T, root string, debounce time.Duration) (chan []string, Watcher) {
	t.Helper()
	w, err := New(root, []string{".cs"}, debounce)
	require.NoError(t, err)

	changes := make(chan []string, 10)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx, func(files []string) {
		changes <- files
	}))
	t.Cleanup(func() { w.Stop() })
	return changes, w
}

func awaitChanges(t *testing.T, changes chan []string) []string {
	t.Helper()
	select {
	case files := <-changes:
		return files
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher callback")
		return nil
	}
}

func TestWatcherFiresOnWrite(t *testing.T) {
	root := t.TempDir()
	changes, _ := collectChanges(t, root, 50*time.Millisecond)

	path := filepath.Join(root, "Order.cs")
	require.NoError(t, os.WriteFile(path, []byte("class Order { }"), 0644))

	files := awaitChanges(t, changes)
	assert.Contains(t, files, path)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	root := t.TempDir()
	changes, _ := collectChanges(t, root, 200*time.Millisecond)

	a := filepath.Join(root, "A.cs")
	b := filepath.Join(root, "B.cs")
	require.NoError(t, os.WriteFile(a, []byte("class A { }"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("class B { }"), 0644))

	files := awaitChanges(t, changes)
	assert.Contains(t, files, a)
	assert.Contains(t, files, b)

	// No second callback arrives for the same burst.
	select {
	case extra := <-changes:
		t.Fatalf("unexpected second callback: %v", extra)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	root := t.TempDir()
	changes, _ := collectChanges(t, root, 50*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644))

	select {
	case files := <-changes:
		t.Fatalf("unexpected callback for ignored extension: %v", files)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), []string{".cs"}, 50*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
