package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherFiresAfterChange(t *testing.T) {
	if testing.Short() {
		t.Skip("debounce makes this test slow")
	}

	root := t.TempDir()
	fired := make(chan struct{}, 1)

	w, err := New(root, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(root, "doc.txt"), []byte("hello"), 0o644))

	select {
	case <-fired:
	case <-time.After(debounce + 3*time.Second):
		t.Fatal("watcher never fired after a file change")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	if testing.Short() {
		t.Skip("debounce makes this test slow")
	}

	root := t.TempDir()
	fired := make(chan struct{}, 16)

	w, err := New(root, func() { fired <- struct{}{} })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// A burst of writes inside the debounce window collapses to one callback.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "doc.txt"), []byte{byte(i)}, 0o644))
		time.Sleep(50 * time.Millisecond)
	}

	select {
	case <-fired:
	case <-time.After(debounce + 3*time.Second):
		t.Fatal("watcher never fired")
	}

	select {
	case <-fired:
		t.Fatal("burst produced more than one callback")
	case <-time.After(debounce + time.Second):
	}
}

func TestWatcherStopIsIdempotentlySafe(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, func() {})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	assert.NotPanics(t, func() { w.Stop() })
}
