package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestFileWatcher_DebouncedReload(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "carriers.csv")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	changed := make(chan string, 4)
	w, err := New(path, 100*time.Millisecond, func(p string) { changed <- p }, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))
	}

	select {
	case got := <-changed:
		assert.Equal(t, w.Path(), got)
	case <-time.After(3 * time.Second):
		t.Fatal("handler was not called")
	}

	// the burst of writes collapses into one call
	select {
	case <-changed:
		t.Fatal("handler called more than once for one burst")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "carriers.xlsx")
	w, err := New(path, time.Millisecond, nil, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()))
	w.Stop()
	w.Stop()
}

func TestFileWatcher_ContextCancelEndsLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "carriers.csv")
	w, err := New(path, time.Millisecond, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Stop()
}

func TestNew_MissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "nope", "carriers.csv"), time.Millisecond, nil, nil)
	require.NoError(t, err)
	defer w.Stop()
	assert.Error(t, w.Start(context.Background()))
}
