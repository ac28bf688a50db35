package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "solgo.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(""), 0o644))

	changed := make(chan string, 8)
	w, err := New(func(path string) { changed <- path })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch([]string{cfg}))
	require.NoError(t, os.WriteFile(cfg, []byte("[compiler.solc]\n"), 0o644))

	select {
	case path := <-changed:
		require.Equal(t, cfg, path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestWatcherIgnoresUnwatchedSiblings(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "solgo.toml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(cfg, []byte(""), 0o644))

	changed := make(chan string, 8)
	w, err := New(func(path string) { changed <- path })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch([]string{cfg}))
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))

	select {
	case path := <-changed:
		t.Fatalf("unexpected notification for %s", path)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherSeesRecreatedFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "solgo.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(""), 0o644))

	changed := make(chan string, 8)
	w, err := New(func(path string) { changed <- path })
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch([]string{cfg}))
	require.NoError(t, os.Remove(cfg))
	require.NoError(t, os.WriteFile(cfg, []byte("[compiler.solc]\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}
