package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherInitialScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.pdf"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{
		Roots:       []string{dir},
		InitialScan: true,
	}, nil)
	require.NoError(t, err)

	select {
	case path := <-events:
		assert.Equal(t, "existing.pdf", filepath.Base(path))
	case <-time.After(2 * time.Second):
		t.Fatal("initial scan did not emit the existing pdf")
	}
}

func TestWatcherEmitsNewFile(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}}, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "fresh.csv"), []byte("a,b\n1,2\n"), 0o644))

	select {
	case path := <-events:
		assert.Equal(t, "fresh.csv", filepath.Base(path))
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not emit the new csv")
	}
}

func TestWatcherIgnoresDisallowedExtension(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}}, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.tmp"), []byte("x"), 0o644))

	select {
	case path := <-events:
		t.Fatalf("unexpected event for %s", path)
	case <-time.After(300 * time.Millisecond):
	}
}

// A burst of creates against a tiny debounce window exercises the timer path
// under the race detector and across shutdown: every file must come out and
// the event channel must close cleanly.
func TestWatcherDebounceBurst(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{dir},
		Debounce: time.Millisecond,
	}, nil)
	require.NoError(t, err)

	const n = 100
	want := map[string]struct{}{}
	for i := 0; i < n; i++ {
		name := filepath.Join(dir, fmt.Sprintf("doc%03d.pdf", i))
		want[name] = struct{}{}
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o644))
	}

	got := map[string]struct{}{}
	deadline := time.After(5 * time.Second)
	for len(got) < n {
		select {
		case path := <-events:
			got[path] = struct{}{}
		case <-deadline:
			t.Fatalf("received %d of %d events before timeout", len(got), n)
		}
	}
	assert.Equal(t, want, got)

	cancel()
	closeBy := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-events:
			if !open {
				return
			}
		case <-closeBy:
			t.Fatal("event channel did not close after cancel")
		}
	}
}

func TestWatcherRequiresRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{}, nil)
	assert.Error(t, err)
}
