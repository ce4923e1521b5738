package codebase

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessPendingDebounces(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "A.java")
	require.NoError(t, os.WriteFile(path, []byte("class A {\n    void before() {\n    }\n}\n"), 0o644))

	c := New(Options{})
	require.NoError(t, c.SetRoot(root))
	require.NoError(t, c.ScanFile(path))

	w, err := NewFileWatcher(c, root, nil, time.Second)
	require.NoError(t, err)
	defer w.Stop()

	var got []string
	w.SetCallback(func(paths []string) { got = paths })

	require.NoError(t, os.WriteFile(path, []byte("class A {\n    void after() {\n    }\n}\n"), 0o644))
	now := time.Now()
	w.pending[path] = now

	w.processPending(now.Add(500 * time.Millisecond))
	assert.Nil(t, got)
	assert.Equal(t, "before", c.GetFile(path).Declarations[0].Name)

	w.processPending(now.Add(time.Second))
	assert.Equal(t, []string{path}, got)
	assert.Equal(t, "after", c.GetFile(path).Declarations[0].Name)
	assert.Empty(t, w.pending)
}

func TestWatcherPicksUpChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))

	c := New(Options{})
	require.NoError(t, c.SetRoot(root))
	w, err := NewFileWatcher(c, root, nil, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	var changed []string
	w.SetCallback(func(paths []string) {
		mu.Lock()
		defer mu.Unlock()
		changed = append(changed, paths...)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.Eventually(t, func() bool { return len(w.WatchedDirs()) == 2 }, 5*time.Second, 10*time.Millisecond)

	target := filepath.Join(root, "pkg", "B.java")
	require.NoError(t, os.WriteFile(target, []byte("class B {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changed) > 0
	}, 5*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, changed, target)
	assert.NotContains(t, changed, filepath.Join(root, "notes.txt"))
}
