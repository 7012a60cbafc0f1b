package migrate

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/gnoswap-labs/junitmig/internal/fixer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))

	w, err := NewWatcher(NewWithConfig(DefaultConfig()), nil, []string{root}, Options{})
	require.NoError(t, err)
	w.settle = time.Millisecond

	reports := make(chan *fixer.Report, 8)
	w.OnReport(func(r *fixer.Report) {
		select {
		case reports <- r:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	src := "import org.junit.Test;\n\nclass ATest {\n    @Test\n    void f() {}\n}\n"
	path := filepath.Join(root, "src", "ATest.java")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "notes.txt"), []byte("x"), 0o644))

	// the create event may be seen before the content is written
	deadline := time.After(5 * time.Second)
	for changed := false; !changed; {
		select {
		case r := <-reports:
			assert.Equal(t, path, r.Filename)
			changed = r.Changed
		case <-deadline:
			t.Fatal("no pending migration reported for the written file")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}

	// dry run: the file on disk is untouched
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src, string(content))
}

func TestWatcherAddsCreatedDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w, err := NewWatcher(NewWithConfig(DefaultConfig()), nil, []string{root}, Options{})
	require.NoError(t, err)
	w.settle = time.Millisecond

	reports := make(chan *fixer.Report, 8)
	w.OnReport(func(r *fixer.Report) {
		select {
		case reports <- r:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Watch(ctx) }()

	dir := filepath.Join(root, "later")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.Eventually(t, func() bool {
		return slices.Contains(w.watcher.WatchList(), dir)
	}, 5*time.Second, 5*time.Millisecond)

	excluded := filepath.Join(root, "build")
	require.NoError(t, os.Mkdir(excluded, 0o755))

	path := filepath.Join(dir, "BTest.java")
	src := "import org.junit.Before;\n\nclass BTest {\n    @Before\n    void f() {}\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	deadline := time.After(5 * time.Second)
	for changed := false; !changed; {
		select {
		case r := <-reports:
			assert.Equal(t, path, r.Filename)
			changed = r.Changed
		case <-deadline:
			t.Fatal("no pending migration reported for a file in the new directory")
		}
	}
	assert.NotContains(t, w.watcher.WatchList(), excluded)
}

func TestNewWatcherMissingDir(t *testing.T) {
	t.Parallel()

	_, err := NewWatcher(NewWithConfig(DefaultConfig()), nil, []string{filepath.Join(t.TempDir(), "absent")}, Options{})
	assert.ErrorContains(t, err, "error adding directory to watcher")
}
