package migrate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/junitmig/internal/cache"
	"github.com/gnoswap-labs/junitmig/internal/fixer"
	"github.com/gnoswap-labs/junitmig/scanner"
)

const defaultSettle = 100 * time.Millisecond

// Watcher dry-runs the migration of files under a set of directories each
// time one of them is written.
type Watcher struct {
	engine   Engine
	logger   *zap.Logger
	opts     Options
	cache    *cache.Cache
	watcher  *fsnotify.Watcher
	settle   time.Duration
	onReport func(*fixer.Report)
}

// NewWatcher registers dirs and their subdirectories, skipping the
// scanner's default excludes. Events are delivered once Watch runs.
func NewWatcher(engine Engine, logger *zap.Logger, dirs []string, opts Options) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.DryRun = true
	if opts.Logger == nil {
		opts.Logger = logger
	}

	reports, err := cache.New("")
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		engine:   engine,
		logger:   logger,
		opts:     opts,
		cache:    reports,
		watcher:  fw,
		settle:   defaultSettle,
		onReport: func(*fixer.Report) {},
	}
	for _, dir := range dirs {
		if err := w.add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	return w, nil
}

func (w *Watcher) add(root string) error {
	excluded := make(map[string]bool, len(scanner.DefaultExcludes))
	for _, name := range scanner.DefaultExcludes {
		excluded[name] = true
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && excluded[d.Name()] {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// addCreatedDir starts watching path if it is a new directory outside the
// default excludes.
func (w *Watcher) addCreatedDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || slices.Contains(scanner.DefaultExcludes, filepath.Base(path)) {
		return
	}
	if err := w.add(path); err != nil {
		w.logger.Error("error adding directory to watcher", zap.String("dir", path), zap.Error(err))
	}
}

// OnReport sets the callback receiving the report of every re-checked file.
func (w *Watcher) OnReport(fn func(*fixer.Report)) {
	w.onReport = fn
}

// Watch handles events until ctx is done and then closes the watcher.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	select {
	case <-ctx.Done():
		return
	case <-time.After(w.settle):
	}

	if event.Has(fsnotify.Create) {
		w.addCreatedDir(event.Name)
	}

	// Files applies the extension and ignore filters to a single path
	files, err := w.engine.Files(event.Name)
	if err != nil || len(files) == 0 {
		return
	}

	for _, file := range files {
		if _, ok := w.cache.Get(file); ok {
			continue
		}
		report, err := w.engine.Run(file, w.opts)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				w.logger.Error("Error processing file", zap.String("file", file), zap.Error(err))
			}
			continue
		}
		if err := w.cache.Set(file, report); err != nil {
			w.logger.Debug("cache update failed", zap.String("file", file), zap.Error(err))
		}
		w.reportIssues(report)
	}
}

func (w *Watcher) reportIssues(report *fixer.Report) {
	if !report.Changed && !report.Failed() {
		w.logger.Info("no pending migration", zap.String("file", report.Filename))
	} else {
		w.logger.Info("pending migration",
			zap.String("file", report.Filename),
			zap.Bool("changed", report.Changed),
			zap.Bool("failed", report.Failed()),
			zap.Int("issues", len(report.Issues)),
		)
	}
	w.onReport(report)
}
