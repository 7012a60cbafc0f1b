package migrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/gnoswap-labs/junitmig/internal/fixer"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options control a batch of migrations.
type Options struct {
	DryRun bool
	Diff   bool
	// Workers bounds the files processed at once; zero means one per CPU.
	Workers int
	// Quiet disables the progress bar even on a terminal.
	Quiet  bool
	Logger *zap.Logger
}

// FileError is a failure to migrate one file. Other files are unaffected.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("error processing %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ProcessFiles runs ProcessPath for each path in order.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	opts Options,
) ([]*fixer.Report, error) {
	var (
		reports []*fixer.Report
		errs    []error
	)
	for _, path := range paths {
		pathReports, err := ProcessPath(ctx, logger, engine, path, opts)
		reports = append(reports, pathReports...)
		if err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
		}
	}
	return reports, errors.Join(errs...)
}

// ProcessPath migrates every file under path concurrently. Reports come
// back in file order. Per-file errors are logged and joined into the
// returned error; cancelling ctx stops scheduling further files and the
// reports gathered so far are still returned.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
	opts Options,
) ([]*fixer.Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Logger == nil {
		opts.Logger = logger
	}

	files, err := engine.Files(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	bar := newProgressBar(path, len(files), opts.Quiet)
	defer bar.Finish()

	var (
		results = make([]*fixer.Report, len(files))
		mu      sync.Mutex
		errs    []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

schedule:
	for i, file := range files {
		select {
		case <-gctx.Done():
			break schedule
		default:
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := engine.Run(file, opts)
			bar.Add(1)
			if err != nil {
				logger.Error("Error processing file", zap.String("file", file), zap.Error(err))
				mu.Lock()
				errs = append(errs, &FileError{Path: file, Err: err})
				mu.Unlock()
				return nil
			}
			results[i] = report
			return nil
		})
	}
	waitErr := g.Wait()

	reports := make([]*fixer.Report, 0, len(files))
	for _, r := range results {
		if r != nil {
			reports = append(reports, r)
		}
	}

	if err := ctx.Err(); err != nil {
		return reports, err
	}
	if waitErr != nil {
		errs = append(errs, waitErr)
	}
	return reports, errors.Join(errs...)
}

// newProgressBar draws on stderr only when it is a terminal.
func newProgressBar(description string, total int, quiet bool) *progressbar.ProgressBar {
	fd := os.Stderr.Fd()
	if quiet || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		return progressbar.DefaultSilent(int64(total), description)
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
