package fixer

import (
	"errors"
	"fmt"
	"os"

	"github.com/gnoswap-labs/junitmig/internal/javasrc"
	"github.com/gnoswap-labs/junitmig/internal/nolint"
	"github.com/gnoswap-labs/junitmig/internal/printer"
	"github.com/gnoswap-labs/junitmig/internal/rewrite"
	tt "github.com/gnoswap-labs/junitmig/internal/types"
	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
)

// Fixer migrates single files with a shared Rewriter.
type Fixer struct {
	rw         *rewrite.Rewriter
	dryRun     bool
	diff       bool
	severities map[string]tt.Severity
	logger     *zap.Logger
}

type Option func(*Fixer)

// WithDryRun leaves files on disk untouched.
func WithDryRun(dryRun bool) Option {
	return func(f *Fixer) { f.dryRun = dryRun }
}

// WithDiff attaches a unified diff of every changed file to its report.
func WithDiff(diff bool) Option {
	return func(f *Fixer) { f.diff = diff }
}

// WithSeverities sets the severity reported for each rule's issues.
func WithSeverities(severities map[string]tt.Severity) Option {
	return func(f *Fixer) { f.severities = severities }
}

func WithLogger(logger *zap.Logger) Option {
	return func(f *Fixer) { f.logger = logger }
}

func New(rw *rewrite.Rewriter, opts ...Option) *Fixer {
	f := &Fixer{
		rw:     rw,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Report is the outcome of migrating one file.
type Report struct {
	Filename string
	Changed  bool
	Diff     string
	Source   []byte
	Output   []byte
	Issues   []tt.Issue
}

// Failed reports whether any node of the file could not be rewritten.
func (r *Report) Failed() bool {
	for _, issue := range r.Issues {
		if issue.Category == tt.CategoryFailure {
			return true
		}
	}
	return false
}

// Fix migrates filename in place unless the fixer is in dry-run mode.
// Files without mutations are never written.
func (f *Fixer) Fix(filename string) (*Report, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	report, err := f.FixSource(filename, content)
	if err != nil {
		return nil, err
	}

	if report.Changed && !f.dryRun {
		if err := os.WriteFile(filename, report.Output, info.Mode().Perm()); err != nil {
			return nil, fmt.Errorf("failed to write file: %w", err)
		}
		f.logger.Info("migrated file", zap.String("file", filename), zap.Int("issues", len(report.Issues)))
	}
	return report, nil
}

// FixSource migrates src without touching the file system.
func (f *Fixer) FixSource(filename string, src []byte) (*Report, error) {
	t, err := javasrc.Parse(filename, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	res := f.rw.Rewrite(t, nolint.ParseComments(t))
	report := &Report{
		Filename: filename,
		Changed:  res.Changed(),
		Source:   src,
		Output:   src,
		Issues:   f.issues(filename, res),
	}
	f.logger.Debug("rewrote tree",
		zap.String("file", filename),
		zap.Int("mutations", res.Mutations),
		zap.Strings("injected", res.Injected),
		zap.Int("failures", len(res.Failures)),
	)
	if !report.Changed {
		return report, nil
	}

	report.Output = printer.Print(t)
	if err := verify(filename, report.Output); err != nil {
		return nil, err
	}

	if f.diff {
		report.Diff, err = unifiedDiff(filename, src, report.Output)
		if err != nil {
			return nil, fmt.Errorf("failed to diff file: %w", err)
		}
	}
	return report, nil
}

func (f *Fixer) severity(rule string, fallback tt.Severity) tt.Severity {
	if s, ok := f.severities[rule]; ok {
		return s
	}
	return fallback
}

func (f *Fixer) issues(filename string, res *rewrite.Result) []tt.Issue {
	issues := make([]tt.Issue, 0, len(res.Applied)+len(res.Failures))
	for _, a := range res.Applied {
		issues = append(issues, tt.Issue{
			Rule:     a.Rule,
			Category: tt.CategoryChange,
			Filename: filename,
			Message:  a.Detail,
			Severity: tt.SeverityInfo,
			Start:    a.Pos,
			End:      a.Pos,
		})
	}
	for _, fail := range res.Failures {
		issues = append(issues, tt.Issue{
			Rule:       fail.Rule,
			Category:   tt.CategoryFailure,
			Filename:   filename,
			Message:    errors.Unwrap(fail).Error(),
			Suggestion: suggestions[fail.Kind],
			Note:       fail.Detail,
			Severity:   f.severity(fail.Rule, tt.SeverityError),
			Start:      fail.Pos,
			End:        fail.Pos,
		})
	}
	return issues
}

var suggestions = map[rewrite.FailureKind]string{
	rewrite.MalformedAnnotationValue: `use a string literal reason, e.g. @Ignore("reason")`,
	rewrite.InvalidTimeoutValue:      "use an integer literal in milliseconds, e.g. timeout = 500",
	rewrite.InvalidExpectedType:      "use a class literal, e.g. expected = IllegalStateException.class",
	rewrite.MissingMethodBody:        "only methods with a body can be wrapped in assertTimeout/assertThrows",
}

func unifiedDiff(filename string, before, after []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + filename,
		ToFile:   "b/" + filename,
		Context:  3,
	})
}
