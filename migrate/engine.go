package migrate

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gnoswap-labs/junitmig/internal/fixer"
	"github.com/gnoswap-labs/junitmig/internal/rewrite"
	"github.com/gnoswap-labs/junitmig/scanner"
)

// Engine migrates files. Migrator is the implementation used by the CLI.
type Engine interface {
	Files(root string) ([]string, error)
	Run(filename string, opts Options) (*fixer.Report, error)
	RunSource(filename string, source []byte, opts Options) (*fixer.Report, error)
	IgnoreRule(rule string)
	IgnorePath(pattern string)
}

// Migrator applies the configured rules to Java files.
type Migrator struct {
	mu           sync.RWMutex
	config       Config
	ignoredRules map[string]bool
	ignoredPaths []string
	rw           *rewrite.Rewriter
}

var _ Engine = (*Migrator)(nil)

// New reads the configuration at configPath and returns a Migrator for it.
func New(configPath string) (*Migrator, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(config), nil
}

func NewWithConfig(config Config) *Migrator {
	m := &Migrator{
		config:       config,
		ignoredRules: make(map[string]bool),
	}
	for _, rule := range config.Disabled() {
		m.ignoredRules[rule] = true
	}
	m.rebuild()
	return m
}

// Config returns the configuration the Migrator was built with.
func (m *Migrator) Config() Config {
	return m.config
}

// rebuild swaps in a Rewriter for the current rule set. Callers hold mu
// for writing, or own m exclusively.
func (m *Migrator) rebuild() {
	disabled := make([]string, 0, len(m.ignoredRules))
	for rule := range m.ignoredRules {
		disabled = append(disabled, rule)
	}
	m.rw = rewrite.New(disabled...)
}

// IgnoreRule turns rule off for subsequent runs.
func (m *Migrator) IgnoreRule(rule string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ignoredRules[rule] = true
	m.rebuild()
}

// IgnorePath skips files whose path or base name matches the glob pattern.
func (m *Migrator) IgnorePath(pattern string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ignoredPaths = append(m.ignoredPaths, pattern)
}

func (m *Migrator) ignored(path string) bool {
	for _, pattern := range m.ignoredPaths {
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
		if strings.HasPrefix(path, strings.TrimSuffix(pattern, "/")+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Files lists the files under root that Run would migrate.
func (m *Migrator) Files(root string) ([]string, error) {
	files, err := scanner.New(root, m.config.Extensions...).Exclude(m.config.Exclude...).Scan()
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(files))
	for _, f := range files {
		if !m.ignored(f.Path) {
			paths = append(paths, f.Path)
		}
	}
	return paths, nil
}

func (m *Migrator) fixer(opts Options) *fixer.Fixer {
	m.mu.RLock()
	rw := m.rw
	m.mu.RUnlock()

	fixerOpts := []fixer.Option{
		fixer.WithDryRun(opts.DryRun),
		fixer.WithDiff(opts.Diff),
		fixer.WithSeverities(m.config.Severities()),
	}
	if opts.Logger != nil {
		fixerOpts = append(fixerOpts, fixer.WithLogger(opts.Logger))
	}
	return fixer.New(rw, fixerOpts...)
}

// Run migrates a single file.
func (m *Migrator) Run(filename string, opts Options) (*fixer.Report, error) {
	report, err := m.fixer(opts).Fix(filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return report, nil
}

// RunSource migrates source as if it were read from filename. Nothing is
// written.
func (m *Migrator) RunSource(filename string, source []byte, opts Options) (*fixer.Report, error) {
	return m.fixer(opts).FixSource(filename, source)
}
