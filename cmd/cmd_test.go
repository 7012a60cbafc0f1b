package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/junitmig/internal/fixer"
	"github.com/gnoswap-labs/junitmig/internal/tree"
	tt "github.com/gnoswap-labs/junitmig/internal/types"
	"github.com/gnoswap-labs/junitmig/migrate"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Files(root string) ([]string, error) {
	args := m.Called(root)
	files, _ := args.Get(0).([]string)
	return files, args.Error(1)
}

func (m *mockEngine) Run(filename string, opts migrate.Options) (*fixer.Report, error) {
	args := m.Called(filename, opts)
	report, _ := args.Get(0).(*fixer.Report)
	return report, args.Error(1)
}

func (m *mockEngine) RunSource(filename string, source []byte, opts migrate.Options) (*fixer.Report, error) {
	args := m.Called(filename, source, opts)
	report, _ := args.Get(0).(*fixer.Report)
	return report, args.Error(1)
}

func (m *mockEngine) IgnoreRule(rule string) {
	m.Called(rule)
}

func (m *mockEngine) IgnorePath(pattern string) {
	m.Called(pattern)
}

func setupMockEngine(reports map[string]*fixer.Report, root string, files ...string) *mockEngine {
	engine := new(mockEngine)
	engine.On("Files", root).Return(files, nil)
	for _, f := range files {
		engine.On("Run", f, mock.Anything).Return(reports[f], nil)
	}
	return engine
}

var failedReport = &fixer.Report{
	Filename: "src/BTest.java",
	Source:   []byte("class BTest {\n    @Ignore(REASON)\n    void f() {}\n}\n"),
	Issues: []tt.Issue{
		{
			Rule:     "ignore-disabled",
			Category: tt.CategoryFailure,
			Filename: "src/BTest.java",
			Message:  "malformed annotation value",
			Severity: tt.SeverityError,
			Start:    tree.Position{Line: 2, Column: 5},
			End:      tree.Position{Line: 2, Column: 5},
		},
	},
}

func TestRunMigration(t *testing.T) {
	reports := map[string]*fixer.Report{
		"src/ATest.java": {Filename: "src/ATest.java", Changed: true},
		"src/BTest.java": failedReport,
	}
	engine := setupMockEngine(reports, "src", "src/ATest.java", "src/BTest.java")

	var out bytes.Buffer
	err := runMigration(context.Background(), &out, zap.NewNop(), engine, []string{"src"}, migrate.Options{Quiet: true})
	require.NoError(t, err)

	expected := `error: ignore-disabled
 --> src/BTest.java:2:5
  |
2 | @Ignore(REASON)
  | ^
  = malformed annotation value

2 files checked, 1 migrated, 1 with failures
`
	assert.Equal(t, expected, out.String())
	engine.AssertExpectations(t)
}

func TestRunMigrationFileError(t *testing.T) {
	engine := new(mockEngine)
	engine.On("Files", "src").Return([]string{"src/ATest.java"}, nil)
	engine.On("Run", "src/ATest.java", mock.Anything).Return(nil, errors.New("failed to parse file"))

	var out bytes.Buffer
	err := runMigration(context.Background(), &out, zap.NewNop(), engine, []string{"src"}, migrate.Options{Quiet: true})
	assert.ErrorContains(t, err, "migration incomplete")
	var fileErr *migrate.FileError
	assert.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "0 files checked, 0 migrated, 0 with failures\n", out.String())
}

func TestRunCheck(t *testing.T) {
	tests := []struct {
		name    string
		reports map[string]*fixer.Report
		wantErr error
	}{
		{
			name:    "clean",
			reports: map[string]*fixer.Report{"src/ATest.java": {Filename: "src/ATest.java"}},
		},
		{
			name:    "pending change",
			reports: map[string]*fixer.Report{"src/ATest.java": {Filename: "src/ATest.java", Changed: true}},
			wantErr: errPending,
		},
		{
			name:    "failure only",
			reports: map[string]*fixer.Report{"src/ATest.java": failedReport},
			wantErr: errPending,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := setupMockEngine(tc.reports, "src", "src/ATest.java")
			var out bytes.Buffer
			err := runCheck(context.Background(), &out, zap.NewNop(), engine, []string{"src"}, migrate.Options{Quiet: true})
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			engine.AssertCalled(t, "Run", "src/ATest.java", mock.MatchedBy(func(o migrate.Options) bool { return o.DryRun }))
		})
	}
}

func TestRunCheckJSON(t *testing.T) {
	jsonOutput = true
	outPath = filepath.Join(t.TempDir(), "reports.json")
	defer func() { jsonOutput, outPath = false, "" }()

	engine := setupMockEngine(map[string]*fixer.Report{"src/BTest.java": failedReport}, "src", "src/BTest.java")
	var out bytes.Buffer
	err := runCheck(context.Background(), &out, zap.NewNop(), engine, []string{"src"}, migrate.Options{Quiet: true})
	assert.ErrorIs(t, err, errPending)
	assert.Empty(t, out.String())

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var decoded []jsonReport
	require.NoError(t, json.Unmarshal(content, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "src/BTest.java", decoded[0].Filename)
	assert.True(t, decoded[0].Failed)
	assert.Equal(t, failedReport.Issues, decoded[0].Issues)
}

func writeJava(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

const beforeSource = "import org.junit.Before;\n\nclass ATest {\n    @Before\n    void setUp() {}\n}\n"

func TestRunDump(t *testing.T) {
	path := writeJava(t, t.TempDir(), "ATest.java", beforeSource)

	var out bytes.Buffer
	require.NoError(t, runDump(&out, nil, path))
	assert.Contains(t, out.String(), `"marker-annotation"`)
	assert.Contains(t, out.String(), `"Before"`)
	assert.Contains(t, out.String(), `"org.junit.Before"`)

	out.Reset()
	require.NoError(t, runDump(&out, migrate.NewWithConfig(migrate.DefaultConfig()), path))
	assert.Contains(t, out.String(), `"BeforeEach"`)
	assert.Contains(t, out.String(), `"org.junit.jupiter.api.BeforeEach"`)

	assert.Error(t, runDump(&out, nil, filepath.Join(t.TempDir(), "Missing.java")))
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "junitmig.yaml")
	path := writeJava(t, dir, "ATest.java", beforeSource)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"init", "--config", config})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Configuration file created/updated: "+config)
	loaded, err := migrate.LoadConfig(config)
	require.NoError(t, err)
	assert.Equal(t, migrate.DefaultConfig(), loaded)

	rootCmd.SetArgs([]string{"check", "--config", config, dir})
	assert.ErrorIs(t, rootCmd.Execute(), errPending)

	// bare paths behave like run
	rootCmd.SetArgs([]string{"--config", config, dir})
	require.NoError(t, rootCmd.Execute())
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "@BeforeEach")

	rootCmd.SetArgs([]string{"check", "--config", config, dir})
	assert.NoError(t, rootCmd.Execute())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"import-rename", "test-attributes"}, splitList(" import-rename, ,test-attributes "))
	assert.Nil(t, splitList(""))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("JUNITMIG_WORKERS", "3")
	t.Setenv("JUNITMIG_IGNORE_PATHS", "gen/*")
	t.Setenv("JUNITMIG_TIMEOUT", "30s")
	defer func() { workers, ignorePaths, timeout = 0, "", defaultTimeout }()

	require.NoError(t, checkCmd.ParseFlags([]string{"--workers", "5"}))
	require.NoError(t, applyEnv(checkCmd))

	assert.Equal(t, 5, workers, "flags take precedence over the environment")
	assert.Equal(t, "gen/*", ignorePaths)
	assert.Equal(t, 30*time.Second, timeout)
}
