package formatter

import (
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/gnoswap-labs/junitmig/internal/fixer"
	"github.com/gnoswap-labs/junitmig/internal/tree"
	tt "github.com/gnoswap-labs/junitmig/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var ignoreSource = &SourceCode{
	Lines: []string{
		"package p;",
		"",
		"class ATest {",
		"    @Ignore(REASON)",
		"    @Test",
		"    void slow() {}",
		"}",
	},
}

func TestGenerateFormattedIssue(t *testing.T) {
	t.Parallel()

	issues := []tt.Issue{
		{
			Rule:       "ignore-disabled",
			Category:   tt.CategoryFailure,
			Filename:   "ATest.java",
			Start:      tree.Position{Line: 4, Column: 5},
			End:        tree.Position{Line: 4, Column: 5},
			Message:    "malformed annotation value",
			Suggestion: "use a string literal reason",
			Note:       "REASON is not a string literal",
			Severity:   tt.SeverityError,
		},
		{
			Rule:     "import-rename",
			Category: tt.CategoryChange,
			Filename: "ATest.java",
			Start:    tree.Position{Line: 1, Column: 1},
			End:      tree.Position{Line: 1, Column: 1},
			Message:  "org.junit.Test -> org.junit.jupiter.api.Test",
			Severity: tt.SeverityInfo,
		},
	}

	expected := `error: ignore-disabled
 --> ATest.java:4:5
  |
4 | @Ignore(REASON)
  | ^
  = malformed annotation value
Suggestion: use a string literal reason
Note: REASON is not a string literal

info: import-rename
 --> ATest.java:1:1
  = org.junit.Test -> org.junit.jupiter.api.Test

`

	result := GenerateFormattedIssue(issues, ignoreSource)
	assert.Equal(t, expected, result, "Formatted output does not match expected")
}

func TestTestAttributesFormatter(t *testing.T) {
	t.Parallel()

	issue := tt.Issue{
		Rule:       "test-attributes",
		Category:   tt.CategoryFailure,
		Filename:   "ATest.java",
		Start:      tree.Position{Line: 2, Column: 5},
		End:        tree.Position{Line: 2, Column: 5},
		Message:    "invalid timeout value",
		Suggestion: "use an integer literal",
		Note:       `timeout = "fast"`,
		Severity:   tt.SeverityWarning,
	}
	code := &SourceCode{
		Lines: []string{
			"class ATest {",
			`    @Test(timeout = "fast")`,
			"    void slow() {}",
			"}",
		},
	}

	expected := `warning: test-attributes
 --> ATest.java:2:5
  |
2 | @Test(timeout = "fast")
  | ^
  = invalid timeout value
  = warning: @Test keeps its JUnit 4 attributes and will not compile against JUnit 5
Suggestion: use an integer literal
Note: timeout = "fast"

`

	assert.Equal(t, expected, GenerateFormattedIssue([]tt.Issue{issue}, code))
}

func TestUnderline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lines    []string
		start    tree.Position
		end      tree.Position
		expected string
	}{
		{
			name:  "range with multiple digit line numbers",
			lines: []string{"", "", "", "", "", "", "", "", "", "    @Ignore(REASON)", ""},
			start: tree.Position{Line: 10, Column: 5},
			end:   tree.Position{Line: 10, Column: 20},
			expected: `error: ignore-disabled
  --> ATest.java:10:5
   |
10 | @Ignore(REASON)
   | ~~~~~~~~~~~~~~~
   = malformed annotation value

`,
		},
		{
			name:  "tab indent",
			lines: []string{"class ATest {", "\t\t@Ignore(1)", "}"},
			start: tree.Position{Line: 2, Column: 3},
			end:   tree.Position{Line: 2, Column: 13},
			expected: `error: ignore-disabled
 --> ATest.java:2:3
  |
2 | @Ignore(1)
  | ~~~~~~~~~~
  = malformed annotation value

`,
		},
		{
			name:  "caret inside the line",
			lines: []string{"    @Ignore(1) @Test void f() {}"},
			start: tree.Position{Line: 1, Column: 16},
			end:   tree.Position{Line: 1, Column: 16},
			expected: `error: ignore-disabled
 --> ATest.java:1:16
  |
1 | @Ignore(1) @Test void f() {}
  |            ^
  = malformed annotation value

`,
		},
		{
			name:  "line outside the source",
			lines: []string{"class ATest {", "}"},
			start: tree.Position{Line: 40, Column: 1},
			end:   tree.Position{Line: 40, Column: 1},
			expected: `error: ignore-disabled
  --> ATest.java:40:1
   |
   = malformed annotation value

`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issue := tt.Issue{
				Rule:     "ignore-disabled",
				Category: tt.CategoryFailure,
				Filename: "ATest.java",
				Start:    tc.start,
				End:      tc.end,
				Message:  "malformed annotation value",
				Severity: tt.SeverityError,
			}
			result := GenerateFormattedIssue([]tt.Issue{issue}, &SourceCode{Lines: tc.lines})
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestNewSourceCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "", "b"}, NewSourceCode([]byte("a\r\n\r\nb\n")).Lines)
	assert.Empty(t, NewSourceCode(nil).Lines)
	assert.Equal(t, []string{"x"}, NewSourceCode([]byte("x")).Lines)
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := &fixer.Report{
		Filename: "ATest.java",
		Changed:  true,
		Source:   []byte("import org.junit.Test;\n@Ignore(1)\nclass ATest {}\n"),
		Diff:     "--- a/ATest.java\n+++ b/ATest.java\n",
		Issues: []tt.Issue{
			{
				Rule:     "import-rename",
				Category: tt.CategoryChange,
				Filename: "ATest.java",
				Start:    tree.Position{Line: 1, Column: 1},
				End:      tree.Position{Line: 1, Column: 1},
				Message:  "org.junit.Test -> org.junit.jupiter.api.Test",
				Severity: tt.SeverityInfo,
			},
			{
				Rule:     "ignore-disabled",
				Category: tt.CategoryFailure,
				Filename: "ATest.java",
				Start:    tree.Position{Line: 2, Column: 1},
				End:      tree.Position{Line: 2, Column: 1},
				Message:  "malformed annotation value",
				Severity: tt.SeverityError,
			},
		},
	}

	expected := `error: ignore-disabled
 --> ATest.java:2:1
  |
2 | @Ignore(1)
  | ^
  = malformed annotation value

--- a/ATest.java
+++ b/ATest.java
`
	assert.Equal(t, expected, FormatReport(report, false))

	verbose := FormatReport(report, true)
	assert.Contains(t, verbose, "info: import-rename\n")
	assert.Contains(t, verbose, "error: ignore-disabled\n")
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	reports := []*fixer.Report{
		{Changed: true},
		{Changed: true, Issues: []tt.Issue{{Category: tt.CategoryFailure}}},
		{},
	}
	assert.Equal(t, "3 files checked, 2 migrated, 1 with failures\n", FormatSummary(reports, false))
	assert.Equal(t, "1 file checked, 0 to migrate, 0 with failures\n", FormatSummary(reports[2:], true))
}

func TestCalculateVisualColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line   string
		column int
		want   int
	}{
		{"    @Test", 5, 4},
		{"\t@Test", 2, 8},
		{"  \t@Test", 4, 8},
		{"@Test", 1, 0},
		{"@Test", -1, 0},
		{"ab", 10, 2},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, calculateVisualColumn(tc.line, tc.column), "%q col %d", tc.line, tc.column)
	}
}

func TestFindCommonIndent(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		lines    []string
	}{
		{
			name: "whitespace indent",
			lines: []string{
				"    @Test",
				"        void f() {}",
			},
			expected: "    ",
		},
		{
			name: "tab indent",
			lines: []string{
				"\t@Test",
				"\t\tvoid f() {}",
			},
			expected: "\t",
		},
		{
			name: "mixed indent (space and tab)",
			lines: []string{
				"\t    @Test",
				"\t    \tvoid f() {}",
			},
			expected: "\t    ",
		},
		{
			name: "no indent",
			lines: []string{
				"@Test",
				"void f() {}",
			},
			expected: "",
		},
		{
			name: "empty line",
			lines: []string{
				"    @Test",
				"",
				"    void f() {}",
			},
			expected: "    ",
		},
		{
			name:     "empty input",
			lines:    []string{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := findCommonIndent(tt.lines)
			if result != tt.expected {
				t.Errorf("findCommonIndent() = %q, want %q", result, tt.expected)
			}
		})
	}
}
