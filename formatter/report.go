package formatter

import (
	"fmt"
	"strings"

	"github.com/gnoswap-labs/junitmig/internal/fixer"
	tt "github.com/gnoswap-labs/junitmig/internal/types"
)

// FormatReport renders the issues of one file against its original source,
// followed by the diff when the report carries one. Applied changes are
// only listed when verbose is set.
func FormatReport(report *fixer.Report, verbose bool) string {
	issues := make([]tt.Issue, 0, len(report.Issues))
	for _, issue := range report.Issues {
		if issue.Category == tt.CategoryChange && !verbose {
			continue
		}
		issues = append(issues, issue)
	}

	var builder strings.Builder
	builder.WriteString(GenerateFormattedIssue(issues, NewSourceCode(report.Source)))
	if report.Diff != "" {
		builder.WriteString(report.Diff)
	}
	return builder.String()
}

// FormatSummary counts the changed files and the files left with nodes
// that could not be migrated.
func FormatSummary(reports []*fixer.Report, dryRun bool) string {
	var changed, failed int
	for _, r := range reports {
		if r.Changed {
			changed++
		}
		if r.Failed() {
			failed++
		}
	}

	verb := "migrated"
	if dryRun {
		verb = "to migrate"
	}

	changedText := fmt.Sprintf("%d %s", changed, verb)
	if changed > 0 {
		changedText = suggestionStyle.Sprint(changedText)
	}
	failedText := fmt.Sprintf("%d with failures", failed)
	if failed > 0 {
		failedText = errorStyle.Sprint(failedText)
	}
	return fmt.Sprintf("%d %s checked, %s, %s\n", len(reports), plural(len(reports), "file"), changedText, failedText)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
