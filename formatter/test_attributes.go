package formatter

const testAttributesWarning = "@Test keeps its JUnit 4 attributes and will not compile against JUnit 5"

// TestAttributesFormatter is the GeneralIssueFormatter plus a warning that
// the annotation was left in its JUnit 4 form.
type TestAttributesFormatter struct{}

func (f *TestAttributesFormatter) IssueTemplate() string {
	return `{{- header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{- snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{- underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{- warning "` + testAttributesWarning + `" .Padding -}}
{{- if .Suggestion }}{{ suggestion .Suggestion }}{{ end -}}
{{- if .Note }}{{ note .Note }}{{ end -}}
{{ "\n" }}`
}
