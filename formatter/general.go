package formatter

// GeneralIssueFormatter prints the source line of a failure with its
// message, suggestion and note.
type GeneralIssueFormatter struct{}

func (f *GeneralIssueFormatter) IssueTemplate() string {
	return `{{- header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{- snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{- underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{- if .Suggestion }}{{ suggestion .Suggestion }}{{ end -}}
{{- if .Note }}{{ note .Note }}{{ end -}}
{{ "\n" }}`
}
