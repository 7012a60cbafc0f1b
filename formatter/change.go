package formatter

// ChangeFormatter prints an applied rewrite as its location and detail.
type ChangeFormatter struct{}

func (f *ChangeFormatter) IssueTemplate() string {
	return `{{- header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{- message .Message .Padding -}}
{{ "\n" }}`
}
