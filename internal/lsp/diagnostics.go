package lsp

import "github.com/r9s-ai/reindent/internal/format"

const diagnosticSource = "reindent"

// collectDiagnostics reports the structural issues the formatter would
// silently tolerate. Each diagnostic covers the single offending byte.
func collectDiagnostics(text string, v format.Variant) []Diagnostic {
	issues := format.Check(text, v)
	diags := make([]Diagnostic, 0, len(issues))
	for _, issue := range issues {
		start := Position{Line: issue.Line, Character: issue.Column}
		end := start
		if issue.Offset < len(text) && text[issue.Offset] != '\n' {
			end.Character++
		}
		diags = append(diags, Diagnostic{
			Range:    Range{Start: start, End: end},
			Severity: 1,
			Source:   diagnosticSource,
			Message:  issue.Message,
		})
	}
	return diags
}
