// Package format is the public entry point of the re-indenter. It re-exports
// the engine so other modules can format text without the CLI.
package format

import internalformat "github.com/r9s-ai/reindent/internal/format"

type (
	Variant = internalformat.Variant
	Config  = internalformat.Config
	Result  = internalformat.Result
	Issue   = internalformat.Issue
)

const (
	JavaScript = internalformat.JavaScript
	TypeScript = internalformat.TypeScript
	JSX        = internalformat.JSX
	TSX        = internalformat.TSX
	JSON       = internalformat.JSON
)

// Format re-indents src according to cfg. It never panics; an internal fault
// comes back as a failed Result.
func Format(src string, cfg Config) Result {
	return internalformat.Format(src, cfg)
}

// FormatString formats src with default indentation, picking the variant by
// name. Unknown names format as JavaScript.
func FormatString(src, variant string) Result {
	return internalformat.FormatString(src, variant)
}

// Check lists the structural issues Format tolerates silently.
func Check(src string, v Variant) []Issue {
	return internalformat.Check(src, v)
}

func DefaultConfig() Config { return internalformat.DefaultConfig() }

func ParseVariant(name string) (Variant, bool) { return internalformat.ParseVariant(name) }

func VariantForPath(path string) (Variant, bool) { return internalformat.VariantForPath(path) }
