// Package format re-indents JavaScript, TypeScript, JSX, TSX and JSON source
// text with a single-pass heuristic scanner. It does not parse: output depends
// only on brace, tag and string structure, and unbalanced input is tolerated.
package format

import (
	"strings"

	"github.com/pkg/errors"
)

type engine func(src, unit string) string

var engines = map[Variant]engine{
	JavaScript: func(src, unit string) string {
		text, _ := formatBraces(src, unit, nil)
		return text
	},
	TypeScript: func(src, unit string) string {
		return annotate(formatBraces(src, unit, nil))
	},
	JSX: func(src, unit string) string {
		text, _ := formatMarkup(src, unit, nil)
		return text
	},
	TSX: func(src, unit string) string {
		return annotate(formatMarkup(src, unit, nil))
	},
	JSON: formatData,
}

// Format re-indents src according to cfg. Blank input yields an empty
// success; an unknown variant is formatted as JavaScript. Format never panics:
// an internal fault is returned as a failure naming the variant.
func Format(src string, cfg Config) (res Result) {
	if strings.TrimSpace(src) == "" {
		return Success("")
	}
	run, ok := engines[cfg.Variant]
	if !ok {
		cfg.Variant = JavaScript
		run = engines[JavaScript]
	}
	defer func() {
		if r := recover(); r != nil {
			res = Failure(errors.Errorf("error formatting %s: %v", cfg.Variant, r))
		}
	}()
	return Success(run(src, cfg.IndentUnit()))
}

// FormatString is Format with the variant given by name and default
// indentation options.
func FormatString(src, variant string) Result {
	cfg := DefaultConfig()
	cfg.Variant, _ = ParseVariant(variant)
	return Format(src, cfg)
}
