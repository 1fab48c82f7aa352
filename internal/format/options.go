package format

import (
	"path/filepath"
	"strings"
)

// Variant selects the syntax family a text is formatted as.
type Variant int

const (
	JavaScript Variant = iota
	TypeScript
	JSX
	TSX
	JSON
)

var variantNames = [...]string{
	JavaScript: "javascript",
	TypeScript: "typescript",
	JSX:        "react",
	TSX:        "tsx",
	JSON:       "json",
}

var variantAliases = map[string]Variant{
	"javascript":      JavaScript,
	"js":              JavaScript,
	"mjs":             JavaScript,
	"cjs":             JavaScript,
	"typescript":      TypeScript,
	"ts":              TypeScript,
	"react":           JSX,
	"jsx":             JSX,
	"javascriptreact": JSX,
	"tsx":             TSX,
	"typescriptreact": TSX,
	"json":            JSON,
	"jsonc":           JSON,
}

var extensionVariants = map[string]Variant{
	".js":    JavaScript,
	".mjs":   JavaScript,
	".cjs":   JavaScript,
	".ts":    TypeScript,
	".mts":   TypeScript,
	".cts":   TypeScript,
	".jsx":   JSX,
	".tsx":   TSX,
	".json":  JSON,
	".jsonc": JSON,
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return variantNames[JavaScript]
	}
	return variantNames[v]
}

// Typed reports whether the variant carries type annotations.
func (v Variant) Typed() bool { return v == TypeScript || v == TSX }

// Markup reports whether the variant embeds markup tags.
func (v Variant) Markup() bool { return v == JSX || v == TSX }

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to
// JavaScript.
func (v *Variant) UnmarshalText(b []byte) error {
	*v, _ = ParseVariant(string(b))
	return nil
}

// ParseVariant resolves a variant name or alias. The boolean is false when the
// name is unknown, in which case JavaScript is returned.
func ParseVariant(name string) (Variant, bool) {
	v, ok := variantAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return JavaScript, false
	}
	return v, true
}

// VariantForPath picks the variant from a file name extension.
func VariantForPath(path string) (Variant, bool) {
	v, ok := extensionVariants[strings.ToLower(filepath.Ext(path))]
	return v, ok
}

// Extensions lists the file extensions VariantForPath recognizes.
func Extensions() []string {
	out := make([]string, 0, len(extensionVariants))
	for ext := range extensionVariants {
		out = append(out, ext)
	}
	return out
}

// Config controls a single formatting call.
type Config struct {
	Variant     Variant
	IndentWidth int
	UseSpaces   bool
}

// DefaultConfig returns two-space JavaScript formatting.
func DefaultConfig() Config {
	return Config{Variant: JavaScript, IndentWidth: 2, UseSpaces: true}
}

// IndentUnit returns the text emitted for one level of indentation.
func (c Config) IndentUnit() string {
	if !c.UseSpaces {
		return "\t"
	}
	n := c.IndentWidth
	if n <= 0 {
		n = 2
	}
	return strings.Repeat(" ", n)
}
