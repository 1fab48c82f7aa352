// Package highlight classifies source text into colorable tokens for the
// terminal renderer and for editor semantic tokens.
package highlight

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/r9s-ai/reindent/internal/format"
)

// Kind classifies a highlighted token.
type Kind int

const (
	Keyword Kind = iota
	String
	Number
	Comment
	Operator
	Type
	Property
)

var kindNames = [...]string{
	Keyword:  "keyword",
	String:   "string",
	Number:   "number",
	Comment:  "comment",
	Operator: "operator",
	Type:     "type",
	Property: "property",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Legend returns the kind names indexed by Kind.
func Legend() []string {
	return append([]string(nil), kindNames[:]...)
}

// Token is a classified range of source text. Tokens never span a line break:
// multi-line strings and comments are split into one token per line.
type Token struct {
	Kind   Kind
	Offset int
	Line   int
	Col    int
	Len    int
}

// lexerNames maps each variant to a chroma lexer alias.
var lexerNames = map[format.Variant]string{
	format.JavaScript: "javascript",
	format.TypeScript: "typescript",
	format.JSX:        "react",
	format.TSX:        "tsx",
	format.JSON:       "json",
}

func lexerFor(v format.Variant) chroma.Lexer {
	l := lexers.Get(lexerNames[v])
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

// Tokens classifies src as the given variant. Punctuation and plain
// identifiers produce no token.
func Tokens(src string, v format.Variant) []Token {
	// Line endings are kept as written so token values line up with src.
	toks, err := chroma.Tokenise(lexerFor(v), &chroma.TokeniseOptions{State: "root"}, src)
	if err != nil {
		return nil
	}

	s := splitter{input: src, out: make([]Token, 0, len(toks)/2)}
	prev := chroma.Token{Type: chroma.Text}
	for _, t := range toks {
		val, ok := s.match(t.Value)
		if !ok {
			break
		}
		if kind, ok := classify(t, prev, v); ok {
			s.emit(kind, len(val))
		} else {
			s.skip(len(val))
		}
		if !t.Type.InCategory(chroma.Text) {
			prev = t
		}
	}
	return s.out
}

// classify maps a chroma token type onto a Kind. prev is the last token
// that was not whitespace.
func classify(t, prev chroma.Token, v format.Variant) (Kind, bool) {
	tt := t.Type
	switch {
	case tt.InCategory(chroma.Comment):
		return Comment, true
	case tt == chroma.KeywordType:
		return Type, true
	case tt.InCategory(chroma.Keyword):
		return Keyword, true
	case tt.InSubCategory(chroma.LiteralString):
		return String, true
	case tt.InSubCategory(chroma.LiteralNumber):
		return Number, true
	case tt.InCategory(chroma.Operator):
		return Operator, true
	case tt == chroma.NameTag:
		// The data lexer tags object keys; the markup lexers tag element names.
		if v == format.JSON {
			return Property, true
		}
		return Type, true
	case tt == chroma.NameAttribute, tt == chroma.NameProperty:
		return Property, true
	case tt == chroma.NameBuiltin:
		return Type, true
	case tt == chroma.NameOther:
		if prev.Type == chroma.Punctuation && strings.HasSuffix(prev.Value, ".") && !strings.HasSuffix(prev.Value, "...") {
			return Property, true
		}
		if r, _ := utf8.DecodeRuneInString(t.Value); v.Typed() && unicode.IsUpper(r) {
			return Type, true
		}
	}
	return 0, false
}

type splitter struct {
	input string
	out   []Token
	i     int
	line  int
	col   int
}

// match returns the part of val found at the current position. Lexers that
// append a final newline produce a last token running past the input; it is
// cut back to what remains.
func (s *splitter) match(val string) (string, bool) {
	rest := s.input[s.i:]
	if strings.HasPrefix(rest, val) {
		return val, true
	}
	if rest != "" && strings.HasPrefix(val, rest) {
		return rest, true
	}
	return "", false
}

// emit records the next n bytes as kind, one token per line, and advances.
func (s *splitter) emit(kind Kind, n int) {
	end := s.i + n
	for s.i < end {
		j := s.i
		for j < end && s.input[j] != '\n' {
			j++
		}
		if j > s.i {
			s.out = append(s.out, Token{Kind: kind, Offset: s.i, Line: s.line, Col: s.col, Len: j - s.i})
		}
		s.col += j - s.i
		s.i = j
		if j < end {
			s.line++
			s.col = 0
			s.i++
		}
	}
}

func (s *splitter) skip(n int) {
	end := s.i + n
	for ; s.i < end; s.i++ {
		if s.input[s.i] == '\n' {
			s.line++
			s.col = 0
			continue
		}
		s.col++
	}
}
