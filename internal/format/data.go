package format

import (
	"bytes"
	"encoding/json"
	"strings"
)

// formatData indents JSON. Valid documents are re-indented without touching
// key order, duplicate keys or literals; anything else goes through a
// lenient bracket scan.
func formatData(src, unit string) string {
	trimmed := strings.TrimSpace(src)
	if json.Valid([]byte(trimmed)) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(trimmed), "", unit); err == nil {
			return buf.String()
		}
	}
	return formatLooseData(src, unit)
}

func formatLooseData(src, unit string) string {
	out := newWriter(len(src), unit)
	lex := lexer{quotes: `"'`}
	depth := 0
	for i := 0; i < len(src); i++ {
		c := src[i]
		if lex.inside() {
			out.put(c)
			lex.exit(src, i)
			continue
		}
		if (c == '"' || c == '\'') && (i == 0 || src[i-1] != '\\') {
			lex.enter(src, i)
			out.put(c)
			continue
		}
		switch c {
		case '{', '[':
			out.put(c)
			depth++
			if nextSignificant(src, i) != closerOf(c) {
				out.newline(depth)
			}
		case '}', ']':
			empty := out.lastSignificant() == '{' || out.lastSignificant() == '['
			out.trimRight(whitespace)
			depth = max(depth-1, 0)
			if !empty {
				out.newline(depth)
			}
			out.put(c)
			switch nextSignificant(src, i) {
			case 0, ',', '}', ']':
			default:
				out.newline(depth)
			}
		case ',':
			out.put(c)
			if nextSignificant(src, i) != 0 {
				out.newline(depth)
			}
		case ':':
			out.puts(": ")
		case ' ', '\t', '\r', '\n', '\v', '\f':
			if isAtom(out.last()) && isAtom(nextSignificant(src, i)) {
				out.put(' ')
			}
		default:
			out.put(c)
		}
	}
	text, _ := out.finish()
	return text
}

func closerOf(b byte) byte {
	if b == '{' {
		return '}'
	}
	return ']'
}

// isAtom reports whether b can belong to a bare value or a quoted string.
func isAtom(b byte) bool {
	return b != 0 && !isSpace(b) && strings.IndexByte("{}[],:", b) < 0
}
