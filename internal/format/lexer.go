package format

import "strings"

type lexMode uint8

const (
	modeCode lexMode = iota
	modeString
	modeLineComment
	modeBlockComment
)

const codeQuotes = "\"'`"

// lexer tracks quoted-string and comment regions. A string ends at the next
// matching quote whose preceding byte is not a backslash; escaped backslashes
// before a quote are not recognized.
type lexer struct {
	quotes   string
	comments bool

	mode  lexMode
	quote byte
	start int
}

func newCodeLexer() lexer {
	return lexer{quotes: codeQuotes, comments: true}
}

func (l *lexer) inside() bool { return l.mode != modeCode }

// enter checks whether a string or comment region opens at src[i]. It returns
// the length of the opening delimiter, or 0 when src[i] is plain code.
func (l *lexer) enter(src string, i int) int {
	c := src[i]
	if l.comments && c == '/' && i+1 < len(src) {
		switch src[i+1] {
		case '/':
			l.mode, l.start = modeLineComment, i
			return 2
		case '*':
			l.mode, l.start = modeBlockComment, i
			return 2
		}
	}
	if strings.IndexByte(l.quotes, c) >= 0 {
		l.mode, l.quote, l.start = modeString, c, i
		return 1
	}
	return 0
}

// exit checks whether the current region closes at src[i]. It returns the
// length of the closing delimiter, or 0 when src[i] stays inside the region.
func (l *lexer) exit(src string, i int) int {
	switch l.mode {
	case modeString:
		if src[i] == l.quote && (i == 0 || src[i-1] != '\\') {
			l.mode, l.quote = modeCode, 0
			return 1
		}
	case modeLineComment:
		if src[i] == '\n' {
			l.mode = modeCode
			return 1
		}
	case modeBlockComment:
		if src[i] == '*' && i+1 < len(src) && src[i+1] == '/' {
			l.mode = modeCode
			return 2
		}
	}
	return 0
}

// unterminated describes an open region at end of input, or "" when none.
func (l *lexer) unterminated() string {
	switch l.mode {
	case modeString:
		return "unterminated string literal"
	case modeBlockComment:
		return "unterminated block comment"
	}
	return ""
}
