package format

import "bytes"

type markupContext uint8

const (
	ctxCode markupContext = iota
	ctxTag
	ctxExpr
	ctxText
)

type openTag struct {
	name   string
	offset int
}

// markupScanner extends the brace engine with markup tags and markup
// expressions. Indentation depth is shared between code braces and open tags.
type markupScanner struct {
	scanner

	inTag     bool
	closing   bool
	tagName   string
	tagStart  int
	attrDepth int
	exprDepth int
	stack     []openTag
	openedAt  int
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// markupKeywords may directly precede an opening tag in code.
var markupKeywords = map[string]bool{
	"return": true, "yield": true, "default": true,
	"case": true, "else": true, "await": true,
}

func formatMarkup(src, unit string, report issueFunc) (string, []span) {
	m := &markupScanner{scanner: newScanner(src, unit, report), openedAt: -1}
	for i := 0; i < len(src); {
		ctx := m.context()
		if ctx != ctxText {
			if n := m.region(i, m.continuation(ctx)); n > 0 {
				i += n
				continue
			}
		}
		m.out.opaque = ctx == ctxText || (ctx == ctxTag && m.attrDepth == 0)
		switch ctx {
		case ctxTag:
			m.tagByte(i)
		case ctxExpr:
			m.exprByte(i)
		case ctxText:
			if !m.startTag(i, ctx) {
				m.textByte(i)
			}
		default:
			if !m.startTag(i, ctx) {
				m.code(i)
			}
		}
		i++
	}
	m.out.opaque = false
	m.finish()
	return m.out.finish()
}

func (m *markupScanner) context() markupContext {
	switch {
	case m.inTag:
		return ctxTag
	case m.exprDepth > 0:
		return ctxExpr
	case len(m.stack) > 0:
		return ctxText
	}
	return ctxCode
}

func (m *markupScanner) continuation(ctx markupContext) int {
	if ctx == ctxCode {
		return m.depth
	}
	return m.depth + 1
}

// startTag begins tag scanning when src[i] opens a tag and reports whether it
// did.
func (m *markupScanner) startTag(i int, ctx markupContext) bool {
	src := m.src
	if src[i] != '<' {
		return false
	}
	j := i + 1
	closing := j < len(src) && src[j] == '/'
	if closing {
		j++
	}
	name, end := scanTagName(src, j)
	if name == "" {
		if j >= len(src) || src[j] != '>' {
			return false
		}
	} else if end < len(src) && !isTagNameEnd(src[end]) {
		return false
	}
	if !closing && ctx == ctxCode && !m.expressionStart() {
		return false
	}

	// Root elements stay where they are in code: a break after return would
	// end the statement.
	switch {
	case closing:
		m.closeTag(i, name)
	case ctx == ctxText:
		m.out.trimRight(whitespace)
		if !m.out.empty() {
			m.out.newline(m.depth)
		}
	}
	m.inTag = true
	m.closing = closing
	m.tagName = name
	m.tagStart = i
	m.attrDepth = 0
	m.out.opaque = true
	m.out.put('<')
	return true
}

func (m *markupScanner) closeTag(i int, name string) {
	top := len(m.stack) - 1
	if top >= 0 && m.stack[top].name == name {
		m.stack = m.stack[:top]
		m.dedent()
		m.out.trimRight(whitespace)
		if len(m.out.buf) != m.openedAt {
			m.out.newline(m.depth)
		}
		return
	}
	if top < 0 {
		m.issue(i, "unexpected closing tag </"+name+">")
	} else {
		m.issue(i, "closing tag </"+name+"> does not match <"+m.stack[top].name+">")
	}
	m.lineBreak(m.depth)
}

func (m *markupScanner) tagByte(i int) {
	c := m.src[i]
	switch {
	case c == '{':
		m.attrDepth++
		m.out.opaque = false
		m.out.put(c)
	case c == '}' && m.attrDepth > 0:
		m.attrDepth--
		m.out.put(c)
	case c == '>' && m.attrDepth == 0:
		m.endTag(i)
	case isSpace(c):
		if m.attrDepth == 0 && nextSignificant(m.src, i) == '>' {
			return
		}
		m.out.space()
	default:
		m.out.put(c)
	}
}

func (m *markupScanner) endTag(i int) {
	selfClosing := m.out.last() == '/'
	m.out.put('>')
	m.inTag = false
	next := nextSignificant(m.src, i)
	if !m.closing && !selfClosing && !voidElements[m.tagName] {
		m.stack = append(m.stack, openTag{name: m.tagName, offset: m.tagStart})
		m.depth++
		m.openedAt = len(m.out.buf)
		if next != 0 && next != '<' {
			m.out.newline(m.depth)
		}
		return
	}
	if len(m.stack) > 0 && next != 0 && next != '<' {
		m.out.newline(m.depth)
	}
}

func (m *markupScanner) textByte(i int) {
	c := m.src[i]
	switch c {
	case '{':
		m.exprDepth = 1
		m.out.opaque = false
		m.out.put(c)
	case '\n', '\r':
		m.lineBreak(m.depth)
	case ' ', '\t':
		m.out.space()
	default:
		m.out.put(c)
	}
}

func (m *markupScanner) exprByte(i int) {
	c := m.src[i]
	switch c {
	case '{':
		m.exprDepth++
		m.out.put(c)
	case '}':
		m.exprDepth--
		m.out.put(c)
	case ',':
		m.out.put(c)
		if next := m.peek(i); next != ' ' && next != '\n' {
			m.out.put(' ')
		}
	case '\n', '\r':
		m.lineBreak(m.depth + 1)
	case ' ', '\t':
		m.out.space()
	default:
		m.out.put(c)
	}
}

// expressionStart reports whether the code written so far ends where an
// expression, and therefore a markup element, may begin.
func (m *markupScanner) expressionStart() bool {
	buf := bytes.TrimRight(m.out.buf, whitespace)
	if len(buf) == 0 {
		return true
	}
	b := buf[len(buf)-1]
	if isIdentPart(b) {
		j := len(buf)
		for j > 0 && isIdentPart(buf[j-1]) {
			j--
		}
		return markupKeywords[string(buf[j:])]
	}
	switch b {
	case ')', ']', '"', '\'', '`', '.':
		return false
	}
	return true
}

func (m *markupScanner) finish() {
	m.scanner.finish()
	if m.inTag {
		m.issue(m.tagStart, "unterminated tag")
	}
	for _, t := range m.stack {
		m.issue(t.offset, "unclosed tag <"+t.name+">")
	}
}

func scanTagName(src string, i int) (string, int) {
	if i >= len(src) || !isLetter(src[i]) {
		return "", i
	}
	j := i + 1
	for j < len(src) && (isIdentPart(src[j]) || src[j] == '.' || src[j] == '-' || src[j] == ':') {
		j++
	}
	return src[i:j], j
}

func isTagNameEnd(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '/', '>':
		return true
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
