package format

import "bytes"

const whitespace = " \t\r\n\v\f"

// span is a half-open byte range of engine output.
type span struct {
	start, end int
}

// writer accumulates engine output. While opaque is set, written bytes are
// recorded as spans that later passes must leave untouched.
type writer struct {
	buf    []byte
	unit   string
	opaque bool
	spans  []span
}

func newWriter(size int, unit string) *writer {
	return &writer{
		buf:  make([]byte, 0, size+size/4),
		unit: unit,
	}
}

func (w *writer) put(b byte) {
	if w.opaque {
		w.mark(len(w.buf), len(w.buf)+1)
	}
	w.buf = append(w.buf, b)
}

func (w *writer) puts(s string) {
	if s == "" {
		return
	}
	if w.opaque {
		w.mark(len(w.buf), len(w.buf)+len(s))
	}
	w.buf = append(w.buf, s...)
}

func (w *writer) mark(start, end int) {
	if n := len(w.spans); n > 0 && w.spans[n-1].end == start {
		w.spans[n-1].end = end
		return
	}
	w.spans = append(w.spans, span{start: start, end: end})
}

func (w *writer) empty() bool { return len(w.buf) == 0 }

func (w *writer) last() byte {
	if len(w.buf) == 0 {
		return 0
	}
	return w.buf[len(w.buf)-1]
}

// lastSignificant returns the last non-whitespace byte written, or 0.
func (w *writer) lastSignificant() byte {
	for i := len(w.buf) - 1; i >= 0; i-- {
		if !isSpace(w.buf[i]) {
			return w.buf[i]
		}
	}
	return 0
}

// atLineStart reports whether the current output line holds nothing but
// indentation.
func (w *writer) atLineStart() bool {
	for i := len(w.buf) - 1; i >= 0; i-- {
		switch w.buf[i] {
		case ' ', '\t':
			continue
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

func (w *writer) truncate(n int) {
	if n >= len(w.buf) {
		return
	}
	w.buf = w.buf[:n]
	for len(w.spans) > 0 {
		last := &w.spans[len(w.spans)-1]
		if last.start >= n {
			w.spans = w.spans[:len(w.spans)-1]
			continue
		}
		if last.end > n {
			last.end = n
		}
		break
	}
}

func (w *writer) trimRight(cutset string) {
	w.truncate(len(bytes.TrimRight(w.buf, cutset)))
}

// newline ends the current line, dropping its trailing blanks, and indents the
// next one to depth.
func (w *writer) newline(depth int) {
	w.trimRight(" \t\r")
	w.buf = append(w.buf, '\n')
	w.indent(depth)
}

func (w *writer) indent(depth int) {
	for i := 0; i < depth; i++ {
		w.buf = append(w.buf, w.unit...)
	}
}

// space emits a single separating blank unless the line is still empty or
// already ends in one.
func (w *writer) space() {
	if w.atLineStart() {
		return
	}
	if b := w.last(); b == ' ' || b == '\t' {
		return
	}
	w.put(' ')
}

// finish trims surrounding whitespace and returns the text with its opaque
// spans rebased onto the trimmed text.
func (w *writer) finish() (string, []span) {
	end := len(bytes.TrimRight(w.buf, whitespace))
	start := len(w.buf[:end]) - len(bytes.TrimLeft(w.buf[:end], whitespace))
	out := make([]span, 0, len(w.spans))
	for _, s := range w.spans {
		s.start = max(s.start, start)
		s.end = min(s.end, end)
		if s.start >= s.end {
			continue
		}
		out = append(out, span{start: s.start - start, end: s.end - start})
	}
	return string(w.buf[start:end]), out
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' || b == '$'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}
