package format

import (
	"regexp"
	"sort"
	"strings"
)

// edit replaces text[start:end].
type edit struct {
	start, end int
	text       string
}

type annotationRule struct {
	pattern *regexp.Regexp
	rewrite func(text string, loc []int) (edit, bool)
}

// Rules run in order; each sees the output of the previous one. Patterns only
// match blanks, never line breaks, so no rule joins lines.
var annotationRules = []annotationRule{
	{pattern: regexp.MustCompile(`:[ \t]*([^,\s)]+)`), rewrite: colonSpacing},
	{pattern: regexp.MustCompile(`[ \t]*=>[ \t]*`), rewrite: operatorSpacing(2)},
	{pattern: regexp.MustCompile(`[ \t]*\|[ \t]*`), rewrite: operatorSpacing(1)},
	{pattern: regexp.MustCompile(`[ \t]*&[ \t]*`), rewrite: operatorSpacing(1)},
}

// annotate normalizes spacing around type-annotation punctuation outside the
// given opaque spans.
func annotate(text string, spans []span) string {
	for _, r := range annotationRules {
		text, spans = r.apply(text, spans)
	}
	return strings.TrimSpace(text)
}

func (r annotationRule) apply(text string, spans []span) (string, []span) {
	matches := r.pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, spans
	}
	edits := make([]edit, 0, len(matches))
	// prevEnd and prevText describe the previous match as it will read after
	// this pass, so adjacent operators share one blank.
	prevEnd, prevText := -1, ""
	for _, loc := range matches {
		e, ok := r.rewrite(text, loc)
		if ok && overlaps(spans, e.start, e.end) {
			ok = false
		}
		if !ok {
			prevEnd, prevText = loc[1], text[loc[0]:loc[1]]
			continue
		}
		if e.start == prevEnd && strings.HasSuffix(prevText, " ") {
			e.text = strings.TrimPrefix(e.text, " ")
		}
		prevEnd, prevText = e.end, e.text
		if e.text != text[e.start:e.end] {
			edits = append(edits, e)
		}
	}
	return applyEdits(text, spans, edits)
}

// colonSpacing puts exactly one space between a colon and the value after it.
func colonSpacing(text string, loc []int) (edit, bool) {
	colon, value := loc[0], loc[2]
	if (colon > 0 && text[colon-1] == ':') || text[value] == ':' {
		return edit{}, false
	}
	return edit{start: colon, end: value, text: ": "}, true
}

// operatorSpacing surrounds a width-byte operator with single spaces. Leading
// indentation and line ends are kept as they are.
func operatorSpacing(width int) func(string, []int) (edit, bool) {
	return func(text string, loc []int) (edit, bool) {
		start, end := loc[0], loc[1]
		op := start
		for text[op] == ' ' || text[op] == '\t' {
			op++
		}
		if doubled(text, op, op+width) {
			return edit{}, false
		}
		var b strings.Builder
		if start == 0 || text[start-1] == '\n' {
			b.WriteString(text[start:op])
		} else {
			b.WriteByte(' ')
		}
		b.WriteString(text[op : op+width])
		if end < len(text) && text[end] != '\n' && text[end] != '\r' {
			b.WriteByte(' ')
		}
		return edit{start: start, end: end, text: b.String()}, true
	}
}

// doubled reports whether the operator at text[op:end] is part of a longer
// operator such as ||, &&, |=, &= or ==>.
func doubled(text string, op, end int) bool {
	var prev, next byte
	if op > 0 {
		prev = text[op-1]
	}
	if end < len(text) {
		next = text[end]
	}
	switch c := text[op]; c {
	case '|', '&':
		return prev == c || next == c || next == '='
	case '=':
		if prev == '>' && op >= 2 && text[op-2] == '=' {
			// the > closes a preceding =>
			return false
		}
		return prev == '=' || prev == '<' || prev == '>' || prev == '!'
	}
	return false
}

func overlaps(spans []span, start, end int) bool {
	k := sort.Search(len(spans), func(k int) bool { return spans[k].end > start })
	return k < len(spans) && spans[k].start < end
}

// applyEdits applies ascending, non-overlapping edits and shifts the spans to
// match the new text.
func applyEdits(text string, spans []span, edits []edit) (string, []span) {
	if len(edits) == 0 {
		return text, spans
	}
	var b strings.Builder
	b.Grow(len(text) + 2*len(edits))
	out := make([]span, 0, len(spans))
	pos, shift, k := 0, 0, 0
	for _, e := range edits {
		for ; k < len(spans) && spans[k].start < e.start; k++ {
			out = append(out, span{start: spans[k].start + shift, end: spans[k].end + shift})
		}
		b.WriteString(text[pos:e.start])
		b.WriteString(e.text)
		shift += len(e.text) - (e.end - e.start)
		pos = e.end
	}
	b.WriteString(text[pos:])
	for ; k < len(spans); k++ {
		out = append(out, span{start: spans[k].start + shift, end: spans[k].end + shift})
	}
	return b.String(), out
}
