package highlight

import (
	"bufio"
	"io"

	"github.com/fatih/color"

	"github.com/r9s-ai/reindent/internal/format"
)

// Styles maps token kinds to terminal colors. Kinds without a style are
// written uncolored.
type Styles map[Kind]*color.Color

// DefaultStyles returns a fresh set of colors; callers may modify it.
func DefaultStyles() Styles {
	return Styles{
		Keyword:  color.New(color.FgMagenta, color.Bold),
		String:   color.New(color.FgGreen),
		Number:   color.New(color.FgYellow),
		Comment:  color.New(color.FgHiBlack),
		Operator: color.New(color.FgCyan),
		Type:     color.New(color.FgBlue, color.Bold),
		Property: color.New(color.FgHiCyan),
	}
}

// Render writes src to w, wrapping each token in its style. With enabled
// false every style is switched off and src is written unchanged; the
// decision overrides the color package's own terminal detection.
func Render(w io.Writer, src string, tokens []Token, styles Styles, enabled bool) error {
	for _, c := range styles {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	bw := bufio.NewWriter(w)
	pos := 0
	for _, t := range tokens {
		if t.Offset < pos || t.Offset+t.Len > len(src) {
			continue
		}
		if _, err := bw.WriteString(src[pos:t.Offset]); err != nil {
			return err
		}
		text := src[t.Offset : t.Offset+t.Len]
		if c := styles[t.Kind]; c != nil {
			text = c.Sprint(text)
		}
		if _, err := bw.WriteString(text); err != nil {
			return err
		}
		pos = t.Offset + t.Len
	}
	if _, err := bw.WriteString(src[pos:]); err != nil {
		return err
	}
	return bw.Flush()
}

// Highlight tokenizes src as v and renders it with the default styles.
func Highlight(w io.Writer, src string, v format.Variant, enabled bool) error {
	return Render(w, src, Tokens(src, v), DefaultStyles(), enabled)
}
