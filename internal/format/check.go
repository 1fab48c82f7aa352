package format

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Issue is a structural problem in the input. Format tolerates all of them;
// Check reports them so editors can surface diagnostics.
type Issue struct {
	Offset  int    `json:"offset"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%d:%d: %s", i.Line+1, i.Column+1, i.Message)
}

// Check scans src the way Format would and returns the unbalanced braces,
// mismatched tags, unterminated strings and comments it met, ordered by
// offset. Line and Column are zero-based byte positions.
func Check(src string, v Variant) (issues []Issue) {
	report := func(offset int, msg string) {
		line, col := locate(src, offset)
		issues = append(issues, Issue{Offset: offset, Line: line, Column: col, Message: msg})
	}
	defer func() {
		if r := recover(); r != nil {
			issues = []Issue{{Message: fmt.Sprintf("error checking %s: %v", v, r)}}
		}
	}()

	switch v {
	case JSON:
		checkData(src, report)
	case JSX, TSX:
		formatMarkup(src, "", report)
	default:
		formatBraces(src, "", report)
	}
	sort.SliceStable(issues, func(a, b int) bool { return issues[a].Offset < issues[b].Offset })
	return issues
}

func checkData(src string, report issueFunc) {
	if strings.TrimSpace(src) == "" {
		return
	}
	var v any
	err := json.Unmarshal([]byte(src), &v)
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		report(max(int(syntaxErr.Offset)-1, 0), "invalid JSON: "+syntaxErr.Error())
	}
}

func locate(src string, offset int) (line, col int) {
	offset = min(max(offset, 0), len(src))
	head := src[:offset]
	line = strings.Count(head, "\n")
	col = offset - (strings.LastIndexByte(head, '\n') + 1)
	return line, col
}
