package lsp

import (
	"encoding/json"

	"github.com/r9s-ai/reindent/internal/driver"
	"github.com/r9s-ai/reindent/internal/format"
)

type formattingOptions struct {
	TabSize      int  `json:"tabSize"`
	InsertSpaces bool `json:"insertSpaces"`
}

type documentFormattingParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
	Options      formattingOptions      `json:"options"`
}

type textEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

func (s *Server) handleFormatting(id *json.RawMessage, params json.RawMessage) error {
	var p documentFormattingParams
	if err := json.Unmarshal(params, &p); err != nil {
		return s.replyError(id, codeInvalidParams, "invalid params for formatting")
	}
	doc, ok := s.docs[p.TextDocument.URI]
	if !ok {
		return s.reply(id, []textEdit{})
	}

	formatted, err := driver.FormatSource(doc.text, formatConfig(doc.variant, p.Options))
	if err != nil {
		return s.replyError(id, codeInternalError, err.Error())
	}
	if formatted == doc.text {
		return s.reply(id, []textEdit{})
	}
	return s.reply(id, []textEdit{{
		Range:   Range{End: endPosition(doc.text)},
		NewText: formatted,
	}})
}

func formatConfig(v format.Variant, opts formattingOptions) format.Config {
	return format.Config{
		Variant:     v,
		IndentWidth: opts.TabSize,
		UseSpaces:   opts.InsertSpaces,
	}
}

func endPosition(text string) Position {
	line := 0
	col := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return Position{Line: line, Character: col}
}
