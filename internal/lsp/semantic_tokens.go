package lsp

import (
	"encoding/json"

	"fortio.org/safecast"

	"github.com/r9s-ai/reindent/internal/format"
	"github.com/r9s-ai/reindent/internal/highlight"
)

// Token type indexes are highlight.Kind values; every kind name is a
// standard LSP semantic token type.
var semanticTokenLegendTypes = highlight.Legend()

type semanticTokensLegend struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

type semanticTokensOptions struct {
	Legend semanticTokensLegend `json:"legend"`
	Full   bool                 `json:"full"`
}

type semanticTokens struct {
	Data []uint32 `json:"data"`
}

type semanticTokensParams struct {
	TextDocument textDocumentIdentifier `json:"textDocument"`
}

type semanticSpan struct {
	line   int
	start  int
	length int
	typ    int
}

func (s *Server) handleSemanticTokens(id *json.RawMessage, params json.RawMessage) error {
	var p semanticTokensParams
	if err := json.Unmarshal(params, &p); err != nil {
		return s.replyError(id, codeInvalidParams, "invalid params for semanticTokens")
	}
	doc := s.docs[p.TextDocument.URI]
	res, err := semanticTokensFull(doc.text, doc.variant)
	if err != nil {
		return s.replyError(id, codeInternalError, err.Error())
	}
	return s.reply(id, res)
}

func semanticTokensFull(text string, v format.Variant) (semanticTokens, error) {
	toks := highlight.Tokens(text, v)
	spans := make([]semanticSpan, 0, len(toks))
	for _, t := range toks {
		spans = append(spans, semanticSpan{line: t.Line, start: t.Col, length: t.Len, typ: int(t.Kind)})
	}
	data, err := encodeSemanticSpans(spans)
	if err != nil {
		return semanticTokens{}, err
	}
	if data == nil {
		data = []uint32{}
	}
	return semanticTokens{Data: data}, nil
}

func encodeSemanticSpans(spans []semanticSpan) ([]uint32, error) {
	if len(spans) == 0 {
		return nil, nil
	}
	data := make([]uint32, 0, len(spans)*5)
	prevLine := 0
	prevStart := 0
	for i, s := range spans {
		lineDelta := s.line
		startDelta := s.start
		if i > 0 {
			lineDelta = s.line - prevLine
			if lineDelta == 0 {
				startDelta = s.start - prevStart
			}
		}
		for _, n := range [...]int{lineDelta, startDelta, s.length, s.typ} {
			u, err := safecast.Conv[uint32](n)
			if err != nil {
				return nil, err
			}
			data = append(data, u)
		}
		data = append(data, 0)
		prevLine = s.line
		prevStart = s.start
	}
	return data, nil
}
