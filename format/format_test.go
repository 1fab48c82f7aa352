package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r9s-ai/reindent/format"
)

func TestPublicFormat(t *testing.T) {
	cfg := format.DefaultConfig()
	cfg.Variant = format.TSX

	res := format.Format("<div><span>hi</span></div>", cfg)
	require.True(t, res.OK(), res.Message())
	assert.Equal(t, "<div>\n  <span>\n    hi\n  </span>\n</div>", res.Text())

	res = format.FormatString("foo(1,2,3)", "js")
	assert.Equal(t, "foo(1, 2, 3)", res.Text())
}

func TestPublicVariantsAndCheck(t *testing.T) {
	v, ok := format.ParseVariant("typescriptreact")
	assert.True(t, ok)
	assert.Equal(t, format.TSX, v)

	v, ok = format.VariantForPath("src/app.jsonc")
	assert.True(t, ok)
	assert.Equal(t, format.JSON, v)

	issues := format.Check("{", format.JavaScript)
	require.Len(t, issues, 1)
	assert.Equal(t, "1:1: unclosed '{'", issues[0].String())
}
