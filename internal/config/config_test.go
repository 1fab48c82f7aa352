package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r9s-ai/reindent/internal/format"
)

func writeProject(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeProject(t, root, "[format]\ntab_size = 4\nuse_tabs = true\nlanguage = \"tsx\"\n\n[extensions]\n\".es6\" = \"javascript\"\n\n[http]\naddr = \":9000\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	p, ok, err := Discover(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, path, p.Path)
	assert.Equal(t, root, p.Root)
	assert.Equal(t, map[string]any{
		"tab-size": 4,
		"tabs":     true,
		"lang":     "tsx",
		"addr":     ":9000",
	}, p.Values())
	assert.Equal(t, map[string]format.Variant{".es6": format.JavaScript}, p.ExtensionVariants())
}

func TestDiscoverWithoutFile(t *testing.T) {
	p, ok, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, p)
	assert.Empty(t, p.Values())
	assert.Nil(t, p.ExtensionVariants())
}

func TestLoadOnlyReportsDefinedKeys(t *testing.T) {
	path := writeProject(t, t.TempDir(), "[format]\nuse_tabs = false\n")
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"tabs": false}, p.Values())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"tab size", "[format]\ntab_size = 0\n", "[format].tab_size must be between 1 and 16"},
		{"language", "[format]\nlanguage = \"cobol\"\n", "unknown language \"cobol\""},
		{"max bytes", "[format]\nmax_bytes = -1\n", "[format].max_bytes must be positive"},
		{"extension dot", "[extensions]\nes6 = \"javascript\"\n", "must start with '.'"},
		{"extension language", "[extensions]\n\".x\" = \"nope\"\n", "unknown language \"nope\""},
		{"unknown key", "[format]\nwidth = 2\n", "unknown key format.width"},
		{"syntax", "[format\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProject(t, t.TempDir(), tt.body)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), path)
		})
	}
}
