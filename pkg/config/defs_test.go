package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glyphmark/glyphmark/pkg/errors"
	"github.com/glyphmark/glyphmark/pkg/registry"
)

func TestBuiltinDefinitions(t *testing.T) {
	defs, err := BuiltinDefinitions()
	require.NoError(t, err)

	reg, err := registry.New(defs)
	require.NoError(t, err)

	t.Run("mathbold style", func(t *testing.T) {
		style, err := reg.Style("mathbold", registry.ContextInline)
		require.NoError(t, err)
		assert.Equal(t, "\U0001D400", style.Upper['A'])
		assert.Equal(t, "\U0001D433", style.Lower['z'])
		assert.Equal(t, "\U0001D7CE", style.Digit['0'])
	})

	t.Run("aliases resolve", func(t *testing.T) {
		style, err := reg.Style("MB", registry.ContextInline)
		require.NoError(t, err)
		assert.Equal(t, "mathbold", style.Name)
	})

	t.Run("script has no digits", func(t *testing.T) {
		style, err := reg.Style("script", registry.ContextInline)
		require.NoError(t, err)
		assert.Empty(t, style.Digit)
	})

	t.Run("circle badge covers digits", func(t *testing.T) {
		badge, err := reg.Badge("circle", registry.ContextInline)
		require.NoError(t, err)
		assert.Equal(t, 'Ⓐ', badge.Map['A'])
		assert.Equal(t, '⓪', badge.Map['0'])
	})

	t.Run("square badge is uppercase only", func(t *testing.T) {
		badge, err := reg.Badge("square", registry.ContextInline)
		require.NoError(t, err)
		assert.Len(t, badge.Map, 26)
		_, ok := badge.Map['a']
		assert.False(t, ok)
	})

	t.Run("divider defaults to line", func(t *testing.T) {
		comp, err := reg.Component("divider", registry.ContextBlock)
		require.NoError(t, err)
		assert.Equal(t, "divider", comp.Native)
		assert.True(t, comp.SelfClosing)
		assert.Equal(t, "line", comp.Defaults[1])
	})

	t.Run("quote transform runs before re-expansion", func(t *testing.T) {
		comp, err := reg.Component("quote", registry.ContextBlock)
		require.NoError(t, err)
		require.NotNil(t, comp.Post)
		assert.Equal(t, "blockquote", comp.Post.Kind)
		assert.Equal(t, registry.PreExpand, comp.Post.Timing)
	})

	t.Run("palette carries builtin colors", func(t *testing.T) {
		assert.Equal(t, "dc143c", defs.Palette["crimson"])
	})

	t.Run("separators usable inline", func(t *testing.T) {
		sep, err := reg.ResolveSeparator("arrow")
		require.NoError(t, err)
		assert.Equal(t, "→", sep)
	})
}

func TestParseDefinitionsErrors(t *testing.T) {
	t.Run("malformed toml", func(t *testing.T) {
		_, err := ParseDefinitions([]byte("[[styles]\nname="), "toml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := ParseDefinitions([]byte("{}"), "json")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("short style alphabet", func(t *testing.T) {
		src := `
[[styles]]
name = "stub"
upper = "ABC"
`
		_, err := ParseDefinitions([]byte(src), "toml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("badge length mismatch", func(t *testing.T) {
		src := `
[[badges]]
name = "stub"
from = "AB"
to = "X"
`
		_, err := ParseDefinitions([]byte(src), "toml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("component with template and native", func(t *testing.T) {
		src := `
[[components]]
name = "stub"
template = "$content"
native = "swatch"
`
		_, err := ParseDefinitions([]byte(src), "toml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("unknown native kind", func(t *testing.T) {
		src := `
[[components]]
name = "stub"
native = "gauge"
`
		_, err := ParseDefinitions([]byte(src), "toml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("bad default index", func(t *testing.T) {
		src := `
[[components]]
name = "stub"
native = "divider"
defaults = { 0 = "line" }
`
		_, err := ParseDefinitions([]byte(src), "toml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("unknown context", func(t *testing.T) {
		src := `
[[frames]]
name = "stub"
prefix = "< "
suffix = " >"
contexts = ["margin"]
`
		_, err := ParseDefinitions([]byte(src), "toml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestLoadDefinitionsFileYAML(t *testing.T) {
	src := `
palette:
  neon: "39ff14"
styles:
  - name: wide
    upper: "ＡＢＣＤＥＦＧＨＩＪＫＬＭＮＯＰＱＲＳＴＵＶＷＸＹＺ"
separators:
  - name: slash
    char: "/"
`
	path := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	defs, err := LoadDefinitionsFile(path)
	require.NoError(t, err)
	require.Len(t, defs.Styles, 1)
	assert.Equal(t, "Ａ", defs.Styles[0].Upper['A'])
	assert.Equal(t, "39ff14", defs.Palette["neon"])
}

func TestLoadDefinitionsFileMissing(t *testing.T) {
	_, err := LoadDefinitionsFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestMerge(t *testing.T) {
	base, err := BuiltinDefinitions()
	require.NoError(t, err)

	extra := &registry.Definitions{
		Separators: []registry.SeparatorDef{{Name: "tilde", Char: "~", Contexts: []registry.Context{registry.ContextInline}}},
		Palette:    map[string]string{"crimson": "ff0000", "neon": "39ff14"},
	}
	merged := Merge(base, extra)

	assert.Len(t, merged.Separators, len(base.Separators)+1)
	assert.Equal(t, "ff0000", merged.Palette["crimson"])
	assert.Equal(t, "39ff14", merged.Palette["neon"])
	// base palette is untouched
	assert.Equal(t, "dc143c", base.Palette["crimson"])

	reg, err := registry.New(merged)
	require.NoError(t, err)
	sep, err := reg.ResolveSeparator("tilde")
	require.NoError(t, err)
	assert.Equal(t, "~", sep)
}
