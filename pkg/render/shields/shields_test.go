package shields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glyphmark/glyphmark/pkg/primitive"
)

func TestRenderStatus(t *testing.T) {
	asset, err := New().Render(primitive.Status{Label: "build", Message: "passing", Color: "00aa00"})
	require.NoError(t, err)

	md := asset.Markdown()
	assert.Equal(t, "![build](https://img.shields.io/badge/build-passing-00aa00?style=flat)", md)
}

func TestRenderStatusEscaping(t *testing.T) {
	asset, err := New().Render(primitive.Status{Label: "unit-tests", Message: "all green", Color: "00aa00"})
	require.NoError(t, err)

	md := asset.Markdown()
	assert.Contains(t, md, "unit--tests", "dashes are doubled for shields paths")
	assert.Contains(t, md, "all%20green", "spaces are percent-encoded")
}

func TestRenderTech(t *testing.T) {
	asset, err := New().Render(primitive.Tech{Name: "go", Color: "00add8"})
	require.NoError(t, err)

	assert.Equal(t, "![go](https://img.shields.io/badge/go-00add8?style=flat)", asset.Markdown())
}

func TestRenderSwatch(t *testing.T) {
	asset, err := New().Render(primitive.Swatch{Color: "dc143c"})
	require.NoError(t, err)

	md := asset.Markdown()
	assert.Contains(t, md, "%23dc143c", "hash is percent-encoded")
	assert.Contains(t, md, "-dc143c?", "badge color has no hash")
}

func TestRenderDivider(t *testing.T) {
	cases := map[string]string{
		"line":  "\n---\n",
		"dots":  "\n· · ·\n",
		"thick": "\n***\n",
	}
	for style, want := range cases {
		asset, err := New().Render(primitive.Divider{Style: style})
		require.NoError(t, err)
		assert.Equal(t, want, asset.Markdown())
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := New()
	p := primitive.Status{Label: "a", Message: "b", Color: "112233"}

	first, err := r.Render(p)
	require.NoError(t, err)
	second, err := r.Render(p)
	require.NoError(t, err)
	assert.Equal(t, first.Markdown(), second.Markdown())
}

func TestRenderNoStyleSuffix(t *testing.T) {
	r := &Renderer{}
	asset, err := r.Render(primitive.Tech{Name: "go", Color: "00add8"})
	require.NoError(t, err)
	assert.NotContains(t, asset.Markdown(), "?style=")
}
