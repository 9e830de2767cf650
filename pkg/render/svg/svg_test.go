package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glyphmark/glyphmark/pkg/primitive"
)

func TestRenderSwatchProducesFileAsset(t *testing.T) {
	asset, err := New().Render(primitive.Swatch{Color: "dc143c"})
	require.NoError(t, err)

	file, ok := asset.(primitive.FileAsset)
	require.True(t, ok, "svg renderer must produce file assets")

	assert.True(t, strings.HasPrefix(file.RelativePath, "assets/swatch-"))
	assert.True(t, strings.HasSuffix(file.RelativePath, ".svg"))
	assert.Contains(t, string(file.Bytes), `fill="#dc143c"`)
	assert.Contains(t, string(file.Bytes), "<svg")
	assert.Equal(t, "![#dc143c]("+file.RelativePath+")", file.MarkdownRef)
}

func TestRenderIsDeterministic(t *testing.T) {
	r := New()
	p := primitive.Tech{Name: "go", Color: "00add8"}

	first, err := r.Render(p)
	require.NoError(t, err)
	second, err := r.Render(p)
	require.NoError(t, err)

	f1 := first.(primitive.FileAsset)
	f2 := second.(primitive.FileAsset)
	assert.Equal(t, f1.RelativePath, f2.RelativePath, "names are content-addressed")
	assert.Equal(t, f1.Bytes, f2.Bytes)
}

func TestRenderDistinctContentDistinctNames(t *testing.T) {
	r := New()

	a, err := r.Render(primitive.Swatch{Color: "dc143c"})
	require.NoError(t, err)
	b, err := r.Render(primitive.Swatch{Color: "006994"})
	require.NoError(t, err)

	assert.NotEqual(t,
		a.(primitive.FileAsset).RelativePath,
		b.(primitive.FileAsset).RelativePath)
}

func TestRenderDividerStyles(t *testing.T) {
	r := New()
	for _, style := range []string{"line", "dots", "thick"} {
		asset, err := r.Render(primitive.Divider{Style: style})
		require.NoError(t, err)

		file := asset.(primitive.FileAsset)
		assert.Contains(t, file.RelativePath, "divider-")
		assert.Contains(t, string(file.Bytes), "<line")
	}
}

func TestRenderStatusEmbedsText(t *testing.T) {
	asset, err := New().Render(primitive.Status{Label: "build", Message: "passing", Color: "00aa00"})
	require.NoError(t, err)

	file := asset.(primitive.FileAsset)
	assert.Contains(t, string(file.Bytes), "build: passing")
}

func TestCustomDir(t *testing.T) {
	r := &Renderer{Dir: "img/generated"}
	asset, err := r.Render(primitive.Swatch{Color: "dc143c"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(asset.(primitive.FileAsset).RelativePath, "img/generated/"))
}
