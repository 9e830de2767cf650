package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glyphmark/glyphmark/pkg/registry"
)

// tinyStyle maps A->𝐀, B->𝐁, a->𝐚, 1->𝟏 and nothing else.
func tinyStyle() *registry.StyleDef {
	return &registry.StyleDef{
		Name:  "mathbold",
		Upper: map[rune]string{'A': "\U0001D400", 'B': "\U0001D401"},
		Lower: map[rune]string{'a': "\U0001D41A"},
		Digit: map[rune]string{'1': "\U0001D7CF"},
	}
}

func TestConvert(t *testing.T) {
	style := tinyStyle()

	assert.Equal(t, "\U0001D400\U0001D401", Convert("AB", style))
	assert.Equal(t, "\U0001D41A", Convert("a", style))
	assert.Equal(t, "\U0001D7CF", Convert("1", style))
}

func TestConvertPassesThroughUnmapped(t *testing.T) {
	style := tinyStyle()

	assert.Equal(t, "\U0001D400 \U0001D401!", Convert("A B!", style))
	assert.Equal(t, "x y, z.", Convert("x y, z.", style), "fully unmapped text is unchanged")
	assert.Equal(t, "日本語", Convert("日本語", style))
}

func TestConvertEmpty(t *testing.T) {
	assert.Equal(t, "", Convert("", tinyStyle()))
}

func TestConvertWithSeparator(t *testing.T) {
	style := tinyStyle()

	assert.Equal(t, "\U0001D400·\U0001D401", ConvertWithSeparator("AB", style, "·"))
	assert.Equal(t, "\U0001D400", ConvertWithSeparator("A", style, "·"), "no separator after a lone character")
	assert.Equal(t, "\U0001D400· ·\U0001D401", ConvertWithSeparator("A B", style, "·"),
		"separator also surrounds pass-through characters")
}

func TestConvertWithSeparatorEmptyIsFastPath(t *testing.T) {
	style := tinyStyle()
	assert.Equal(t, Convert("AB", style), ConvertWithSeparator("AB", style, ""))
}

func TestConvertWithSpacing(t *testing.T) {
	style := tinyStyle()

	assert.Equal(t, "\U0001D400 \U0001D401", ConvertWithSpacing("AB", style, 1))
	assert.Equal(t, "\U0001D400   \U0001D401", ConvertWithSpacing("AB", style, 3))
	assert.Equal(t, Convert("AB", style), ConvertWithSpacing("AB", style, 0), "zero spacing is a no-op")
}
