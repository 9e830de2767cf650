// Package convert applies a resolved style's character tables to text,
// optionally interleaving a separator or spacing between transformed
// characters. Characters without a mapping pass through unchanged,
// whitespace and punctuation included.
package convert

import (
	"strings"

	"github.com/glyphmark/glyphmark/pkg/registry"
)

// Convert maps each character of text through the style's case-specific
// table.
func Convert(text string, style *registry.StyleDef) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for _, r := range text {
		b.WriteString(mapRune(r, style))
	}
	return b.String()
}

// ConvertWithSeparator interleaves sep between transformed characters.
// An empty separator is a no-op fast path equivalent to Convert.
func ConvertWithSeparator(text string, style *registry.StyleDef, sep string) string {
	if sep == "" {
		return Convert(text, style)
	}
	var b strings.Builder
	b.Grow(len(text) * (2 + len(sep)))
	first := true
	for _, r := range text {
		if !first {
			b.WriteString(sep)
		}
		b.WriteString(mapRune(r, style))
		first = false
	}
	return b.String()
}

// ConvertWithSpacing interleaves n spaces between transformed
// characters. n == 0 is a no-op fast path equivalent to Convert.
func ConvertWithSpacing(text string, style *registry.StyleDef, n int) string {
	if n == 0 {
		return Convert(text, style)
	}
	return ConvertWithSeparator(text, style, strings.Repeat(" ", n))
}

func mapRune(r rune, style *registry.StyleDef) string {
	if s, ok := style.Upper[r]; ok {
		return s
	}
	if s, ok := style.Lower[r]; ok {
		return s
	}
	if s, ok := style.Digit[r]; ok {
		return s
	}
	return string(r)
}
