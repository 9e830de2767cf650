// Package shields renders primitives as img.shields.io badge references
// spliced inline into the markdown output. It produces no file assets.
package shields

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/glyphmark/glyphmark/pkg/errors"
	"github.com/glyphmark/glyphmark/pkg/primitive"
)

const baseURL = "https://img.shields.io/badge"

// Renderer is stateless and safe for concurrent use.
type Renderer struct {
	// Style is the shields.io badge style ("flat", "flat-square",
	// "for-the-badge"). Empty means the service default.
	Style string
}

// New returns a shields renderer with the default badge style.
func New() *Renderer {
	return &Renderer{Style: "flat"}
}

// Render implements primitive.Renderer.
func (r *Renderer) Render(p primitive.Primitive) (primitive.RenderedAsset, error) {
	switch v := p.(type) {
	case primitive.Divider:
		return renderDivider(v)
	case primitive.Swatch:
		// A blank label with the hex as message renders a color chip.
		return r.badgePath("#"+v.Color, "%20-"+escape("#"+v.Color), v.Color), nil
	case primitive.Tech:
		return r.badgePath(v.Name, escape(v.Name), v.Color), nil
	case primitive.Status:
		path := fmt.Sprintf("%s-%s", escape(v.Label), escape(v.Message))
		return r.badgePath(v.Label, path, v.Color), nil
	default:
		return nil, errors.Newf(errors.ErrBackend, "shields renderer cannot render %q primitives", p.Kind())
	}
}

// dividerRules maps divider styles onto markdown separators.
var dividerRules = map[string]string{
	"line":  "\n---\n",
	"dots":  "\n· · ·\n",
	"thick": "\n***\n",
}

func renderDivider(d primitive.Divider) (primitive.RenderedAsset, error) {
	rule, ok := dividerRules[d.Style]
	if !ok {
		return nil, errors.Newf(errors.ErrBackend, "no divider rule for style %q", d.Style)
	}
	return primitive.InlineMarkdown(rule), nil
}

func (r *Renderer) badgePath(alt, path, color string) primitive.RenderedAsset {
	u := fmt.Sprintf("%s/%s-%s", baseURL, path, color)
	if r.Style != "" {
		u += "?style=" + url.QueryEscape(r.Style)
	}
	return primitive.InlineMarkdown(fmt.Sprintf("![%s](%s)", alt, u))
}

// escape applies shields.io path escaping: dashes and underscores are
// doubled, then the segment is percent-encoded.
func escape(s string) string {
	s = strings.ReplaceAll(s, "-", "--")
	s = strings.ReplaceAll(s, "_", "__")
	return url.PathEscape(s)
}
