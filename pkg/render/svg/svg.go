// Package svg renders primitives as standalone SVG file assets with
// content-addressed names, so repeated runs over the same input produce
// byte-identical files.
package svg

import (
	"fmt"
	"path"

	"github.com/beevik/etree"

	"github.com/glyphmark/glyphmark/pkg/errors"
	"github.com/glyphmark/glyphmark/pkg/internal/hashutil"
	"github.com/glyphmark/glyphmark/pkg/primitive"
)

const hashLen = 12

// Renderer builds SVG documents and returns them as file assets.
type Renderer struct {
	// Dir is the directory, relative to the output document, where
	// asset files are referenced from.
	Dir string
}

// New returns an SVG renderer referencing assets under "assets/".
func New() *Renderer {
	return &Renderer{Dir: "assets"}
}

// Render implements primitive.Renderer.
func (r *Renderer) Render(p primitive.Primitive) (primitive.RenderedAsset, error) {
	var doc *etree.Document
	var alt string

	switch v := p.(type) {
	case primitive.Swatch:
		doc = swatchDoc(v)
		alt = "#" + v.Color
	case primitive.Divider:
		doc = dividerDoc(v)
		alt = ""
	case primitive.Tech:
		doc = labelDoc(v.Name, v.Color)
		alt = v.Name
	case primitive.Status:
		doc = labelDoc(v.Label+": "+v.Message, v.Color)
		alt = v.Label
	default:
		return nil, errors.Newf(errors.ErrBackend, "svg renderer cannot render %q primitives", p.Kind())
	}

	doc.Indent(2)
	bytes, err := doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrBackend, "serializing svg document")
	}

	name := fmt.Sprintf("%s-%s.svg", p.Kind(), hashutil.ShortHash(bytes, hashLen))
	rel := path.Join(r.Dir, name)
	return primitive.FileAsset{
		RelativePath: rel,
		Bytes:        bytes,
		MarkdownRef:  fmt.Sprintf("![%s](%s)", alt, rel),
	}, nil
}

func newDoc(width, height int) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", fmt.Sprint(width))
	svg.CreateAttr("height", fmt.Sprint(height))
	return doc, svg
}

func swatchDoc(s primitive.Swatch) *etree.Document {
	doc, svg := newDoc(16, 16)
	rect := svg.CreateElement("rect")
	rect.CreateAttr("width", "16")
	rect.CreateAttr("height", "16")
	rect.CreateAttr("rx", "3")
	rect.CreateAttr("fill", "#"+s.Color)
	return doc
}

func dividerDoc(d primitive.Divider) *etree.Document {
	doc, svg := newDoc(600, 4)
	line := svg.CreateElement("line")
	line.CreateAttr("x1", "0")
	line.CreateAttr("y1", "2")
	line.CreateAttr("x2", "600")
	line.CreateAttr("y2", "2")
	line.CreateAttr("stroke", "#cccccc")
	switch d.Style {
	case "dots":
		line.CreateAttr("stroke-dasharray", "2 6")
		line.CreateAttr("stroke-width", "2")
	case "thick":
		line.CreateAttr("stroke-width", "4")
	default:
		line.CreateAttr("stroke-width", "1")
	}
	return doc
}

func labelDoc(text, color string) *etree.Document {
	// Crude width estimate; badges are decorative, not typeset.
	width := 20 + 8*len(text)
	doc, svg := newDoc(width, 24)
	rect := svg.CreateElement("rect")
	rect.CreateAttr("width", fmt.Sprint(width))
	rect.CreateAttr("height", "24")
	rect.CreateAttr("rx", "4")
	rect.CreateAttr("fill", "#"+color)
	label := svg.CreateElement("text")
	label.CreateAttr("x", fmt.Sprint(width/2))
	label.CreateAttr("y", "16")
	label.CreateAttr("text-anchor", "middle")
	label.CreateAttr("font-family", "Verdana,sans-serif")
	label.CreateAttr("font-size", "11")
	label.CreateAttr("fill", "#ffffff")
	label.SetText(text)
	return doc
}
