// Package primitive defines the backend-neutral IR produced by the
// processor and the renderer boundary that turns it into markdown or
// external assets. Variants carry only semantic fields; rendering
// detail lives entirely behind the Renderer interface.
package primitive

// Primitive is a closed sum type; the dispatcher and renderers match it
// exhaustively.
type Primitive interface {
	isPrimitive()
	// Kind returns the stable variant name used in diagnostics and
	// asset file names.
	Kind() string
}

// Divider is a horizontal separation element.
type Divider struct {
	Style string // "line", "dots", "thick"
}

// Swatch is a color sample chip.
type Swatch struct {
	Color string // 6-digit lowercase hex, no '#'
}

// Tech is a technology label badge.
type Tech struct {
	Name  string
	Color string
}

// Status is a label/message pair badge.
type Status struct {
	Label   string
	Message string
	Color   string
}

func (Divider) isPrimitive() {}
func (Swatch) isPrimitive()  {}
func (Tech) isPrimitive()    {}
func (Status) isPrimitive()  {}

func (Divider) Kind() string { return "divider" }
func (Swatch) Kind() string  { return "swatch" }
func (Tech) Kind() string    { return "tech" }
func (Status) Kind() string  { return "status" }

// RenderedAsset is the only shape the core expects back from a
// Renderer.
type RenderedAsset interface {
	// Markdown returns the reference spliced into the output text.
	Markdown() string
}

// InlineMarkdown is markdown spliced directly in place of the tag.
type InlineMarkdown string

// Markdown implements RenderedAsset.
func (m InlineMarkdown) Markdown() string { return string(m) }

// FileAsset is an out-of-band produced file plus the markdown that
// references it.
type FileAsset struct {
	RelativePath string
	Bytes        []byte
	MarkdownRef  string
}

// Markdown implements RenderedAsset.
func (f FileAsset) Markdown() string { return f.MarkdownRef }

// Renderer turns one Primitive into a rendered asset. Implementations
// must be deterministic: identical primitives yield byte-identical
// assets and identical file names.
type Renderer interface {
	Render(p Primitive) (RenderedAsset, error)
}
