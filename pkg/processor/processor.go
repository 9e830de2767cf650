// Package processor walks a document, recognizes tags, and drives the
// priority-ordered dispatch that turns them into expanded output. It
// owns the open-tag stack for generic closers and the recursion depth
// cap that protects against self-referential component templates.
package processor

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"github.com/rs/zerolog"

	"github.com/glyphmark/glyphmark/pkg/convert"
	"github.com/glyphmark/glyphmark/pkg/errors"
	"github.com/glyphmark/glyphmark/pkg/expand"
	"github.com/glyphmark/glyphmark/pkg/internal/hashutil"
	"github.com/glyphmark/glyphmark/pkg/logging"
	"github.com/glyphmark/glyphmark/pkg/palette"
	"github.com/glyphmark/glyphmark/pkg/primitive"
	"github.com/glyphmark/glyphmark/pkg/registry"
	"github.com/glyphmark/glyphmark/pkg/render/shields"
	"github.com/glyphmark/glyphmark/pkg/scanner"
	"github.com/glyphmark/glyphmark/pkg/tag"
)

// DefaultMaxDepth caps recursive re-expansion.
const DefaultMaxDepth = 64

const maxSpacing = 16

// Processor is the dispatcher. It is safe for repeated Process calls;
// ExtendPalette must not run concurrently with an in-flight call.
type Processor struct {
	reg      *registry.Registry
	pal      *palette.Palette
	renderer primitive.Renderer
	maxDepth int
	ctx      registry.Context
	limits   registry.Limits
	log      zerolog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithRenderer swaps the primitive backend. The default renders
// shields.io markdown.
func WithRenderer(r primitive.Renderer) Option {
	return func(p *Processor) { p.renderer = r }
}

// WithMaxDepth overrides the recursion cap.
func WithMaxDepth(n int) Option {
	return func(p *Processor) { p.maxDepth = n }
}

// WithContext sets the context resolution happens in at the top level.
func WithContext(ctx registry.Context) Option {
	return func(p *Processor) { p.ctx = ctx }
}

// WithLimits sets content budgets. Zero fields are unlimited.
func WithLimits(l registry.Limits) Option {
	return func(p *Processor) { p.limits = l }
}

// New builds a Processor over an immutable registry. The palette
// overlay starts from the registry's builtin colors.
func New(reg *registry.Registry, opts ...Option) *Processor {
	p := &Processor{
		reg:      reg,
		pal:      palette.New(reg.Palette()),
		renderer: shields.New(),
		maxDepth: DefaultMaxDepth,
		ctx:      registry.ContextBlock,
		log:      logging.GetLogger("processor"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ExtendPalette layers caller color overrides over the builtin palette.
// Invalid colors reject the whole override set.
func (p *Processor) ExtendPalette(overrides map[string]string) error {
	return p.pal.Extend(overrides)
}

// Process expands source and returns the output text. The first error
// anywhere aborts the call; no partial output is returned.
func (p *Processor) Process(source string) (string, error) {
	out, _, err := p.ProcessWithAssets(source)
	return out, err
}

// ProcessWithAssets expands source and additionally returns file assets
// produced by the renderer, in production order.
func (p *Processor) ProcessWithAssets(source string) (string, []primitive.FileAsset, error) {
	done := logging.LogOperationStart(p.log, "process")
	defer done()

	p.log.Debug().Int("bytes", len(source)).Msg("processing document")
	ps := &pass{p: p}
	out, err := ps.run(source, 0)
	if err != nil {
		p.log.Debug().Err(err).Msg("processing aborted")
		return "", nil, err
	}
	return out, ps.assets, nil
}

// pass carries the per-call state of one top-level Process invocation.
type pass struct {
	p      *Processor
	assets []primitive.FileAsset
}

// openTag is one entry of the generic-closer stack. Output produced
// while the entry is open accumulates in buf, so the content handed to
// the component expander is already fully processed.
type openTag struct {
	t   *tag.Tag
	buf strings.Builder
}

// run expands one self-contained piece of text. Frame bodies, component
// templates and partials re-enter here with depth+1.
func (ps *pass) run(source string, depth int) (string, error) {
	if depth > ps.p.maxDepth {
		return "", errors.Newf(errors.ErrExpansionLimitExceeded,
			"expansion exceeded %d levels", ps.p.maxDepth)
	}

	spans := scanner.Scan(source)
	var root strings.Builder
	var stack []*openTag

	// out returns the sink for the innermost open generic tag, or the
	// document itself.
	out := func() *strings.Builder {
		if n := len(stack); n > 0 {
			return &stack[n-1].buf
		}
		return &root
	}

	i := 0
	for i < len(source) {
		if si := spans.At(i); si != -1 && spans[si].Kind == scanner.SpanCode {
			out().WriteString(source[i:spans[si].End])
			i = spans[si].End
			continue
		}

		end := len(source)
		if si := spans.At(i); si != -1 {
			end = spans[si].End
		}
		rel := strings.Index(source[i:end], tag.OpenDelim)
		if rel == -1 {
			out().WriteString(source[i:end])
			i = end
			continue
		}
		out().WriteString(source[i : i+rel])
		i += rel

		if strings.HasPrefix(source[i:], tag.CloserStart) {
			next, err := ps.closeGeneric(source, i, depth, &stack, out)
			if err != nil {
				return "", err
			}
			i = next
			continue
		}

		t, err := tag.ParseAt(source, i, spans)
		if err != nil {
			return "", err
		}
		rendered, err := ps.dispatch(source, t, depth)
		if err != nil {
			return "", err
		}
		if t.Policy == tag.CloserGeneric && !t.SelfClosing {
			stack = append(stack, &openTag{t: t})
		} else {
			out().WriteString(rendered)
		}
		i = t.End
	}

	if n := len(stack); n > 0 {
		top := stack[n-1]
		return "", errors.Newf(errors.ErrUnclosedTag, "tag %q is never closed", top.t.Qualified()).
			WithName(top.t.Qualified()).
			WithOffset(top.t.Start)
	}
	return root.String(), nil
}

// closeGeneric handles a {{/name}} closer met during the walk. Specific
// closers are consumed by tag parsing, so any closer seen here either
// pops the generic stack or is stray.
func (ps *pass) closeGeneric(source string, pos, depth int, stack *[]*openTag, out func() *strings.Builder) (int, error) {
	name, end, err := tag.ParseCloser(source, pos)
	if err != nil {
		return 0, err
	}
	if name != tag.NamespaceUI || len(*stack) == 0 {
		return 0, errors.Newf(errors.ErrMismatchedClosingTag,
			"closing tag {{/%s}} has no matching open tag", name).
			WithDetail("found", name).
			WithOffset(pos)
	}

	n := len(*stack)
	top := (*stack)[n-1]
	*stack = (*stack)[:n-1]

	content := top.buf.String()
	rendered, err := ps.component(top.t, &content, depth)
	if err != nil {
		return 0, err
	}
	out().WriteString(rendered)
	return end, nil
}

// dispatch routes one parsed tag by its fixed priority order. Generic
// open tags return no output here; the caller pushes them instead.
func (ps *pass) dispatch(source string, t *tag.Tag, depth int) (string, error) {
	switch t.Namespace {
	case tag.NamespaceUI:
		if !t.SelfClosing {
			return "", nil
		}
		return ps.component(t, nil, depth)
	case tag.NamespaceFrame:
		return ps.frame(source, t, depth)
	case tag.NamespaceBadge:
		return ps.badge(source, t)
	case tag.NamespaceShields:
		return ps.shieldsPrimitive(t)
	case tag.NamespacePartial:
		return ps.partial(t, depth)
	default:
		return ps.style(source, t)
	}
}

// component expands one ui component invocation. Content is nil for the
// self-closing shape.
func (ps *pass) component(t *tag.Tag, content *string, depth int) (string, error) {
	def, err := ps.p.reg.Component(t.Name, ps.p.ctx)
	if err != nil {
		return "", withOffset(err, t.Start)
	}

	out, err := expand.Component(def, expand.Call{Args: t.Args, Params: t.Params, Content: content}, ps.p.pal)
	if err != nil {
		return "", withOffset(err, t.Start)
	}
	if !out.IsTemplate() {
		return ps.render(out.Primitive, t.Start)
	}

	s, err := ps.run(out.Template, depth+1)
	if err != nil {
		return "", anchor(err, t.Start)
	}
	if out.Post != nil && out.Post.Timing == registry.PostExpand {
		s, err = expand.ApplyTransform(out.Post.Kind, s)
		if err != nil {
			return "", withOffset(err, t.Start)
		}
	}
	return s, nil
}

// frame resolves the definition, fully processes the body first, then
// wraps it in the frame's chrome.
func (ps *pass) frame(source string, t *tag.Tag, depth int) (string, error) {
	def, err := ps.p.reg.Frame(t.Name, registry.ContextBlock)
	if err != nil {
		return "", withOffset(err, t.Start)
	}
	if max := ps.p.limits.MaxLength; max > 0 && utf8.RuneCountInString(def.Prefix+def.Suffix) > max {
		return "", errors.Newf(errors.ErrInvalidInput,
			"frame %q chrome exceeds the %d character budget", def.Name, max).
			WithName(def.Name).
			WithOffset(t.Start)
	}

	body, err := ps.run(t.Body(source), depth+1)
	if err != nil {
		return "", rebase(err, t.BodyStart, t.Start)
	}
	return def.Prefix + body + def.Suffix, nil
}

// badge maps exactly one character through the badge's charset. Content
// is never recursively processed.
func (ps *pass) badge(source string, t *tag.Tag) (string, error) {
	def, err := ps.p.reg.Badge(t.Name, registry.ContextInline)
	if err != nil {
		return "", withOffset(err, t.Start)
	}

	body := t.Body(source)
	r, size := utf8.DecodeRuneInString(body)
	if body == "" || size != len(body) {
		return "", errors.Newf(errors.ErrUnsupportedChar,
			"badge %q takes exactly one character, got %q", def.Name, body).
			WithName(def.Name).
			WithOffset(t.Start)
	}
	mapped, ok := def.Map[r]
	if !ok {
		return "", errors.Newf(errors.ErrUnsupportedChar,
			"badge %q has no mapping for %q", def.Name, string(r)).
			WithName(def.Name).
			WithDetail("char", string(r)).
			WithOffset(t.Start)
	}
	return string(mapped), nil
}

// shieldsPrimitive builds a Primitive directly from a self-closing
// shields tag and hands it to the renderer.
func (ps *pass) shieldsPrimitive(t *tag.Tag) (string, error) {
	def, err := ps.p.reg.Component(t.Name, registry.ContextInline)
	if err != nil {
		return "", withOffset(err, t.Start)
	}
	if def.Native == "" {
		return "", errors.Newf(errors.ErrInvalidParameterValue,
			"component %q is not a primitive and cannot render through shields", def.Name).
			WithName(def.Name).
			WithOffset(t.Start)
	}
	if !t.SelfClosing {
		return "", errors.Newf(errors.ErrComponentShapeMismatch,
			"shields tags are self-closing, write {{shields:%s:.../}}", t.Name).
			WithName(t.Name).
			WithOffset(t.Start)
	}

	out, err := expand.Component(def, expand.Call{Args: t.Args, Params: t.Params}, ps.p.pal)
	if err != nil {
		return "", withOffset(err, t.Start)
	}
	return ps.render(out.Primitive, t.Start)
}

// partial splices a named template, fully re-expanded.
func (ps *pass) partial(t *tag.Tag, depth int) (string, error) {
	if !t.SelfClosing {
		return "", errors.Newf(errors.ErrInvalidTagSyntax,
			"partial %q must be self-closing", t.Name).
			WithName(t.Name).
			WithOffset(t.Start)
	}
	def, err := ps.p.reg.Partial(t.Name, ps.p.ctx)
	if err != nil {
		return "", withOffset(err, t.Start)
	}
	s, err := ps.run(def.Template, depth+1)
	if err != nil {
		return "", anchor(err, t.Start)
	}
	return s, nil
}

// style converts the tag body through a style's character tables. The
// body is terminal text and is not re-scanned for tags.
func (ps *pass) style(source string, t *tag.Tag) (string, error) {
	sep, spacing, err := ps.styleParams(t)
	if err != nil {
		return "", err
	}

	def, err := ps.p.reg.Style(t.Name, registry.ContextInline)
	if err != nil {
		return "", withOffset(err, t.Start)
	}

	body := t.Body(source)
	if max := ps.p.limits.MaxGraphemes; max > 0 && uniseg.GraphemeClusterCount(body) > max {
		return "", errors.Newf(errors.ErrInvalidInput,
			"styled content exceeds the %d character budget", max).
			WithName(def.Name).
			WithOffset(t.Start)
	}

	if sep != "" {
		return convert.ConvertWithSeparator(body, def, sep), nil
	}
	return convert.ConvertWithSpacing(body, def, spacing), nil
}

// styleParams validates the mutually exclusive separator= and spacing=
// parameters.
func (ps *pass) styleParams(t *tag.Tag) (sep string, spacing int, err error) {
	sepValue, hasSep := t.Params["separator"]
	spacingValue, hasSpacing := t.Params["spacing"]

	for key := range t.Params {
		if key != "separator" && key != "spacing" {
			return "", 0, errors.Newf(errors.ErrInvalidParameterValue,
				"style %q does not take a %q parameter", t.Name, key).
				WithDetail("param", key).
				WithOffset(t.Start)
		}
	}
	if hasSep && hasSpacing {
		return "", 0, errors.New(errors.ErrInvalidParameterValue,
			"separator= and spacing= are mutually exclusive").
			WithDetail("param", "separator").
			WithOffset(t.Start)
	}

	if hasSep {
		sep, err = ps.p.reg.ResolveSeparator(sepValue)
		if err != nil {
			return "", 0, withOffset(err, t.Start)
		}
		return sep, 0, nil
	}
	if hasSpacing {
		n, convErr := strconv.Atoi(spacingValue)
		if convErr != nil || n < 0 || n > maxSpacing {
			return "", 0, errors.Newf(errors.ErrInvalidParameterValue,
				"spacing must be a number between 0 and %d, got %q", maxSpacing, spacingValue).
				WithDetail("param", "spacing").
				WithOffset(t.Start)
		}
		return "", n, nil
	}
	return "", 0, nil
}

// render hands one primitive to the backend and splices its markdown.
// File assets are collected out-of-band in production order.
func (ps *pass) render(p primitive.Primitive, offset int) (string, error) {
	asset, err := ps.p.renderer.Render(p)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrBackend, "rendering %s", p.Kind()).
			WithOffset(offset)
	}
	if fa, ok := asset.(primitive.FileAsset); ok {
		ps.p.log.Debug().
			Str("asset", fa.RelativePath).
			Str("checksum", hashutil.Checksum(fa.Bytes)).
			Msg("asset produced")
		ps.assets = append(ps.assets, fa)
	}
	return asset.Markdown(), nil
}

// withOffset stamps the tag offset onto errors from collaborators that
// have no position of their own.
func withOffset(err error, offset int) error {
	if ge, ok := err.(*errors.GlyphError); ok && ge.Offset < 0 {
		return ge.WithOffset(offset)
	}
	return err
}

// rebase shifts a body-relative error offset back into the enclosing
// source, so diagnostics from frame bodies point at document positions.
// Errors without a position anchor at fallback.
func rebase(err error, delta, fallback int) error {
	ge, ok := err.(*errors.GlyphError)
	if !ok {
		return err
	}
	if ge.Offset < 0 {
		return ge.WithOffset(fallback)
	}
	return ge.WithOffset(ge.Offset + delta)
}

// anchor pins errors from synthetic template re-scans to the invoking
// tag. Template-relative offsets mean nothing to the document author.
func anchor(err error, offset int) error {
	if ge, ok := err.(*errors.GlyphError); ok {
		return ge.WithOffset(offset)
	}
	return err
}
