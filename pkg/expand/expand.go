// Package expand substitutes positional and content placeholders into a
// component's template, or builds a Primitive for native components,
// and applies declared pre/post expansion transforms.
package expand

import (
	"regexp"
	"strings"

	"github.com/glyphmark/glyphmark/pkg/errors"
	"github.com/glyphmark/glyphmark/pkg/palette"
	"github.com/glyphmark/glyphmark/pkg/primitive"
	"github.com/glyphmark/glyphmark/pkg/registry"
)

// Call is the shape of one component invocation. Content is nil for
// self-closing calls and the (already processed) inner text otherwise.
type Call struct {
	Args    []string
	Params  map[string]string
	Content *string
}

// Output is the result of one expansion step: either a Primitive for
// the renderer or a Template for recursive re-parsing. Post carries a
// declared PostExpand transform the processor applies after recursion.
type Output struct {
	Primitive primitive.Primitive
	Template  string
	Post      *registry.PostProcess
}

// IsTemplate reports whether the output needs recursive re-expansion.
func (o *Output) IsTemplate() bool { return o.Primitive == nil }

// Component expands one component invocation.
func Component(def *registry.ComponentDef, call Call, pal *palette.Palette) (*Output, error) {
	if def.SelfClosing && call.Content != nil {
		return nil, errors.Newf(errors.ErrComponentShapeMismatch,
			"component %q is self-closing and takes no content", def.Name).
			WithName(def.Name)
	}
	if !def.SelfClosing && call.Content == nil {
		return nil, errors.Newf(errors.ErrComponentShapeMismatch,
			"component %q requires content", def.Name).
			WithName(def.Name)
	}

	if def.Native != "" {
		p, err := buildNative(def, call, pal)
		if err != nil {
			return nil, err
		}
		return &Output{Primitive: p, Post: def.Post}, nil
	}

	s, err := substitute(def, call, pal)
	if err != nil {
		return nil, err
	}
	s, err = resolvePaletteTokens(s, pal)
	if err != nil {
		return nil, err
	}

	// PreExpand transforms run now, before the result is handed back
	// for recursive parsing. PostExpand ones are the processor's job.
	if def.Post != nil && def.Post.Timing == registry.PreExpand {
		s, err = ApplyTransform(def.Post.Kind, s)
		if err != nil {
			return nil, err
		}
		return &Output{Template: s}, nil
	}
	return &Output{Template: s, Post: def.Post}, nil
}

// arg fetches the 1-based positional argument, falling back to a
// declared default.
func arg(def *registry.ComponentDef, call Call, index int) (string, error) {
	if index <= len(call.Args) {
		return call.Args[index-1], nil
	}
	if v, ok := def.Defaults[index]; ok {
		return v, nil
	}
	return "", errors.Newf(errors.ErrMissingRequiredArg,
		"component %q requires argument %d", def.Name, index).
		WithName(def.Name).
		WithDetail("index", index)
}

// substitute replaces $1,$2,… and $content. Each positional argument is
// palette-resolved before substitution; non-color arguments pass
// through as written.
func substitute(def *registry.ComponentDef, call Call, pal *palette.Palette) (string, error) {
	tpl := def.Template
	var b strings.Builder
	b.Grow(len(tpl))

	for i := 0; i < len(tpl); {
		c := tpl[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}
		rest := tpl[i+1:]
		if strings.HasPrefix(rest, "content") {
			if def.SelfClosing {
				return "", errors.Newf(errors.ErrComponentShapeMismatch,
					"self-closing component %q references $content", def.Name).
					WithName(def.Name)
			}
			b.WriteString(*call.Content)
			i += 1 + len("content")
			continue
		}
		j := 0
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j == 0 {
			b.WriteByte(c)
			i++
			continue
		}
		index := 0
		for _, d := range rest[:j] {
			index = index*10 + int(d-'0')
		}
		value, err := arg(def, call, index)
		if err != nil {
			return "", err
		}
		b.WriteString(pal.ResolveLenient(value))
		i += 1 + j
	}
	return b.String(), nil
}

var paletteTokenRe = regexp.MustCompile(`\$palette\(([A-Za-z0-9_-]+)\)`)

// resolvePaletteTokens is the second pass: palette references embedded
// literally in the template body, resolved strictly.
func resolvePaletteTokens(s string, pal *palette.Palette) (string, error) {
	var firstErr error
	out := paletteTokenRe.ReplaceAllStringFunc(s, func(m string) string {
		name := paletteTokenRe.FindStringSubmatch(m)[1]
		hex, err := pal.Resolve(name)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return m
		}
		return hex
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// dividerStyles are the accepted divider variants.
var dividerStyles = map[string]bool{"line": true, "dots": true, "thick": true}

// buildNative constructs the Primitive for a native component.
func buildNative(def *registry.ComponentDef, call Call, pal *palette.Palette) (primitive.Primitive, error) {
	pick := func(param string, index int) (string, error) {
		if v, ok := call.Params[param]; ok {
			return v, nil
		}
		return arg(def, call, index)
	}
	color := func(param string, index int) (string, error) {
		v, err := pick(param, index)
		if err != nil {
			return "", err
		}
		return pal.Resolve(v)
	}

	switch def.Native {
	case "swatch":
		c, err := color("color", 1)
		if err != nil {
			return nil, err
		}
		return primitive.Swatch{Color: c}, nil

	case "divider":
		style, err := pick("style", 1)
		if err != nil {
			return nil, err
		}
		if !dividerStyles[style] {
			return nil, errors.Newf(errors.ErrInvalidParameterValue,
				"divider style %q is not one of line, dots, thick", style).
				WithDetail("param", "style")
		}
		return primitive.Divider{Style: style}, nil

	case "tech":
		name, err := pick("name", 1)
		if err != nil {
			return nil, err
		}
		c, err := color("color", 2)
		if err != nil {
			return nil, err
		}
		return primitive.Tech{Name: name, Color: c}, nil

	case "status":
		label, err := pick("label", 1)
		if err != nil {
			return nil, err
		}
		message, err := pick("message", 2)
		if err != nil {
			return nil, err
		}
		c, err := color("color", 3)
		if err != nil {
			return nil, err
		}
		return primitive.Status{Label: label, Message: message, Color: c}, nil

	default:
		return nil, errors.Newf(errors.ErrInternal,
			"component %q declares unknown native kind %q", def.Name, def.Native)
	}
}

// ApplyTransform runs one declared post-process transform.
func ApplyTransform(kind, s string) (string, error) {
	switch kind {
	case "blockquote":
		return blockquote(s), nil
	case "center":
		return center(s), nil
	default:
		return "", errors.Newf(errors.ErrInternal, "unknown post-process transform %q", kind)
	}
}

// blockquote prefixes every line with "> ", mapping blank lines to a
// bare ">".
func blockquote(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

// center wraps fully resolved content in an aligned block. Blank lines
// around the content keep markdown parsers rendering the inside.
func center(s string) string {
	return "<div align=\"center\">\n\n" + s + "\n\n</div>"
}
