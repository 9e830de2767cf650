package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/glyphmark/glyphmark/pkg/errors"
	"github.com/glyphmark/glyphmark/pkg/registry"
)

// defsFile is the on-disk schema for definition tables. Styles and
// badges carry their target alphabets as plain strings zipped against
// the Latin source alphabet at load time.
type defsFile struct {
	Palette    map[string]string `toml:"palette" yaml:"palette"`
	Styles     []styleEntry      `toml:"styles" yaml:"styles"`
	Frames     []frameEntry      `toml:"frames" yaml:"frames"`
	Badges     []badgeEntry      `toml:"badges" yaml:"badges"`
	Separators []separatorEntry  `toml:"separators" yaml:"separators"`
	Components []componentEntry  `toml:"components" yaml:"components"`
	Partials   []partialEntry    `toml:"partials" yaml:"partials"`
}

type styleEntry struct {
	Name     string   `toml:"name" yaml:"name"`
	Aliases  []string `toml:"aliases" yaml:"aliases"`
	Category string   `toml:"category" yaml:"category"`
	Upper    string   `toml:"upper" yaml:"upper"`
	Lower    string   `toml:"lower" yaml:"lower"`
	Digits   string   `toml:"digits" yaml:"digits"`
	Contexts []string `toml:"contexts" yaml:"contexts"`
}

type frameEntry struct {
	Name     string   `toml:"name" yaml:"name"`
	Aliases  []string `toml:"aliases" yaml:"aliases"`
	Prefix   string   `toml:"prefix" yaml:"prefix"`
	Suffix   string   `toml:"suffix" yaml:"suffix"`
	Contexts []string `toml:"contexts" yaml:"contexts"`
}

type badgeEntry struct {
	Name     string   `toml:"name" yaml:"name"`
	Aliases  []string `toml:"aliases" yaml:"aliases"`
	From     string   `toml:"from" yaml:"from"`
	To       string   `toml:"to" yaml:"to"`
	Contexts []string `toml:"contexts" yaml:"contexts"`
}

type separatorEntry struct {
	Name     string   `toml:"name" yaml:"name"`
	Aliases  []string `toml:"aliases" yaml:"aliases"`
	Char     string   `toml:"char" yaml:"char"`
	Contexts []string `toml:"contexts" yaml:"contexts"`
}

type componentEntry struct {
	Name        string            `toml:"name" yaml:"name"`
	Aliases     []string          `toml:"aliases" yaml:"aliases"`
	Template    string            `toml:"template" yaml:"template"`
	Native      string            `toml:"native" yaml:"native"`
	SelfClosing bool              `toml:"self_closing" yaml:"self_closing"`
	Args        int               `toml:"args" yaml:"args"`
	Defaults    map[string]string `toml:"defaults" yaml:"defaults"`
	Post        *postEntry        `toml:"post" yaml:"post"`
	Contexts    []string          `toml:"contexts" yaml:"contexts"`
}

type postEntry struct {
	Kind   string `toml:"kind" yaml:"kind"`
	Timing string `toml:"timing" yaml:"timing"`
}

type partialEntry struct {
	Name     string   `toml:"name" yaml:"name"`
	Aliases  []string `toml:"aliases" yaml:"aliases"`
	Template string   `toml:"template" yaml:"template"`
	Contexts []string `toml:"contexts" yaml:"contexts"`
}

var nativeKinds = map[string]bool{
	"swatch":  true,
	"divider": true,
	"tech":    true,
	"status":  true,
}

// BuiltinDefinitions decodes the embedded definition tables.
func BuiltinDefinitions() (*registry.Definitions, error) {
	return ParseDefinitions(builtinDefs, "toml")
}

// ParseDefinitions decodes a definition file from TOML or YAML bytes.
func ParseDefinitions(data []byte, format string) (*registry.Definitions, error) {
	var f defsFile
	switch format {
	case "toml":
		if err := gotoml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "parsing definitions")
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "parsing definitions")
		}
	default:
		return nil, errors.Newf(errors.ErrConfigParse, "unknown definitions format %q", format)
	}
	return f.convert()
}

// LoadDefinitionsFile reads a definition file, picking the format from
// the file extension.
func LoadDefinitionsFile(path string) (*registry.Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "definitions file %s", path)
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		format = "toml"
	}
	return ParseDefinitions(data, format)
}

// Merge appends the entries of extra onto base. Name collisions are
// caught later by registry construction.
func Merge(base, extra *registry.Definitions) *registry.Definitions {
	out := *base
	out.Styles = append(out.Styles, extra.Styles...)
	out.Frames = append(out.Frames, extra.Frames...)
	out.Badges = append(out.Badges, extra.Badges...)
	out.Separators = append(out.Separators, extra.Separators...)
	out.Components = append(out.Components, extra.Components...)
	out.Partials = append(out.Partials, extra.Partials...)
	if len(extra.Palette) > 0 {
		merged := make(map[string]string, len(base.Palette)+len(extra.Palette))
		for k, v := range base.Palette {
			merged[k] = v
		}
		for k, v := range extra.Palette {
			merged[k] = v
		}
		out.Palette = merged
	}
	return &out
}

func (f *defsFile) convert() (*registry.Definitions, error) {
	defs := &registry.Definitions{Palette: f.Palette}

	for _, s := range f.Styles {
		contexts, err := parseContexts(s.Name, s.Contexts, registry.ContextInline)
		if err != nil {
			return nil, err
		}
		upper, err := zipAlphabet(s.Name, latinUpper, s.Upper)
		if err != nil {
			return nil, err
		}
		lower, err := zipAlphabet(s.Name, latinLower, s.Lower)
		if err != nil {
			return nil, err
		}
		digit, err := zipAlphabet(s.Name, latinDigits, s.Digits)
		if err != nil {
			return nil, err
		}
		defs.Styles = append(defs.Styles, registry.StyleDef{
			Name:     s.Name,
			Aliases:  s.Aliases,
			Category: s.Category,
			Upper:    upper,
			Lower:    lower,
			Digit:    digit,
			Contexts: contexts,
		})
	}

	for _, fr := range f.Frames {
		contexts, err := parseContexts(fr.Name, fr.Contexts, registry.ContextBlock)
		if err != nil {
			return nil, err
		}
		defs.Frames = append(defs.Frames, registry.FrameDef{
			Name:     fr.Name,
			Aliases:  fr.Aliases,
			Prefix:   fr.Prefix,
			Suffix:   fr.Suffix,
			Contexts: contexts,
		})
	}

	for _, b := range f.Badges {
		contexts, err := parseContexts(b.Name, b.Contexts, registry.ContextInline)
		if err != nil {
			return nil, err
		}
		m, err := zipRunes(b.Name, b.From, b.To)
		if err != nil {
			return nil, err
		}
		defs.Badges = append(defs.Badges, registry.BadgeDef{
			Name:     b.Name,
			Aliases:  b.Aliases,
			Map:      m,
			Contexts: contexts,
		})
	}

	for _, s := range f.Separators {
		contexts, err := parseContexts(s.Name, s.Contexts, registry.ContextInline)
		if err != nil {
			return nil, err
		}
		defs.Separators = append(defs.Separators, registry.SeparatorDef{
			Name:     s.Name,
			Aliases:  s.Aliases,
			Char:     s.Char,
			Contexts: contexts,
		})
	}

	for _, c := range f.Components {
		def, err := convertComponent(c)
		if err != nil {
			return nil, err
		}
		defs.Components = append(defs.Components, *def)
	}

	for _, p := range f.Partials {
		contexts, err := parseContexts(p.Name, p.Contexts, registry.ContextBlock)
		if err != nil {
			return nil, err
		}
		defs.Partials = append(defs.Partials, registry.PartialDef{
			Name:     p.Name,
			Aliases:  p.Aliases,
			Template: p.Template,
			Contexts: contexts,
		})
	}

	return defs, nil
}

func convertComponent(c componentEntry) (*registry.ComponentDef, error) {
	contexts, err := parseContexts(c.Name, c.Contexts, registry.ContextBlock)
	if err != nil {
		return nil, err
	}
	if (c.Template == "") == (c.Native == "") {
		return nil, errors.Newf(errors.ErrConfigValid,
			"component %q must define exactly one of template or native", c.Name).
			WithName(c.Name)
	}
	if c.Native != "" && !nativeKinds[c.Native] {
		return nil, errors.Newf(errors.ErrConfigValid,
			"component %q names unknown native kind %q", c.Name, c.Native).
			WithName(c.Name)
	}

	defaults := make(map[int]string, len(c.Defaults))
	for key, val := range c.Defaults {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 1 {
			return nil, errors.Newf(errors.ErrConfigValid,
				"component %q has invalid default index %q", c.Name, key).
				WithName(c.Name)
		}
		defaults[idx] = val
	}
	if len(defaults) == 0 {
		defaults = nil
	}

	var post *registry.PostProcess
	if c.Post != nil {
		if c.Post.Kind != "blockquote" && c.Post.Kind != "center" {
			return nil, errors.Newf(errors.ErrConfigValid,
				"component %q names unknown transform %q", c.Name, c.Post.Kind).
				WithName(c.Name)
		}
		timing := registry.PreExpand
		switch c.Post.Timing {
		case "", "post":
			timing = registry.PostExpand
		case "pre":
		default:
			return nil, errors.Newf(errors.ErrConfigValid,
				"component %q has invalid transform timing %q", c.Name, c.Post.Timing).
				WithName(c.Name)
		}
		post = &registry.PostProcess{Kind: c.Post.Kind, Timing: timing}
	}

	return &registry.ComponentDef{
		Name:        c.Name,
		Aliases:     c.Aliases,
		Template:    c.Template,
		Native:      c.Native,
		SelfClosing: c.SelfClosing,
		ArgCount:    c.Args,
		Defaults:    defaults,
		Post:        post,
		Contexts:    contexts,
	}, nil
}

const (
	latinUpper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	latinLower  = "abcdefghijklmnopqrstuvwxyz"
	latinDigits = "0123456789"
)

// zipAlphabet pairs each rune of target with the rune of source at the
// same position. An empty target yields no mapping at all.
func zipAlphabet(name, source, target string) (map[rune]string, error) {
	if target == "" {
		return nil, nil
	}
	targetRunes := []rune(target)
	sourceRunes := []rune(source)
	if len(targetRunes) != len(sourceRunes) {
		return nil, errors.Newf(errors.ErrConfigValid,
			"style %q alphabet has %d characters, want %d", name, len(targetRunes), len(sourceRunes)).
			WithName(name)
	}
	m := make(map[rune]string, len(sourceRunes))
	for i, r := range sourceRunes {
		m[r] = string(targetRunes[i])
	}
	return m, nil
}

func zipRunes(name, from, to string) (map[rune]rune, error) {
	fromRunes := []rune(from)
	toRunes := []rune(to)
	if len(fromRunes) == 0 || len(fromRunes) != len(toRunes) {
		return nil, errors.Newf(errors.ErrConfigValid,
			"badge %q maps %d characters onto %d", name, len(fromRunes), len(toRunes)).
			WithName(name)
	}
	m := make(map[rune]rune, len(fromRunes))
	for i, r := range fromRunes {
		m[r] = toRunes[i]
	}
	return m, nil
}

func parseContexts(name string, raw []string, fallback registry.Context) ([]registry.Context, error) {
	if len(raw) == 0 {
		return []registry.Context{fallback}, nil
	}
	out := make([]registry.Context, 0, len(raw))
	for _, s := range raw {
		ctx, ok := registry.ParseContext(s)
		if !ok {
			return nil, errors.Newf(errors.ErrConfigValid, "%q declares unknown context %q", name, s).
				WithName(name)
		}
		out = append(out, ctx)
	}
	return out, nil
}
