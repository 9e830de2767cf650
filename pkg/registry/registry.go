// Package registry provides immutable, alias-aware lookup of renderable
// definitions with context filtering and promotion. A Registry is
// constructed once per processor instance and never mutated afterwards.
package registry

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rivo/uniseg"

	"github.com/glyphmark/glyphmark/pkg/errors"
)

// Resolved is the result of a successful cross-kind lookup.
type Resolved struct {
	Kind      Kind
	Name      string // canonical name, aliases resolved
	Style     *StyleDef
	Frame     *FrameDef
	Badge     *BadgeDef
	Separator *SeparatorDef
	Component *ComponentDef
	Partial   *PartialDef
}

// contexts returns the declared context set of the resolved entry.
func (r *Resolved) contexts() []Context {
	switch r.Kind {
	case KindStyle:
		return r.Style.Contexts
	case KindFrame:
		return r.Frame.Contexts
	case KindBadge:
		return r.Badge.Contexts
	case KindSeparator:
		return r.Separator.Contexts
	case KindComponent:
		return r.Component.Contexts
	case KindPartial:
		return r.Partial.Contexts
	}
	return nil
}

// Registry is the immutable renderable table. All maps are keyed by
// both canonical names and aliases.
type Registry struct {
	byName  map[string]*Resolved
	byKind  map[Kind][]string // canonical names per kind, sorted
	palette map[string]string
}

// New indexes the supplied definitions. Definitions are externally
// validated; New only rejects name collisions across entries.
func New(defs *Definitions) (*Registry, error) {
	r := &Registry{
		byName:  map[string]*Resolved{},
		byKind:  map[Kind][]string{},
		palette: map[string]string{},
	}
	for k, v := range defs.Palette {
		r.palette[strings.ToLower(k)] = strings.ToLower(v)
	}

	add := func(res *Resolved, aliases []string) error {
		names := append([]string{res.Name}, aliases...)
		for _, n := range names {
			n = strings.ToLower(n)
			if n == "" {
				return errors.Newf(errors.ErrConfigValid, "%s definition with empty name", res.Kind)
			}
			if prev, dup := r.byName[n]; dup {
				return errors.Newf(errors.ErrConfigValid,
					"name %q is defined as both %s %q and %s %q", n, prev.Kind, prev.Name, res.Kind, res.Name)
			}
			r.byName[n] = res
		}
		r.byKind[res.Kind] = append(r.byKind[res.Kind], res.Name)
		return nil
	}

	for i := range defs.Styles {
		d := &defs.Styles[i]
		if err := add(&Resolved{Kind: KindStyle, Name: d.Name, Style: d}, d.Aliases); err != nil {
			return nil, err
		}
	}
	for i := range defs.Frames {
		d := &defs.Frames[i]
		if err := add(&Resolved{Kind: KindFrame, Name: d.Name, Frame: d}, d.Aliases); err != nil {
			return nil, err
		}
	}
	for i := range defs.Badges {
		d := &defs.Badges[i]
		if err := add(&Resolved{Kind: KindBadge, Name: d.Name, Badge: d}, d.Aliases); err != nil {
			return nil, err
		}
	}
	for i := range defs.Separators {
		d := &defs.Separators[i]
		if err := add(&Resolved{Kind: KindSeparator, Name: d.Name, Separator: d}, d.Aliases); err != nil {
			return nil, err
		}
	}
	for i := range defs.Components {
		d := &defs.Components[i]
		if (d.Template == "") == (d.Native == "") {
			return nil, errors.Newf(errors.ErrConfigValid,
				"component %q must declare exactly one of template or native", d.Name)
		}
		if err := add(&Resolved{Kind: KindComponent, Name: d.Name, Component: d}, d.Aliases); err != nil {
			return nil, err
		}
	}
	for i := range defs.Partials {
		d := &defs.Partials[i]
		if err := add(&Resolved{Kind: KindPartial, Name: d.Name, Partial: d}, d.Aliases); err != nil {
			return nil, err
		}
	}

	for _, names := range r.byKind {
		sort.Strings(names)
	}
	return r, nil
}

// Palette returns the built-in palette table (name -> 6-digit hex).
func (r *Registry) Palette() map[string]string {
	return r.palette
}

// Resolve performs alias-aware exact-match lookup across all renderable
// kinds, then checks the candidate's declared contexts against the
// requested one under the promotion rule. A valid-but-wrong-context
// match is a ContextMismatch carrying same-kind alternatives valid in
// the requested context. An absent name resolves to (nil, nil).
func (r *Registry) Resolve(name string, requested Context) (*Resolved, error) {
	res, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, nil
	}
	if !usableInAny(res.contexts(), requested) {
		return nil, r.contextMismatch(res, requested)
	}
	return res, nil
}

func (r *Registry) contextMismatch(res *Resolved, requested Context) error {
	declared := make([]string, 0, len(res.contexts()))
	for _, c := range res.contexts() {
		declared = append(declared, c.String())
	}
	return errors.Newf(errors.ErrContextMismatch,
		"%s %q is declared for %s and cannot be used in a %s position",
		res.Kind, res.Name, strings.Join(declared, "/"), requested).
		WithName(res.Name).
		WithSuggestions(r.alternativesFor(res.Kind, requested, res.Name)).
		WithDetail("declared", strings.Join(declared, "/")).
		WithDetail("requested", requested.String())
}

// alternativesFor lists up to three same-kind names valid in requested.
func (r *Registry) alternativesFor(kind Kind, requested Context, exclude string) []string {
	var out []string
	for _, name := range r.byKind[kind] {
		if name == exclude {
			continue
		}
		res := r.byName[strings.ToLower(name)]
		if usableInAny(res.contexts(), requested) {
			out = append(out, name)
			if len(out) == 3 {
				break
			}
		}
	}
	return out
}

// ListForContext enumerates all canonical names usable in the given
// context, sorted.
func (r *Registry) ListForContext(requested Context) []string {
	seen := map[string]bool{}
	var out []string
	for _, names := range r.byKind {
		for _, name := range names {
			if seen[name] {
				continue
			}
			res := r.byName[strings.ToLower(name)]
			if usableInAny(res.contexts(), requested) {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// ListKind enumerates all canonical names of one kind, sorted.
func (r *Registry) ListKind(kind Kind) []string {
	return append([]string(nil), r.byKind[kind]...)
}

// unknownCodes maps a renderable kind onto its resolution error code.
var unknownCodes = map[Kind]errors.ErrorCode{
	KindStyle:     errors.ErrUnknownStyle,
	KindFrame:     errors.ErrUnknownFrame,
	KindBadge:     errors.ErrUnknownBadge,
	KindSeparator: errors.ErrUnknownSeparator,
	KindComponent: errors.ErrUnknownComponent,
	KindPartial:   errors.ErrUnknownPartial,
}

// lookupKind resolves name to a definition of the wanted kind, applying
// context checking and did-you-mean suggestions.
func (r *Registry) lookupKind(name string, kind Kind, requested Context) (*Resolved, error) {
	res, err := r.Resolve(name, requested)
	if err != nil {
		return nil, err
	}
	if res == nil || res.Kind != kind {
		return nil, errors.Newf(unknownCodes[kind], "no %s named %q", kind, name).
			WithName(name).
			WithSuggestions(r.suggest(name, kind))
	}
	return res, nil
}

// Style resolves a style definition by name or alias.
func (r *Registry) Style(name string, requested Context) (*StyleDef, error) {
	res, err := r.lookupKind(name, KindStyle, requested)
	if err != nil {
		return nil, err
	}
	return res.Style, nil
}

// Frame resolves a frame definition by name or alias.
func (r *Registry) Frame(name string, requested Context) (*FrameDef, error) {
	res, err := r.lookupKind(name, KindFrame, requested)
	if err != nil {
		return nil, err
	}
	return res.Frame, nil
}

// Badge resolves a badge definition by name or alias.
func (r *Registry) Badge(name string, requested Context) (*BadgeDef, error) {
	res, err := r.lookupKind(name, KindBadge, requested)
	if err != nil {
		return nil, err
	}
	return res.Badge, nil
}

// Component resolves a component definition by name or alias.
func (r *Registry) Component(name string, requested Context) (*ComponentDef, error) {
	res, err := r.lookupKind(name, KindComponent, requested)
	if err != nil {
		return nil, err
	}
	return res.Component, nil
}

// Partial resolves a partial definition by name or alias.
func (r *Registry) Partial(name string, requested Context) (*PartialDef, error) {
	res, err := r.lookupKind(name, KindPartial, requested)
	if err != nil {
		return nil, err
	}
	return res.Partial, nil
}

// reservedSeparatorChars may never be used as separators; they collide
// with tag syntax.
const reservedSeparatorChars = ":/}"

// ResolveSeparator turns a separator= value into the literal separator
// string. Whitespace is trimmed; a named lookup is tried first; any
// other value must be exactly one grapheme cluster. Separators resolve
// in the Inline context, so Block-only renderables are a
// ContextMismatch here.
func (r *Registry) ResolveSeparator(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", errors.New(errors.ErrUnknownSeparator, "empty separator value").WithName(value)
	}

	if res, err := r.Resolve(v, ContextInline); err != nil {
		return "", err
	} else if res != nil {
		if res.Kind == KindSeparator {
			return res.Separator.Char, nil
		}
		return "", errors.Newf(errors.ErrInvalidParameterValue,
			"%s %q cannot be used as a separator", res.Kind, res.Name).
			WithName(res.Name).
			WithDetail("param", "separator")
	}

	if strings.ContainsAny(v, reservedSeparatorChars) {
		return "", errors.Newf(errors.ErrUnknownSeparator,
			"separator %q uses a reserved character", v).WithName(v)
	}
	if uniseg.GraphemeClusterCount(v) == 1 {
		return v, nil
	}
	return "", errors.Newf(errors.ErrUnknownSeparator,
		"separator %q is neither a known name nor a single character", v).
		WithName(v).
		WithSuggestions(r.suggest(v, KindSeparator))
}

// suggest applies a simple edit-distance heuristic over the known names
// of one kind. Aliases are included as candidates.
func (r *Registry) suggest(name string, kind Kind) []string {
	name = strings.ToLower(name)
	type scored struct {
		name string
		dist int
	}
	var candidates []scored
	for alias, res := range r.byName {
		if res.Kind != kind {
			continue
		}
		d := levenshtein.ComputeDistance(name, alias)
		if d <= 2 {
			candidates = append(candidates, scored{alias, d})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})
	var out []string
	for _, c := range candidates {
		out = append(out, c.name)
		if len(out) == 3 {
			break
		}
	}
	return out
}
