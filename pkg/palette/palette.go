// Package palette resolves color names for component arguments and
// primitive parameters. Resolution order: caller overlay, then the
// built-in palette, then raw 6-digit hex passthrough. Resolved values
// are lowercase hex without the leading '#'.
package palette

import (
	"regexp"
	"strings"

	"github.com/mazznoer/csscolorparser"

	"github.com/glyphmark/glyphmark/pkg/errors"
)

var hexRe = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// Palette holds the built-in color table plus a caller-controlled
// overlay. The overlay is the only mutable part and must never be
// extended concurrently with an in-flight process call.
type Palette struct {
	builtin map[string]string
	overlay map[string]string
}

// New creates a palette over a built-in table (name -> 6-digit hex,
// already case-normalized by the registry).
func New(builtin map[string]string) *Palette {
	return &Palette{
		builtin: builtin,
		overlay: map[string]string{},
	}
}

// Extend merges overrides into the overlay. Every value must be a
// 6-digit hex color; names are case-insensitive.
func (p *Palette) Extend(overrides map[string]string) error {
	staged := make(map[string]string, len(overrides))
	for name, value := range overrides {
		hex, err := normalizeHex(value)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidColor,
				"palette entry %q has invalid color %q", name, value)
		}
		staged[strings.ToLower(name)] = hex
	}
	// All-or-nothing: a bad entry must not leave a half-applied overlay.
	for name, hex := range staged {
		p.overlay[name] = hex
	}
	return nil
}

// Resolve maps a color argument to lowercase hex without '#'. Custom
// overlay wins over the built-in palette; anything else must be raw
// 6-digit hex.
func (p *Palette) Resolve(value string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	if hex, ok := p.overlay[key]; ok {
		return hex, nil
	}
	if hex, ok := p.builtin[key]; ok {
		return hex, nil
	}
	hex, err := normalizeHex(value)
	if err != nil {
		return "", errors.Newf(errors.ErrInvalidColor,
			"%q is neither a palette name nor a 6-digit hex color", value).WithName(value)
	}
	return hex, nil
}

// ResolveLenient resolves palette names and hex colors like Resolve but
// passes any other value through unchanged. Template substitution uses
// it so non-color positional arguments keep their raw text.
func (p *Palette) ResolveLenient(value string) string {
	hex, err := p.Resolve(value)
	if err != nil {
		return value
	}
	return hex
}

// Names returns the effective palette (builtin merged with overlay).
func (p *Palette) Names() map[string]string {
	out := make(map[string]string, len(p.builtin)+len(p.overlay))
	for k, v := range p.builtin {
		out[k] = v
	}
	for k, v := range p.overlay {
		out[k] = v
	}
	return out
}

// normalizeHex validates a raw hex color and returns it lowercased
// without the leading '#'. csscolorparser handles the normalization so
// shorthand or malformed channels are rejected consistently.
func normalizeHex(value string) (string, error) {
	v := strings.TrimSpace(value)
	if !hexRe.MatchString(v) {
		return "", errors.Newf(errors.ErrInvalidColor, "%q is not a 6-digit hex color", value)
	}
	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	c, err := csscolorparser.Parse(v)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidColor, "%q is not a valid color", value)
	}
	return strings.TrimPrefix(c.HexString(), "#"), nil
}
