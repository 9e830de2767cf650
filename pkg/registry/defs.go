package registry

// Kind names a renderable family. It is part of resolution diagnostics
// and of the registry's internal indexing.
type Kind string

const (
	KindStyle     Kind = "style"
	KindFrame     Kind = "frame"
	KindBadge     Kind = "badge"
	KindSeparator Kind = "separator"
	KindComponent Kind = "component"
	KindPartial   Kind = "partial"
)

// StyleDef maps characters onto a styled Unicode alphabet. Characters
// absent from all three tables pass through unchanged.
type StyleDef struct {
	Name     string
	Aliases  []string
	Category string
	Upper    map[rune]string
	Lower    map[rune]string
	Digit    map[rune]string
	Contexts []Context
}

// FrameDef wraps block content in decorative prefix and suffix lines.
type FrameDef struct {
	Name     string
	Aliases  []string
	Prefix   string
	Suffix   string
	Contexts []Context
}

// BadgeDef maps single characters onto enclosed variants.
type BadgeDef struct {
	Name     string
	Aliases  []string
	Map      map[rune]rune
	Contexts []Context
}

// SeparatorDef is a named single-grapheme separator.
type SeparatorDef struct {
	Name     string
	Aliases  []string
	Char     string
	Contexts []Context
}

// Timing selects when a component's post-processing runs relative to
// recursive re-expansion of its template.
type Timing int

const (
	// PreExpand runs immediately after substitution, before the result
	// is handed back for recursive parsing.
	PreExpand Timing = iota
	// PostExpand runs only after the expanded template has been fully
	// recursively resolved.
	PostExpand
)

// PostProcess names a declared component transform.
type PostProcess struct {
	Kind   string // "blockquote" or "center"
	Timing Timing
}

// ComponentDef is either a template expansion (Template non-empty) or a
// native Primitive constructor (Native non-empty). Exactly one is set.
type ComponentDef struct {
	Name        string
	Aliases     []string
	Template    string
	Native      string
	SelfClosing bool
	ArgCount    int
	Defaults    map[int]string // 1-based positional defaults
	Post        *PostProcess
	Contexts    []Context
}

// PartialDef is a named template included by self-closing reference.
type PartialDef struct {
	Name     string
	Aliases  []string
	Template string
	Contexts []Context
}

// Definitions is the externally supplied, already-validated immutable
// table backing a Registry.
type Definitions struct {
	Styles     []StyleDef
	Frames     []FrameDef
	Badges     []BadgeDef
	Separators []SeparatorDef
	Components []ComponentDef
	Partials   []PartialDef
	Palette    map[string]string
}
