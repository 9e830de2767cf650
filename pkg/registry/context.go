package registry

// Context classifies a usage site and constrains which renderables may
// be used there.
type Context int

const (
	// ContextInline is flowing text with a grapheme budget.
	ContextInline Context = iota
	// ContextBlock is standalone block content.
	ContextBlock
	// ContextFrameChrome is frame prefix/suffix decoration with a
	// length budget.
	ContextFrameChrome
)

// String returns the configuration-file spelling of the context.
func (c Context) String() string {
	switch c {
	case ContextInline:
		return "inline"
	case ContextBlock:
		return "block"
	case ContextFrameChrome:
		return "chrome"
	default:
		return "unknown"
	}
}

// ParseContext parses the configuration-file spelling of a context.
func ParseContext(s string) (Context, bool) {
	switch s {
	case "inline":
		return ContextInline, true
	case "block":
		return ContextBlock, true
	case "chrome":
		return ContextFrameChrome, true
	default:
		return 0, false
	}
}

// promotions holds the declared-to-requested promotion pairs beyond
// reflexivity. Block promotes to nothing else.
var promotions = map[[2]Context]bool{
	{ContextInline, ContextBlock}:       true,
	{ContextInline, ContextFrameChrome}: true,
	{ContextFrameChrome, ContextInline}: true,
	{ContextFrameChrome, ContextBlock}:  true,
}

// UsableIn reports whether a renderable declared for context c may be
// used at a site requesting requested.
func (c Context) UsableIn(requested Context) bool {
	return c == requested || promotions[[2]Context{c, requested}]
}

// usableInAny reports whether any declared context covers requested.
func usableInAny(declared []Context, requested Context) bool {
	for _, d := range declared {
		if d.UsableIn(requested) {
			return true
		}
	}
	return false
}

// Limits carries the per-context budgets a caller may configure.
// Zero values mean unlimited.
type Limits struct {
	MaxGraphemes int // Inline content budget
	MaxLength    int // FrameChrome decoration budget
}
