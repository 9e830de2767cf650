// Package tag recognizes a single {{...}} tag at a source position and
// locates its matching closer. Parsing is a strict single pass with no
// backtracking; the scan for a specific closer is O(n) in the distance
// to the closer.
package tag

// Delimiters of the template syntax. These are stable and bit-exact.
const (
	OpenDelim   = "{{"
	CloseDelim  = "}}"
	SelfClose   = "/}}"
	CloserStart = "{{/"
)

// Namespaces recognized by the dispatcher. The set is closed; a
// namespace-form head outside it is an UnknownNamespace error.
const (
	NamespaceUI      = "ui"
	NamespaceFrame   = "frame"
	NamespaceBadge   = "badge"
	NamespaceShields = "shields"
	NamespacePartial = "partial"
)

// knownNamespaces is consulted during head classification.
var knownNamespaces = map[string]bool{
	NamespaceUI:      true,
	NamespaceFrame:   true,
	NamespaceBadge:   true,
	NamespaceShields: true,
	NamespacePartial: true,
}

// CloserPolicy selects how an open tag's closer is matched.
type CloserPolicy int

const (
	// CloserSpecific matches the first literal {{/name}} occurrence.
	// Same-name nesting is not supported under this policy.
	CloserSpecific CloserPolicy = iota
	// CloserGeneric defers matching to the processor's open-tag stack.
	// Only the reserved "ui" namespace uses it.
	CloserGeneric
)

// Tag is one parsed template unit. Offsets are byte positions in the
// source text handed to ParseAt.
type Tag struct {
	Namespace   string // empty for bare-name tags
	Name        string
	Args        []string          // positional arguments, in order
	Params      map[string]string // named key=value arguments
	SelfClosing bool

	Policy CloserPolicy

	Start   int // offset of the opening {{
	HeadEnd int // offset just past the head's }} or /}}
	// BodyStart/BodyEnd delimit the raw content between head and closer.
	// Both are -1 for self-closing tags and for generic-policy tags,
	// whose bodies are delimited by the processor's stack.
	BodyStart int
	BodyEnd   int
	// End is the offset just past the closer for specific-policy open
	// tags, or equal to HeadEnd otherwise.
	End int
}

// Body returns the raw content of a specific-policy open tag.
func (t *Tag) Body(source string) string {
	if t.BodyStart < 0 {
		return ""
	}
	return source[t.BodyStart:t.BodyEnd]
}

// Qualified returns the head as written, namespace included.
func (t *Tag) Qualified() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + ":" + t.Name
}

// CloserToken returns the closer text this tag matches. Namespace-form
// tags close on their namespace, bare styles on their own name.
func (t *Tag) CloserToken() string {
	if t.Namespace != "" {
		return CloserStart + t.Namespace + CloseDelim
	}
	return CloserStart + t.Name + CloseDelim
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_'
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}
