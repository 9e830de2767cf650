package tag

import (
	"strings"

	"github.com/glyphmark/glyphmark/pkg/errors"
	"github.com/glyphmark/glyphmark/pkg/scanner"
)

// ParseAt parses the tag whose opening {{ sits at pos. For open tags
// under the specific-closer policy it also locates the closer, skipping
// any occurrence that falls inside a code span. Generic-policy (ui)
// tags are returned head-only; the caller's open-tag stack matches
// their closers.
func ParseAt(source string, pos int, spans scanner.Spans) (*Tag, error) {
	head, headEnd, selfClosing, err := parseHead(source, pos)
	if err != nil {
		return nil, err
	}

	t := head
	t.Start = pos
	t.HeadEnd = headEnd
	t.SelfClosing = selfClosing
	t.BodyStart = -1
	t.BodyEnd = -1
	t.End = headEnd

	if t.Namespace != "" && !knownNamespaces[t.Namespace] {
		return nil, errors.Newf(errors.ErrUnknownNamespace, "unknown namespace %q", t.Namespace).
			WithName(t.Namespace).
			WithOffset(pos)
	}

	if t.Namespace == NamespaceUI {
		t.Policy = CloserGeneric
	} else {
		t.Policy = CloserSpecific
	}

	if selfClosing || t.Policy == CloserGeneric {
		return t, nil
	}

	closerAt, closerEnd, err := findCloser(source, headEnd, t.CloserToken(), spans, t, pos)
	if err != nil {
		return nil, err
	}
	t.BodyStart = headEnd
	t.BodyEnd = closerAt
	t.End = closerEnd
	return t, nil
}

// ParseCloser recognizes a {{/name}} closer at pos. It returns the
// closed name and the offset just past the closer.
func ParseCloser(source string, pos int) (name string, end int, err error) {
	if !strings.HasPrefix(source[pos:], CloserStart) {
		return "", 0, errors.New(errors.ErrInvalidTagSyntax, "expected a closing tag").WithOffset(pos)
	}
	i := pos + len(CloserStart)
	j := i
	for j < len(source) && isIdentByte(source[j]) {
		j++
	}
	if j == i || !strings.HasPrefix(source[j:], CloseDelim) {
		return "", 0, errors.New(errors.ErrInvalidTagSyntax, "malformed closing tag").WithOffset(pos)
	}
	return source[i:j], j + len(CloseDelim), nil
}

// parseHead consumes {{segments}} or {{segments/}} starting at pos and
// classifies the segments into head, positional args and named params.
func parseHead(source string, pos int) (*Tag, int, bool, error) {
	i := pos + len(OpenDelim)
	var segments []string
	var seg strings.Builder
	selfClosing := false

scan:
	for {
		if i >= len(source) {
			return nil, 0, false, errors.New(errors.ErrInvalidTagSyntax, "tag is never terminated").WithOffset(pos)
		}
		switch c := source[i]; c {
		case ':':
			segments = append(segments, seg.String())
			seg.Reset()
			i++
		case '/':
			if !strings.HasPrefix(source[i:], SelfClose) {
				return nil, 0, false, errors.New(errors.ErrInvalidTagSyntax, "'/' is only valid in the self-closing suffix").WithOffset(pos)
			}
			selfClosing = true
			i += len(SelfClose)
			break scan
		case '}':
			if !strings.HasPrefix(source[i:], CloseDelim) {
				return nil, 0, false, errors.New(errors.ErrInvalidTagSyntax, "single '}' inside tag").WithOffset(pos)
			}
			i += len(CloseDelim)
			break scan
		case '\n', '{':
			return nil, 0, false, errors.New(errors.ErrInvalidTagSyntax, "tag is never terminated").WithOffset(pos)
		default:
			seg.WriteByte(c)
			i++
		}
	}
	segments = append(segments, seg.String())

	t, err := classify(segments, pos)
	if err != nil {
		return nil, 0, false, err
	}
	return t, i, selfClosing, nil
}

// classify applies the head grammar: the first segment is a namespace
// iff a second segment exists and carries no '='. Bare-name tags accept
// only named arguments; positional arguments occur only after a
// namespace:name head.
func classify(segments []string, pos int) (*Tag, error) {
	if !isIdent(segments[0]) {
		return nil, errors.Newf(errors.ErrInvalidTagSyntax, "invalid tag name %q", segments[0]).WithOffset(pos)
	}

	t := &Tag{Params: map[string]string{}}
	rest := segments[1:]

	if len(segments) > 1 && !strings.Contains(segments[1], "=") {
		if !isIdent(segments[1]) {
			return nil, errors.Newf(errors.ErrInvalidTagSyntax, "invalid tag name %q", segments[1]).WithOffset(pos)
		}
		t.Namespace = segments[0]
		t.Name = segments[1]
		rest = segments[2:]
	} else {
		t.Name = segments[0]
	}

	for _, s := range rest {
		eq := strings.IndexByte(s, '=')
		if eq == -1 {
			if t.Namespace == "" {
				return nil, errors.Newf(errors.ErrInvalidTagSyntax,
					"positional argument %q is not allowed on a bare %q tag", s, t.Name).WithOffset(pos)
			}
			t.Args = append(t.Args, s)
			continue
		}
		key, value := s[:eq], s[eq+1:]
		if !isIdent(key) {
			return nil, errors.Newf(errors.ErrInvalidTagSyntax, "invalid parameter name %q", key).WithOffset(pos)
		}
		if _, dup := t.Params[key]; dup {
			return nil, errors.Newf(errors.ErrInvalidTagSyntax, "duplicate parameter %q", key).WithOffset(pos)
		}
		t.Params[key] = value
	}

	return t, nil
}

// findCloser scans forward for the first occurrence of token outside
// any code span. When no matching closer exists, a different closer in
// the remainder is reported as mismatched; otherwise the tag is
// unclosed.
func findCloser(source string, from int, token string, spans scanner.Spans, t *Tag, tagPos int) (int, int, error) {
	i := from
	for {
		rel := strings.Index(source[i:], token)
		if rel == -1 {
			break
		}
		at := i + rel
		if spans.IsCode(at) {
			i = at + 1
			continue
		}
		return at, at + len(token), nil
	}

	expected := strings.TrimSuffix(strings.TrimPrefix(token, CloserStart), CloseDelim)

	// Better diagnostic: if some other closer follows, the author
	// probably mismatched rather than forgot it.
	i = from
	for {
		rel := strings.Index(source[i:], CloserStart)
		if rel == -1 {
			break
		}
		at := i + rel
		if spans.IsCode(at) {
			i = at + 1
			continue
		}
		if found, _, err := ParseCloser(source, at); err == nil {
			return 0, 0, errors.Newf(errors.ErrMismatchedClosingTag,
				"tag %q is closed by {{/%s}}, expected {{/%s}}", t.Qualified(), found, expected).
				WithName(expected).
				WithDetail("found", found).
				WithOffset(at)
		}
		i = at + 1
	}

	return 0, 0, errors.Newf(errors.ErrUnclosedTag, "tag %q is never closed", t.Qualified()).
		WithName(expected).
		WithOffset(tagPos)
}
