// Package scanner splits raw source text into literal and code spans.
// Fenced code blocks and inline code are protected: tag syntax inside
// them is never offered to the tag parser. Scanning never fails; in the
// worst case the whole input is a single literal span.
package scanner

import (
	"sort"
	"strings"
)

// SpanKind classifies a region of source text.
type SpanKind int

const (
	// SpanLiteral is text available for tag recognition.
	SpanLiteral SpanKind = iota
	// SpanCode is protected text (fenced block or inline code, delimiters included).
	SpanCode
)

// Span is a half-open byte range [Start, End) over the source text.
type Span struct {
	Kind  SpanKind
	Start int
	End   int
}

// Spans is an ordered, non-overlapping cover of the source text.
type Spans []Span

const fenceMarker = "```"

// Scan splits source into an ordered sequence of literal and code spans.
// A line whose trimmed content starts with a fence marker toggles fenced
// mode; the fence lines themselves are code. Within non-fenced lines,
// backtick pairs delimit inline code. An unpaired trailing backtick is
// literal text.
func Scan(source string) Spans {
	var spans Spans
	inFence := false
	offset := 0

	for offset <= len(source) {
		if offset == len(source) {
			break
		}
		lineEnd := strings.IndexByte(source[offset:], '\n')
		var next int
		if lineEnd == -1 {
			lineEnd = len(source)
			next = lineEnd
		} else {
			lineEnd += offset + 1 // include the newline in the line's span
			next = lineEnd
		}
		line := source[offset:lineEnd]

		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, fenceMarker) {
			spans = append(spans, Span{Kind: SpanCode, Start: offset, End: lineEnd})
			inFence = !inFence
			offset = next
			continue
		}

		if inFence {
			spans = append(spans, Span{Kind: SpanCode, Start: offset, End: lineEnd})
			offset = next
			continue
		}

		spans = append(spans, scanInline(line, offset)...)
		offset = next
	}

	return merge(spans)
}

// scanInline splits one non-fenced line on backtick pairs. base is the
// byte offset of the line within the full source.
func scanInline(line string, base int) Spans {
	var spans Spans
	i := 0
	for i < len(line) {
		tick := strings.IndexByte(line[i:], '`')
		if tick == -1 {
			spans = append(spans, Span{Kind: SpanLiteral, Start: base + i, End: base + len(line)})
			break
		}
		tick += i
		closing := strings.IndexByte(line[tick+1:], '`')
		if closing == -1 {
			// Odd delimiter count: the unpaired backtick and the rest
			// of the line stay literal.
			spans = append(spans, Span{Kind: SpanLiteral, Start: base + i, End: base + len(line)})
			break
		}
		closing += tick + 1
		if tick > i {
			spans = append(spans, Span{Kind: SpanLiteral, Start: base + i, End: base + tick})
		}
		spans = append(spans, Span{Kind: SpanCode, Start: base + tick, End: base + closing + 1})
		i = closing + 1
	}
	return spans
}

// merge coalesces adjacent spans of the same kind and drops empty ones.
func merge(spans Spans) Spans {
	out := spans[:0]
	for _, s := range spans {
		if s.End <= s.Start {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Kind == s.Kind && out[n-1].End == s.Start {
			out[n-1].End = s.End
			continue
		}
		out = append(out, s)
	}
	return out
}

// IsCode reports whether the byte at off falls inside a code span.
func (s Spans) IsCode(off int) bool {
	i := sort.Search(len(s), func(i int) bool { return s[i].End > off })
	return i < len(s) && s[i].Kind == SpanCode && s[i].Start <= off
}

// At returns the index of the span covering off, or -1 if off is past
// the end of the covered text.
func (s Spans) At(off int) int {
	i := sort.Search(len(s), func(i int) bool { return s[i].End > off })
	if i < len(s) && s[i].Start <= off {
		return i
	}
	return -1
}
