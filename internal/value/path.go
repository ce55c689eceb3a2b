package value

import (
	"strconv"
	"strings"

	"github.com/tomasz-nowicki/rebo/internal/core"
)

// PathSegmentType distinguishes a path segment that names an object field
// (a word) from one that indexes into a series (an integer), e.g. in
// "user.address.city" every segment is a word, while "items.2" ends in an
// index segment.
type PathSegmentType uint8

const (
	PathSegmentWord PathSegmentType = iota
	PathSegmentIndex
)

// PathSegment is one step of a dot-separated path. Value holds a string
// for PathSegmentWord, an int64 for PathSegmentIndex.
type PathSegment struct {
	Type  PathSegmentType
	Value any
}

func (s PathSegment) String() string {
	switch s.Type {
	case PathSegmentIndex:
		if n, ok := s.Value.(int64); ok {
			return strconv.FormatInt(n, 10)
		}
		return "?"
	default:
		if str, ok := s.Value.(string); ok {
			return str
		}
		return "?"
	}
}

// PathExpression is a dot-separated path value: user.address.city, not a
// REBOL-style slash path. Base carries the resolved root value once the
// evaluator has looked it up (it starts as none from the parser, which only
// knows the segment list). The four path kinds (Path, GetPath, SetPath,
// LitPath) share this representation and differ only in evaluator dispatch:
//   - path!: walk-and-call/walk-and-fetch
//   - get-path!: walk-and-fetch, never calling the tail if it's a function
//   - set-path!: walk to the penultimate segment, assign the tail
//   - lit-path!: evaluates to itself as a path!
type PathExpression struct {
	Segments []PathSegment
	Base     core.Value
	typ      core.ValueType
}

// NewPath builds a path! expression from segments and an (optional,
// usually none) resolved base value.
func NewPath(segments []PathSegment, base core.Value) *PathExpression {
	return newPathExpression(segments, base, core.TypePath)
}

// NewGetPath builds a get-path! expression.
func NewGetPath(segments []PathSegment, base core.Value) *PathExpression {
	return newPathExpression(segments, base, core.TypeGetPath)
}

// NewSetPath builds a set-path! expression.
func NewSetPath(segments []PathSegment, base core.Value) *PathExpression {
	return newPathExpression(segments, base, core.TypeSetPath)
}

// NewLitPath builds a lit-path! expression.
func NewLitPath(segments []PathSegment, base core.Value) *PathExpression {
	return newPathExpression(segments, base, core.TypeLitPath)
}

func newPathExpression(segments []PathSegment, base core.Value, typ core.ValueType) *PathExpression {
	if segments == nil {
		segments = []PathSegment{}
	}
	if base == nil {
		base = NoneVal()
	}
	return &PathExpression{Segments: segments, Base: base, typ: typ}
}

// PathVal, GetPathVal, SetPathVal and LitPathVal wrap an already-built
// PathExpression as the corresponding core.Value kind.
func PathVal(p *PathExpression) core.Value {
	p.typ = core.TypePath
	return p
}
func GetPathVal(p *PathExpression) core.Value {
	p.typ = core.TypeGetPath
	return p
}
func SetPathVal(p *PathExpression) core.Value {
	p.typ = core.TypeSetPath
	return p
}
func LitPathVal(p *PathExpression) core.Value {
	p.typ = core.TypeLitPath
	return p
}

func (p *PathExpression) GetType() core.ValueType { return p.typ }
func (p *PathExpression) GetPayload() any         { return p }

func (p *PathExpression) String() string {
	parts := make([]string, len(p.Segments))
	for i, seg := range p.Segments {
		parts[i] = seg.String()
	}
	body := strings.Join(parts, ".")
	switch p.typ {
	case core.TypeGetPath:
		return ":" + body
	case core.TypeLitPath:
		return "'" + body
	case core.TypeSetPath:
		return body + ":"
	default:
		return body
	}
}

func (p *PathExpression) Equals(other core.Value) bool {
	op, ok := other.(*PathExpression)
	if !ok || op.typ != p.typ || len(op.Segments) != len(p.Segments) {
		return false
	}
	for i := range p.Segments {
		if p.Segments[i].Type != op.Segments[i].Type || p.Segments[i].Value != op.Segments[i].Value {
			return false
		}
	}
	return true
}

// Len returns the number of segments.
func (p *PathExpression) Len() int { return len(p.Segments) }

// At returns the segment at index i.
func (p *PathExpression) At(i int) PathSegment { return p.Segments[i] }

// WithType returns a copy of the path carrying the same segments under a
// different path-kind tag (used when a lit-path evaluates to a path).
func (p *PathExpression) WithType(typ core.ValueType) *PathExpression {
	return newPathExpression(p.Segments, p.Base, typ)
}
