package value

import (
	"testing"

	"github.com/tomasz-nowicki/rebo/internal/core"
)

func wordSegs(names ...string) []PathSegment {
	out := make([]PathSegment, len(names))
	for i, n := range names {
		out[i] = PathSegment{Type: PathSegmentWord, Value: n}
	}
	return out
}

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path core.Value
		want string
	}{
		{"path", PathVal(NewPath(wordSegs("data", "field"), NoneVal())), "data.field"},
		{"path with index", PathVal(NewPath([]PathSegment{
			{Type: PathSegmentWord, Value: "data"},
			{Type: PathSegmentIndex, Value: int64(1)},
		}, NoneVal())), "data.1"},
		{"get-path", GetPathVal(NewPath(wordSegs("data", "field"), NoneVal())), ":data.field"},
		{"set-path", SetPathVal(NewPath(wordSegs("data", "field"), NoneVal())), "data.field:"},
		{"lit-path", LitPathVal(NewPath(wordSegs("data", "field"), NoneVal())), "'data.field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPathEquals(t *testing.T) {
	a := PathVal(NewPath(wordSegs("data", "field"), NoneVal()))
	b := PathVal(NewPath(wordSegs("data", "field"), NoneVal()))
	c := PathVal(NewPath(wordSegs("data", "other"), NoneVal()))
	d := GetPathVal(NewPath(wordSegs("data", "field"), NoneVal()))

	if !a.Equals(b) {
		t.Error("identical paths should be equal")
	}
	if a.Equals(c) {
		t.Error("paths with different segments should not be equal")
	}
	if a.Equals(d) {
		t.Error("a path and get-path with the same segments should not be equal")
	}
}

func TestPathSegmentAccess(t *testing.T) {
	p, ok := AsPath(PathVal(NewPath([]PathSegment{
		{Type: PathSegmentWord, Value: "data"},
		{Type: PathSegmentWord, Value: "field"},
		{Type: PathSegmentIndex, Value: int64(3)},
	}, NoneVal())))
	if !ok {
		t.Fatal("AsPath failed")
	}
	if p.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", p.Len())
	}
	if sym, ok := p.At(1).Value.(string); !ok || sym != "field" {
		t.Errorf("segment 1 = %v, %v", sym, ok)
	}
	if n, ok := p.At(2).Value.(int64); !ok || n != 3 {
		t.Errorf("segment 2 = %v, %v", n, ok)
	}
}

func TestPathWithType(t *testing.T) {
	p, _ := AsPath(PathVal(NewPath(wordSegs("a"), NoneVal())))
	lit := p.WithType(core.TypeLitPath)
	if lit.GetType() != core.TypeLitPath {
		t.Errorf("WithType did not change kind: %v", lit.GetType())
	}
	if lit.Len() != p.Len() {
		t.Error("WithType should preserve segments")
	}
}
