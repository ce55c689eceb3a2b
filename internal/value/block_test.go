package value

import (
	"testing"

	"github.com/tomasz-nowicki/rebo/internal/core"
)

func TestBlockValueBasics(t *testing.T) {
	b := NewBlockValue([]core.Value{IntVal(1), IntVal(2), IntVal(3)}, core.TypeBlock)

	if b.Length() != 3 {
		t.Fatalf("Length() = %d, want 3", b.Length())
	}
	if got, _ := AsInteger(b.First()); got != 1 {
		t.Errorf("First() = %d, want 1", got)
	}
	if got, _ := AsInteger(b.Last()); got != 3 {
		t.Errorf("Last() = %d, want 3", got)
	}
	if b.String() != "[1 2 3]" {
		t.Errorf("String() = %q", b.String())
	}
}

func TestBlockValueAppendInsert(t *testing.T) {
	b := NewBlockValue([]core.Value{IntVal(1), IntVal(2)}, core.TypeBlock)
	b.Append(IntVal(3))
	if b.Length() != 3 {
		t.Fatalf("Length() after Append = %d, want 3", b.Length())
	}

	b.SetIndex(0)
	b.Insert(IntVal(0))
	if got, _ := AsInteger(b.At(0)); got != 0 {
		t.Errorf("At(0) after Insert = %d, want 0", got)
	}
	if b.Length() != 4 {
		t.Fatalf("Length() after Insert = %d, want 4", b.Length())
	}
}

func TestBlockValueRemove(t *testing.T) {
	b := NewBlockValue([]core.Value{IntVal(1), IntVal(2), IntVal(3)}, core.TypeBlock)
	b.SetIndex(1)
	if err := b.Remove(1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if b.Length() != 2 {
		t.Fatalf("Length() after Remove = %d, want 2", b.Length())
	}
	if got, _ := AsInteger(b.At(1)); got != 3 {
		t.Errorf("At(1) after Remove = %d, want 3", got)
	}
	if err := b.Remove(5); err == nil {
		t.Error("Remove beyond bounds should error")
	}
}

func TestBlockValueCopyPart(t *testing.T) {
	b := NewBlockValue([]core.Value{IntVal(1), IntVal(2), IntVal(3), IntVal(4)}, core.TypeBlock)
	b.SetIndex(1)
	part := b.CopyPart(2)
	if part.Length() != 2 {
		t.Fatalf("CopyPart length = %d, want 2", part.Length())
	}
	if got, _ := AsInteger(part.At(0)); got != 2 {
		t.Errorf("part[0] = %d, want 2", got)
	}

	overshoot := b.CopyPart(100)
	if overshoot.Length() != 3 {
		t.Errorf("CopyPart clamps to remaining: got %d, want 3", overshoot.Length())
	}
}

func TestBlockValueEquals(t *testing.T) {
	a := NewBlockValue([]core.Value{IntVal(1), IntVal(2)}, core.TypeBlock)
	b := NewBlockValue([]core.Value{IntVal(1), IntVal(2)}, core.TypeBlock)
	c := NewBlockValue([]core.Value{IntVal(1), IntVal(2)}, core.TypeParen)

	if !a.Equals(b) {
		t.Error("blocks with identical elements should be equal")
	}
	if a.Equals(c) {
		t.Error("a block and a paren with the same elements should not be equal")
	}
}

func TestSortBlock(t *testing.T) {
	b := NewBlockValue([]core.Value{IntVal(3), IntVal(1), IntVal(2)}, core.TypeBlock)
	SortBlock(b)
	want := []int64{1, 2, 3}
	for i, w := range want {
		if got, _ := AsInteger(b.At(i)); got != w {
			t.Errorf("At(%d) = %d, want %d", i, got, w)
		}
	}
}
