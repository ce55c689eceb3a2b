package value

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomasz-nowicki/rebo/internal/core"
)

// BlockValue is the series representation shared by block! and paren!.
// locations mirrors Elements 1:1 for diagnostic Near context; it is lazily
// kept in sync rather than always pre-sized, since most blocks are built
// once by the parser and never mutated in place.
type BlockValue struct {
	Elements  []core.Value
	Index     int
	typ       core.ValueType
	locations []core.SourceLocation
}

// NewBlockValue builds a series value of the given kind (TypeBlock or
// TypeParen) from already-built elements.
func NewBlockValue(elements []core.Value, typ core.ValueType) *BlockValue {
	if elements == nil {
		elements = []core.Value{}
	}
	return &BlockValue{
		Elements:  elements,
		Index:     0,
		typ:       typ,
		locations: make([]core.SourceLocation, len(elements)),
	}
}

func (b *BlockValue) ensureLocationCapacity() {
	if len(b.locations) != len(b.Elements) {
		newLocations := make([]core.SourceLocation, len(b.Elements))
		copy(newLocations, b.locations)
		b.locations = newLocations
	}
}

func (b *BlockValue) SetLocations(locations []core.SourceLocation) {
	b.locations = make([]core.SourceLocation, len(b.Elements))
	copy(b.locations, locations)
}

func (b *BlockValue) SetLocationAt(index int, location core.SourceLocation) {
	if index < 0 || index >= len(b.Elements) {
		return
	}
	b.ensureLocationCapacity()
	b.locations[index] = location
}

func (b *BlockValue) LocationAt(index int) core.SourceLocation {
	if index < 0 || index >= len(b.locations) {
		return core.SourceLocation{}
	}
	return b.locations[index]
}

func (b *BlockValue) GetType() core.ValueType { return b.typ }
func (b *BlockValue) GetPayload() any         { return b }

func (b *BlockValue) String() string {
	return "[" + b.joinFrom(0) + "]"
}

func (b *BlockValue) joinFrom(start int) string {
	if start >= len(b.Elements) {
		return ""
	}
	parts := make([]string, 0, len(b.Elements)-start)
	for _, v := range b.Elements[start:] {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, " ")
}

func (b *BlockValue) Equals(other core.Value) bool {
	if other.GetType() != core.TypeBlock && other.GetType() != core.TypeParen {
		return false
	}
	ob, ok := other.(*BlockValue)
	if !ok || len(ob.Elements) != len(b.Elements) {
		return false
	}
	for i := range b.Elements {
		if !b.Elements[i].Equals(ob.Elements[i]) {
			return false
		}
	}
	return true
}

// Series positional accessors (absolute index, not relative to Index).

func (b *BlockValue) First() core.Value       { return b.Elements[0] }
func (b *BlockValue) Last() core.Value        { return b.Elements[len(b.Elements)-1] }
func (b *BlockValue) At(index int) core.Value { return b.Elements[index] }
func (b *BlockValue) Length() int             { return len(b.Elements) }

func (b *BlockValue) Append(val core.Value) {
	b.ensureLocationCapacity()
	b.Elements = append(b.Elements, val)
	b.locations = append(b.locations, core.SourceLocation{})
}

func (b *BlockValue) Insert(val core.Value) {
	b.ensureLocationCapacity()
	b.Elements = append(b.Elements[:b.Index:b.Index], append([]core.Value{val}, b.Elements[b.Index:]...)...)
	b.locations = append(b.locations[:b.Index:b.Index], append([]core.SourceLocation{{}}, b.locations[b.Index:]...)...)
}

func (b *BlockValue) Remove(count int) error {
	if count < 0 || b.Index+count > len(b.Elements) {
		return fmt.Errorf("out of bounds: index %d + count %d > length %d", b.Index, count, len(b.Elements))
	}
	b.ensureLocationCapacity()
	b.Elements = append(b.Elements[:b.Index], b.Elements[b.Index+count:]...)
	b.locations = append(b.locations[:b.Index], b.locations[b.Index+count:]...)
	return nil
}

func (b *BlockValue) GetIndex() int    { return b.Index }
func (b *BlockValue) SetIndex(idx int) { b.Index = idx }

func (b *BlockValue) SkipBy(count int) {
	newIndex := b.Index + count
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(b.Elements) {
		newIndex = len(b.Elements)
	}
	b.Index = newIndex
}

func (b *BlockValue) CopyPart(count int) *BlockValue {
	b.ensureLocationCapacity()
	clamped := ClampToRemaining(b.Index, len(b.Elements), count)
	elemsCopy := make([]core.Value, clamped)
	copy(elemsCopy, b.Elements[b.Index:b.Index+clamped])
	out := NewBlockValue(elemsCopy, b.typ)
	if clamped > 0 {
		locCopy := make([]core.SourceLocation, clamped)
		copy(locCopy, b.locations[b.Index:b.Index+clamped])
		out.SetLocations(locCopy)
	}
	return out
}

func (b *BlockValue) ChangeAt(val core.Value) error {
	if b.Index >= len(b.Elements) {
		return fmt.Errorf("out of bounds: index %d >= length %d", b.Index, len(b.Elements))
	}
	b.Elements[b.Index] = val
	return nil
}

func (b *BlockValue) Clone() *BlockValue {
	elemsCopy := make([]core.Value, len(b.Elements))
	copy(elemsCopy, b.Elements)
	locCopy := make([]core.SourceLocation, len(b.locations))
	copy(locCopy, b.locations)
	return &BlockValue{Elements: elemsCopy, Index: b.Index, typ: b.typ, locations: locCopy}
}

func (b *BlockValue) GoString() string {
	return fmt.Sprintf("Block{Elements: %d, Index: %d}", len(b.Elements), b.Index)
}

// ClampToRemaining clamps requested to [0, length-index], the amount of
// series actually available to copy/take from the current position.
func ClampToRemaining(index, length, requested int) int {
	remaining := length - index
	if requested > remaining {
		return remaining
	}
	if requested < 0 {
		return 0
	}
	return requested
}

// SortBlock sorts a block's elements ascending, for integer and string
// elements; other kinds keep their relative order (stable sort).
func SortBlock(b *BlockValue) {
	sort.SliceStable(b.Elements, func(i, j int) bool {
		ei, ej := b.Elements[i], b.Elements[j]
		switch ei.GetType() {
		case core.TypeInteger:
			iv, _ := AsInteger(ei)
			jv, _ := AsInteger(ej)
			return iv < jv
		case core.TypeString:
			iv, _ := AsString(ei)
			jv, _ := AsString(ej)
			if iv == nil || jv == nil {
				return false
			}
			return iv.String() < jv.String()
		default:
			return false
		}
	})
}
