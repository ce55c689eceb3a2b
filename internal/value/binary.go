package value

import (
	"encoding/hex"
	"sort"

	"github.com/tomasz-nowicki/rebo/internal/core"
)

// BinaryValue is a raw byte sequence (binary!), molded as #{...} hex.
type BinaryValue struct {
	data  []byte
	index int
}

// NewBinaryValue creates a BinaryValue from a byte slice.
func NewBinaryValue(data []byte) *BinaryValue {
	return &BinaryValue{data: data}
}

func (b *BinaryValue) GetType() core.ValueType { return core.TypeBinary }
func (b *BinaryValue) GetPayload() any         { return b.data }

func (b *BinaryValue) String() string {
	if len(b.data) == 0 {
		return "#{}"
	}
	return "#{" + hex.EncodeToString(b.data) + "}"
}

func (b *BinaryValue) Equals(other core.Value) bool {
	ob, ok := other.(*BinaryValue)
	if !ok || len(b.data) != len(ob.data) {
		return false
	}
	for i := range b.data {
		if b.data[i] != ob.data[i] {
			return false
		}
	}
	return true
}

func (b *BinaryValue) Bytes() []byte  { return b.data }
func (b *BinaryValue) Index() int     { return b.index }
func (b *BinaryValue) SetIndex(i int) { b.index = i }
func (b *BinaryValue) Length() int    { return len(b.data) }

// SortBinary sorts b's bytes in place in ascending order.
func SortBinary(b *BinaryValue) {
	sort.Slice(b.data, func(i, j int) bool { return b.data[i] < b.data[j] })
}
