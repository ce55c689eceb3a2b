package value

import (
	"sort"

	"github.com/tomasz-nowicki/rebo/internal/core"
)

// StringValue is a character series, not a byte series: REBOL strings
// index by rune so `first "hello"` yields the character 'h', not a byte.
type StringValue struct {
	runes []rune
	index int
}

// NewStringValue creates a StringValue from a Go string.
func NewStringValue(s string) *StringValue {
	return &StringValue{runes: []rune(s)}
}

func (s *StringValue) GetType() core.ValueType { return core.TypeString }
func (s *StringValue) GetPayload() any         { return s.runes }
func (s *StringValue) String() string          { return string(s.runes) }

func (s *StringValue) Equals(other core.Value) bool {
	os, ok := other.(*StringValue)
	if !ok || len(s.runes) != len(os.runes) {
		return false
	}
	for i := range s.runes {
		if s.runes[i] != os.runes[i] {
			return false
		}
	}
	return true
}

func (s *StringValue) First() rune       { return s.runes[0] }
func (s *StringValue) Last() rune        { return s.runes[len(s.runes)-1] }
func (s *StringValue) At(index int) rune { return s.runes[index] }
func (s *StringValue) Length() int       { return len(s.runes) }
func (s *StringValue) Index() int        { return s.index }
func (s *StringValue) SetIndex(idx int)  { s.index = idx }
func (s *StringValue) Runes() []rune     { return s.runes }
func (s *StringValue) SetRunes(r []rune) { s.runes = r }

func (s *StringValue) Append(val interface{}) {
	switch v := val.(type) {
	case rune:
		s.runes = append(s.runes, v)
	case *StringValue:
		s.runes = append(s.runes, v.runes...)
	case string:
		s.runes = append(s.runes, []rune(v)...)
	}
}

func (s *StringValue) Insert(val interface{}) {
	var toInsert []rune
	switch v := val.(type) {
	case rune:
		toInsert = []rune{v}
	case *StringValue:
		toInsert = v.runes
	case string:
		toInsert = []rune(v)
	}
	s.runes = append(s.runes[:s.index:s.index], append(toInsert, s.runes[s.index:]...)...)
}

func (s *StringValue) Remove(count int) {
	if s.index+count <= len(s.runes) {
		s.runes = append(s.runes[:s.index], s.runes[s.index+count:]...)
	}
}

func (s *StringValue) Clone() *StringValue {
	runesCopy := make([]rune, len(s.runes))
	copy(runesCopy, s.runes)
	return &StringValue{runes: runesCopy, index: s.index}
}

// SortString sorts the runes in the string in ascending order.
func SortString(s *StringValue) {
	sort.SliceStable(s.runes, func(i, j int) bool {
		return s.runes[i] < s.runes[j]
	})
}
