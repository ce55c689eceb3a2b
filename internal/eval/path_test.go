package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasz-nowicki/rebo/internal/native"
	"github.com/tomasz-nowicki/rebo/internal/value"
)

func newPathTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e := NewEvaluator()
	root := e.GetFrameByIndex(0)
	native.RegisterDataNatives(root)
	native.RegisterSeriesNatives(root)
	native.RegisterMathNatives(root)
	native.RegisterControlNatives(root)
	return e
}

// TestTraversePath_ObjectField exercises the path-walker's object dispatch:
// a dot-path resolves each word segment against the object's frame.
func TestTraversePath_ObjectField(t *testing.T) {
	e := newPathTestEvaluator(t)
	vals := parseOrFail(t, `person: object [name: "Ada" age: 36] person.name`)
	result, err := e.DoBlock(vals)
	require.NoError(t, err)
	s, ok := value.AsString(result)
	require.True(t, ok)
	assert.Equal(t, "Ada", s.String())
}

// TestTraversePath_NestedObjects exercises multi-segment traversal across
// two levels of object nesting.
func TestTraversePath_NestedObjects(t *testing.T) {
	e := newPathTestEvaluator(t)
	vals := parseOrFail(t, `
		person: object [name: "Ada" address: object [city: "London"]]
		person.address.city
	`)
	result, err := e.DoBlock(vals)
	require.NoError(t, err)
	s, ok := value.AsString(result)
	require.True(t, ok)
	assert.Equal(t, "London", s.String())
}

// TestTraversePath_BlockIndex exercises the index-segment path: a
// literal-number path segment indexes into a block (1-based).
func TestTraversePath_BlockIndex(t *testing.T) {
	e := newPathTestEvaluator(t)
	vals := parseOrFail(t, `items: [10 20 30] items.2`)
	result, err := e.DoBlock(vals)
	require.NoError(t, err)
	n, ok := value.AsInteger(result)
	require.True(t, ok)
	assert.Equal(t, int64(20), n)
}

// TestTraversePath_SetPath exercises assignment through a path: setting
// person.name should mutate the object's field in place.
func TestTraversePath_SetPath(t *testing.T) {
	e := newPathTestEvaluator(t)
	vals := parseOrFail(t, `
		person: object [name: "Ada"]
		person.name: "Grace"
		person.name
	`)
	result, err := e.DoBlock(vals)
	require.NoError(t, err)
	s, ok := value.AsString(result)
	require.True(t, ok)
	assert.Equal(t, "Grace", s.String())
}

// TestTraversePath_NonePathErrors confirms traversal through a none! value
// mid-path is rejected rather than panicking or silently returning none.
func TestTraversePath_NonePathErrors(t *testing.T) {
	e := newPathTestEvaluator(t)
	vals := parseOrFail(t, `
		person: object [address: none]
		person.address.city
	`)
	_, err := e.DoBlock(vals)
	assert.Error(t, err)
}

// TestTraversePath_UnknownFieldErrors confirms a missing field name surfaces
// as a script error rather than none!.
func TestTraversePath_UnknownFieldErrors(t *testing.T) {
	e := newPathTestEvaluator(t)
	vals := parseOrFail(t, `
		person: object [name: "Ada"]
		person.nickname
	`)
	_, err := e.DoBlock(vals)
	assert.Error(t, err)
}
