package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasz-nowicki/rebo/internal/native"
	"github.com/tomasz-nowicki/rebo/internal/value"
)

func newRedoTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e := NewEvaluator()
	root := e.GetFrameByIndex(0)
	native.RegisterMathNatives(root)
	native.RegisterDataNatives(root)
	native.RegisterControlNatives(root)
	native.RegisterSeriesNatives(root)
	return e
}

// TestRedo_PositionalCarryOver exercises the same-index matching rule:
// both functions take one evaluated positional parameter in slot 0, so
// redo carries the bound value straight across.
func TestRedo_PositionalCarryOver(t *testing.T) {
	e := newRedoTestEvaluator(t)
	got := runFulfillScript(t, e, `
		double: fn [n] [n * 2]
		relay: fn [n] [redo :double]
		relay 21
	`)
	assert.Equal(t, int64(42), got)
}

// TestRedo_RefinementByName exercises the refinement-matching rule: when
// the same-indexed slot isn't a matching refinement, redo falls back to
// scanning the old parameter list by name.
func TestRedo_RefinementByName(t *testing.T) {
	e := newRedoTestEvaluator(t)
	got := runFulfillScript(t, e, `
		scaled: fn [n --by] [either by [n * by] [n]]
		relay: fn [n extra --by] [redo :scaled]
		relay 3 0 --by 4
	`)
	assert.Equal(t, int64(12), got)
}

// TestRedo_UnmatchedParamBindsNone exercises the "no match, bind none!"
// fallback: the new function's extra parameter has nothing to carry over.
func TestRedo_UnmatchedParamBindsNone(t *testing.T) {
	e := newRedoTestEvaluator(t)
	vals := parseOrFail(t, `
		describe: fn [n extra] [either (none? extra) ["none"] ["some"]]
		relay: fn [n] [redo :describe]
		relay 1
	`)
	result, err := e.DoBlock(vals)
	require.NoError(t, err)
	s, ok := value.AsString(result)
	require.True(t, ok)
	assert.Equal(t, "none", s.String())
}

// TestRedo_OutsideFunctionCallErrors confirms redo at the top level (no
// in-flight user-function call to retarget) is rejected.
func TestRedo_OutsideFunctionCallErrors(t *testing.T) {
	e := newRedoTestEvaluator(t)
	vals := parseOrFail(t, `identity: fn [n] [n] redo :identity`)
	_, err := e.DoBlock(vals)
	assert.Error(t, err)
}
