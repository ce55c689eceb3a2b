package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasz-nowicki/rebo/internal/core"
	"github.com/tomasz-nowicki/rebo/internal/native"
	"github.com/tomasz-nowicki/rebo/internal/parse"
	"github.com/tomasz-nowicki/rebo/internal/value"
)

func newFulfillTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	e := NewEvaluator()
	root := e.GetFrameByIndex(0)
	native.RegisterMathNatives(root)
	native.RegisterDataNatives(root)
	native.RegisterControlNatives(root)
	native.RegisterSeriesNatives(root)
	return e
}

// parseOrFail calls parse.Parse and fails the test on a parse error.
// parse.Parse returns *verror.Error rather than the error interface, so
// this checks the concrete pointer directly instead of handing it to
// require.NoError — passed through the error interface a nil *verror.Error
// would stop being == nil and the test would always "fail" even on success.
func parseOrFail(t *testing.T, src string) []core.Value {
	t.Helper()
	vals, perr := parse.Parse(src)
	if perr != nil {
		t.Fatalf("parse error for %q: %v", src, perr)
	}
	return vals
}

func runFulfillScript(t *testing.T, e *Evaluator, src string) int64 {
	t.Helper()
	vals := parseOrFail(t, src)
	result, err := e.DoBlock(vals)
	require.NoError(t, err, "eval error for: %s", src)
	n, ok := value.AsInteger(result)
	require.True(t, ok, "expected integer result, got %s", value.TypeToString(result.GetType()))
	return n
}

// TestCollectFunctionArgs_Positional exercises the fulfiller's plain
// positional path: each declared param consumes one evaluated expression.
func TestCollectFunctionArgs_Positional(t *testing.T) {
	e := newFulfillTestEvaluator(t)
	got := runFulfillScript(t, e, `add2: fn [a b] [a + b] add2 3 4`)
	assert.Equal(t, int64(7), got)
}

// TestCollectFunctionArgs_ValuelessRefinement exercises a refinement
// declared without a dependent value: absent it defaults to false, present
// it binds to true.
func TestCollectFunctionArgs_ValuelessRefinement(t *testing.T) {
	e := newFulfillTestEvaluator(t)

	loud := runFulfillScript(t, e, `
		loud: fn [n --shout] [either shout [n * 100] [n]]
		loud 2 --shout
	`)
	assert.Equal(t, int64(200), loud)

	quiet := runFulfillScript(t, newFulfillTestEvaluator(t), `
		quiet: fn [n --shout] [either shout [n * 100] [n]]
		quiet 2
	`)
	assert.Equal(t, int64(2), quiet)
}

// TestCollectFunctionArgs_ValueTakingRefinement exercises readRefinements'
// value-taking path: the expression following --by is evaluated and bound
// as the refinement's dependent value.
func TestCollectFunctionArgs_ValueTakingRefinement(t *testing.T) {
	e := newFulfillTestEvaluator(t)
	got := runFulfillScript(t, e, `
		scale: fn [n --by] [either by [n * by] [n]]
		scale 3 --by (1 + 1)
	`)
	assert.Equal(t, int64(6), got)
}

// TestCollectFunctionArgs_UnknownRefinementErrors confirms an undeclared
// refinement at the call site is rejected rather than silently ignored.
func TestCollectFunctionArgs_UnknownRefinementErrors(t *testing.T) {
	e := newFulfillTestEvaluator(t)
	vals := parseOrFail(t, `solo: fn [n] [n] solo 1 --bogus`)
	_, err := e.DoBlock(vals)
	assert.Error(t, err)
}

// TestReturn_OptionalTrailingParam exercises the Optional positional path
// on a native (return's value param): called with no remaining tokens, it
// binds to none! instead of raising an arity error.
func TestReturn_OptionalTrailingParam(t *testing.T) {
	e := newFulfillTestEvaluator(t)

	withValue := runFulfillScript(t, e, `f: fn [] [return 9 "unreached"] f`)
	assert.Equal(t, int64(9), withValue)

	vals := parseOrFail(t, `g: fn [] [return] g`)
	result, err := newFulfillTestEvaluator(t).DoBlock(vals)
	require.NoError(t, err)
	assert.Equal(t, core.TypeNone, result.GetType())
}

// TestCollectFunctionArgs_Infix exercises the infix path: a native flagged
// Infix receives the previous expression's result as its first argument
// instead of consuming a token for it.
func TestCollectFunctionArgs_Infix(t *testing.T) {
	e := newFulfillTestEvaluator(t)
	root := e.GetFrameByIndex(0)

	doubledPlus := value.NewNativeFunction(
		"doubled-plus",
		[]value.ParamSpec{
			value.NewParamSpec("base", true),
			value.NewParamSpec("extra", true),
		},
		func(args []core.Value, refs map[string]core.Value, ev core.Evaluator) (core.Value, error) {
			base, _ := value.AsInteger(args[0])
			extra, _ := value.AsInteger(args[1])
			return value.IntVal(base*2 + extra), nil
		},
		true, // Infix
	)
	root.Bind("doubled-plus", value.FuncVal(doubledPlus))

	got := runFulfillScript(t, e, `5 doubled-plus 1`)
	assert.Equal(t, int64(11), got)
}
