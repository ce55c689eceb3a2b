// Package value defines the concrete value types for the rebo evaluator.
//
// All data is represented as implementations of the core.Value interface.
// Each kind implements the interface directly rather than through a tagged
// union, so the evaluator never type-switches on a payload field — it
// type-asserts to the concrete Go type (or calls GetType for dispatch
// tables keyed by core.ValueType).
//
// Constructor functions (IntVal, StrVal, WordVal, ...) are the only
// sanctioned way to build values; AsX helpers are the only sanctioned way
// to extract payloads back out.
package value

import (
	"github.com/tomasz-nowicki/rebo/internal/core"
)

// NoneVal creates the none value (absence of a value, still "a value").
func NoneVal() core.Value { return noneSingleton }

// UnsetVal creates the unset value (a cell that has never been assigned,
// or whose assignment was itself unset).
func UnsetVal() core.Value { return unsetSingleton }

// LogicVal creates a logic value (true/false).
func LogicVal(b bool) core.Value {
	if b {
		return logicTrue
	}
	return logicFalse
}

// IntVal creates a 64-bit signed integer value.
func IntVal(i int64) core.Value {
	return &IntValue{value: i}
}

// StrVal creates a string value from a Go string.
func StrVal(s string) core.Value {
	return NewStringValue(s)
}

// CharVal creates a character value from a single rune.
func CharVal(r rune) core.Value {
	return &CharacterValue{value: r}
}

// WordVal creates a word value (evaluates to its bound value).
func WordVal(symbol string) core.Value { return &WordValue{symbol: symbol} }

// SetWordVal creates a set-word value (symbol: assigns on evaluation).
func SetWordVal(symbol string) core.Value { return &SetWordValue{symbol: symbol} }

// GetWordVal creates a get-word value (:symbol fetches without evaluating).
func GetWordVal(symbol string) core.Value { return &GetWordValue{symbol: symbol} }

// LitWordVal creates a lit-word value ('symbol evaluates to the word itself).
func LitWordVal(symbol string) core.Value { return &LitWordValue{symbol: symbol} }

// BlockVal creates a block value (deferred-evaluation series).
func BlockVal(elements []core.Value) core.Value {
	return NewBlockValue(elements, core.TypeBlock)
}

// ParenVal creates a paren value (immediately-evaluated series).
func ParenVal(elements []core.Value) core.Value {
	return NewBlockValue(elements, core.TypeParen)
}

// BinaryVal creates a binary (raw byte sequence) value.
func BinaryVal(data []byte) core.Value { return NewBinaryValue(data) }

// DatatypeVal creates a datatype literal value (e.g. integer!, object!).
func DatatypeVal(name string) core.Value { return &DatatypeValue{name: name} }

// ErrorVal wraps a structured interpreter error as a first-class value.
func ErrorVal(err error) core.Value { return &ErrorValue{err: err} }

// IsTruthy reports whether v counts as true in a conditional context.
// Only none and logic-false are falsy; everything else, including 0, ""
// and [], is truthy.
func IsTruthy(v core.Value) bool {
	switch v.GetType() {
	case core.TypeNone:
		return false
	case core.TypeLogic:
		b, _ := AsLogic(v)
		return b
	default:
		return true
	}
}

// IsWord reports whether t is any of the four word kinds (word!, get-word!,
// lit-word!, set-word!).
func IsWord(t core.ValueType) bool {
	switch t {
	case core.TypeWord, core.TypeGetWord, core.TypeLitWord, core.TypeSetWord:
		return true
	default:
		return false
	}
}

// IsSeries reports whether t is one of the indexable, positionable series
// kinds (string!, binary!, block!, paren!). Object is addressed separately
// by field name rather than index, so it is not a series.
func IsSeries(t core.ValueType) bool {
	switch t {
	case core.TypeString, core.TypeBinary, core.TypeBlock, core.TypeParen:
		return true
	default:
		return false
	}
}

// Type assertion helpers. Each returns (zero-value, false) on mismatch.

func AsInteger(v core.Value) (int64, bool) {
	iv, ok := v.(*IntValue)
	if !ok {
		return 0, false
	}
	return iv.value, true
}

func AsLogic(v core.Value) (bool, bool) {
	lv, ok := v.(*LogicValue)
	if !ok {
		return false, false
	}
	return lv.value, true
}

func AsCharacter(v core.Value) (rune, bool) {
	cv, ok := v.(*CharacterValue)
	if !ok {
		return 0, false
	}
	return cv.value, true
}

func AsString(v core.Value) (*StringValue, bool) {
	sv, ok := v.(*StringValue)
	return sv, ok
}

func AsWord(v core.Value) (string, bool) {
	switch w := v.(type) {
	case *WordValue:
		return w.symbol, true
	case *SetWordValue:
		return w.symbol, true
	case *GetWordValue:
		return w.symbol, true
	case *LitWordValue:
		return w.symbol, true
	default:
		return "", false
	}
}

func AsBlock(v core.Value) (*BlockValue, bool) {
	bv, ok := v.(*BlockValue)
	if !ok {
		return nil, false
	}
	return bv, true
}

func AsFunction(v core.Value) (*FunctionValue, bool) {
	fv, ok := v.(*FunctionValue)
	return fv, ok
}

func AsDatatype(v core.Value) (string, bool) {
	dv, ok := v.(*DatatypeValue)
	if !ok {
		return "", false
	}
	return dv.name, true
}

func AsBinary(v core.Value) (*BinaryValue, bool) {
	bv, ok := v.(*BinaryValue)
	return bv, ok
}

func AsPath(v core.Value) (*PathExpression, bool) {
	pv, ok := v.(*PathExpression)
	return pv, ok
}

func AsObject(v core.Value) (*ObjectInstance, bool) {
	ov, ok := v.(*ObjectInstance)
	return ov, ok
}

func AsError(v core.Value) (error, bool) {
	ev, ok := v.(*ErrorValue)
	if !ok {
		return nil, false
	}
	return ev.err, true
}

// AsXValue aliases. Constructors and extractors both grew "plain" and
// "Value-suffixed" spellings over time; both resolve to the same helper
// rather than requiring every call site to agree on one.

func AsIntValue(v core.Value) (int64, bool) { return AsInteger(v) }

func AsLogicValue(v core.Value) (bool, bool) { return AsLogic(v) }

func AsStringValue(v core.Value) (*StringValue, bool) { return AsString(v) }

func AsWordValue(v core.Value) (string, bool) { return AsWord(v) }

func AsBlockValue(v core.Value) (*BlockValue, bool) { return AsBlock(v) }

func AsBinaryValue(v core.Value) (*BinaryValue, bool) { return AsBinary(v) }

func AsDatatypeValue(v core.Value) (string, bool) { return AsDatatype(v) }

func AsDecimal(v core.Value) (*DecimalValue, bool) {
	dv, ok := v.(*DecimalValue)
	return dv, ok
}

func AsGetPath(v core.Value) (*PathExpression, bool) {
	p, ok := v.(*PathExpression)
	if !ok || p.GetType() != core.TypeGetPath {
		return nil, false
	}
	return p, true
}

func AsSetPath(v core.Value) (*PathExpression, bool) {
	p, ok := v.(*PathExpression)
	if !ok || p.GetType() != core.TypeSetPath {
		return nil, false
	}
	return p, true
}
