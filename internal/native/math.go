// Package native implements built-in native functions for Viro.
//
// Math natives implement arithmetic operations with overflow detection.
package native

import (
	"math"
	"strconv"

	"github.com/ericlagergren/decimal"
	"github.com/tomasz-nowicki/rebo/internal/core"
	"github.com/tomasz-nowicki/rebo/internal/value"
	"github.com/tomasz-nowicki/rebo/internal/verror"
)

// Add implements the + native function.
//
// Contract: + value1 value2 → sum
// - Arguments can be integers or decimals
// - Returns arithmetic sum with type promotion (integer + decimal → decimal)
// - Detects overflow
func Add(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 2 {
		return value.NoneVal(), mathArityError("+", 2, len(args))
	}

	if args[0].GetType() == value.TypeDecimal || args[1].GetType() == value.TypeDecimal {
		return decimalArith("+", args[0], args[1])
	}

	a, ok := value.AsInteger(args[0])
	if !ok {
		return value.NoneVal(), mathTypeError("+", args[0])
	}
	b, ok := value.AsInteger(args[1])
	if !ok {
		return value.NoneVal(), mathTypeError("+", args[1])
	}

	// Positive overflow: a > 0 && b > 0 && a > MaxInt64 - b
	// Negative overflow: a < 0 && b < 0 && a < MinInt64 - b
	if a > 0 && b > 0 && a > math.MaxInt64-b {
		return value.NoneVal(), overflowError("+")
	}
	if a < 0 && b < 0 && a < math.MinInt64-b {
		return value.NoneVal(), underflowError("+")
	}

	return value.IntVal(a + b), nil
}

// Subtract implements the - native function.
//
// Contract: - value1 value2 → difference
func Subtract(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 2 {
		return value.NoneVal(), mathArityError("-", 2, len(args))
	}

	if args[0].GetType() == value.TypeDecimal || args[1].GetType() == value.TypeDecimal {
		return decimalArith("-", args[0], args[1])
	}

	a, ok := value.AsInteger(args[0])
	if !ok {
		return value.NoneVal(), mathTypeError("-", args[0])
	}
	b, ok := value.AsInteger(args[1])
	if !ok {
		return value.NoneVal(), mathTypeError("-", args[1])
	}

	// a - b can overflow if:
	// - a > 0, b < 0, and a > MaxInt64 + b (result too large)
	// - a < 0, b > 0, and a < MinInt64 + b (result too small)
	if a > 0 && b < 0 && a > math.MaxInt64+b {
		return value.NoneVal(), overflowError("-")
	}
	if a < 0 && b > 0 && a < math.MinInt64+b {
		return value.NoneVal(), underflowError("-")
	}

	return value.IntVal(a - b), nil
}

// Multiply implements the * native function.
//
// Contract: * value1 value2 → product
func Multiply(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 2 {
		return value.NoneVal(), mathArityError("*", 2, len(args))
	}

	if args[0].GetType() == value.TypeDecimal || args[1].GetType() == value.TypeDecimal {
		return decimalArith("*", args[0], args[1])
	}

	a, ok := value.AsInteger(args[0])
	if !ok {
		return value.NoneVal(), mathTypeError("*", args[0])
	}
	b, ok := value.AsInteger(args[1])
	if !ok {
		return value.NoneVal(), mathTypeError("*", args[1])
	}

	if a == 0 || b == 0 {
		return value.IntVal(0), nil
	}
	if a == math.MinInt64 && b == -1 {
		return value.NoneVal(), overflowError("*")
	}
	if b == math.MinInt64 && a == -1 {
		return value.NoneVal(), overflowError("*")
	}

	result := a * b
	if result/b != a {
		return value.NoneVal(), overflowError("*")
	}

	return value.IntVal(result), nil
}

// Divide implements the / native function.
//
// Contract: / value1 value2 → quotient
// Division by zero is an error.
func Divide(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 2 {
		return value.NoneVal(), mathArityError("/", 2, len(args))
	}

	if args[0].GetType() == value.TypeDecimal || args[1].GetType() == value.TypeDecimal {
		return decimalArith("/", args[0], args[1])
	}

	a, ok := value.AsInteger(args[0])
	if !ok {
		return value.NoneVal(), mathTypeError("/", args[0])
	}
	b, ok := value.AsInteger(args[1])
	if !ok {
		return value.NoneVal(), mathTypeError("/", args[1])
	}

	if b == 0 {
		return value.NoneVal(), verror.NewMathError(verror.ErrIDDivByZero, [3]string{"", "", ""})
	}
	if a == math.MinInt64 && b == -1 {
		return value.NoneVal(), overflowError("/")
	}

	return value.IntVal(a / b), nil
}

func mathArityError(name string, expected, actual int) *verror.Error {
	return verror.NewScriptError(
		verror.ErrIDArgCount,
		[3]string{name, strconv.Itoa(expected), strconv.Itoa(actual)},
	)
}

func mathTypeError(name string, got core.Value) *verror.Error {
	return verror.NewScriptError(
		verror.ErrIDTypeMismatch,
		[3]string{name, "integer", value.TypeToString(got.GetType())},
	)
}

func overflowError(op string) *verror.Error {
	return verror.NewMathError(verror.ErrIDOverflow, [3]string{op, "", ""})
}

func underflowError(op string) *verror.Error {
	return verror.NewMathError(verror.ErrIDUnderflow, [3]string{op, "", ""})
}

// decimalArith promotes both operands to decimal and performs op, used
// whenever either side of +, -, * or / is already a decimal!.
func decimalArith(op string, a, b core.Value) (core.Value, *verror.Error) {
	aVal := promoteToDecimal(a, nil, nil)
	bVal := promoteToDecimal(b, nil, nil)
	if aVal == nil || bVal == nil {
		return value.NoneVal(), verror.NewMathError(
			verror.ErrIDTypeMismatch,
			[3]string{op, value.TypeToString(a.GetType()), value.TypeToString(b.GetType())},
		)
	}

	ctx := decimal.Context128
	result := new(decimal.Big)

	switch op {
	case "+":
		ctx.Add(result, aVal, bVal)
	case "-":
		ctx.Sub(result, aVal, bVal)
	case "*":
		ctx.Mul(result, aVal, bVal)
	case "/":
		if bVal.Sign() == 0 {
			return value.NoneVal(), verror.NewMathError(verror.ErrIDDivByZero, [3]string{"", "", ""})
		}
		ctx.Quo(result, aVal, bVal)
	}

	return value.DecimalVal(result, 2), nil
}

// LessThan implements the < native function.
func LessThan(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 2 {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDArgCount, [3]string{"< expects 2 arguments", "", ""})
	}
	a, ok := value.AsInteger(args[0])
	if !ok {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDTypeMismatch, [3]string{"< expects integer arguments", "", ""})
	}
	b, ok := value.AsInteger(args[1])
	if !ok {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDTypeMismatch, [3]string{"< expects integer arguments", "", ""})
	}
	return value.LogicVal(a < b), nil
}

// GreaterThan implements the > native function.
func GreaterThan(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 2 {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDArgCount, [3]string{"> expects 2 arguments", "", ""})
	}
	a, ok := value.AsInteger(args[0])
	if !ok {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDTypeMismatch, [3]string{"> expects integer arguments", "", ""})
	}
	b, ok := value.AsInteger(args[1])
	if !ok {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDTypeMismatch, [3]string{"> expects integer arguments", "", ""})
	}
	return value.LogicVal(a > b), nil
}

// LessOrEqual implements the <= native function.
func LessOrEqual(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 2 {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDArgCount, [3]string{"<= expects 2 arguments", "", ""})
	}
	a, ok := value.AsInteger(args[0])
	if !ok {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDTypeMismatch, [3]string{"<= expects integer arguments", "", ""})
	}
	b, ok := value.AsInteger(args[1])
	if !ok {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDTypeMismatch, [3]string{"<= expects integer arguments", "", ""})
	}
	return value.LogicVal(a <= b), nil
}

// GreaterOrEqual implements the >= native function.
func GreaterOrEqual(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 2 {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDArgCount, [3]string{">= expects 2 arguments", "", ""})
	}
	a, ok := value.AsInteger(args[0])
	if !ok {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDTypeMismatch, [3]string{">= expects integer arguments", "", ""})
	}
	b, ok := value.AsInteger(args[1])
	if !ok {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDTypeMismatch, [3]string{">= expects integer arguments", "", ""})
	}
	return value.LogicVal(a >= b), nil
}

// Equal implements the = native function.
func Equal(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 2 {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDArgCount, [3]string{"= expects 2 arguments", "", ""})
	}
	return value.LogicVal(args[0].Equals(args[1])), nil
}

// NotEqual implements the <> native function.
func NotEqual(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 2 {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDArgCount, [3]string{"<> expects 2 arguments", "", ""})
	}
	return value.LogicVal(!args[0].Equals(args[1])), nil
}

// And implements the and native function: both truthy → true.
func And(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 2 {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDArgCount, [3]string{"and expects 2 arguments", "", ""})
	}
	return value.LogicVal(ToTruthy(args[0]) && ToTruthy(args[1])), nil
}

// Or implements the or native function: either truthy → true.
func Or(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 2 {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDArgCount, [3]string{"or expects 2 arguments", "", ""})
	}
	return value.LogicVal(ToTruthy(args[0]) || ToTruthy(args[1])), nil
}

// Not implements the not native function: negates truthiness.
func Not(args []core.Value) (core.Value, *verror.Error) {
	if len(args) != 1 {
		return value.NoneVal(), verror.NewScriptError(verror.ErrIDArgCount, [3]string{"not expects 1 argument", "", ""})
	}
	return value.LogicVal(!ToTruthy(args[0])), nil
}
