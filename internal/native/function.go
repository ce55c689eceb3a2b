package native

import (
	"fmt"
	"strings"

	"github.com/tomasz-nowicki/rebo/internal/core"
	"github.com/tomasz-nowicki/rebo/internal/value"
	"github.com/tomasz-nowicki/rebo/internal/verror"
)

// Fn implements the function definition native.
//
//	fn [params] [body] -> function value
//
// - Parameters block defines positional parameters and refinements
// - Body block captures function code (stored as block value)
// - Returns a user-defined function with captured lexical parent
func Fn(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 2 {
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDArgCount,
			[3]string{"fn", "2", fmt.Sprintf("%d", len(args))},
		)
	}

	paramsBlock, ok := value.AsBlock(args[0])
	if !ok {
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDTypeMismatch,
			[3]string{"fn parameters", "block", value.TypeToString(args[0].GetType())},
		)
	}

	specs, err := parseParamSpecs(paramsBlock)
	if err != nil {
		return value.NoneVal(), err
	}

	bodyBlock, ok := value.AsBlock(args[1])
	if !ok {
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDTypeMismatch,
			[3]string{"fn body", "block", value.TypeToString(args[1].GetType())},
		)
	}

	bodyClone := bodyBlock.Clone()
	bodyClone.SetIndex(0)

	parentIndex := eval.CurrentFrameIndex()
	if parentIndex >= 0 {
		eval.MarkFrameCaptured(parentIndex)
	}

	fnValue := value.NewUserFunction("", specs, bodyClone, parentIndex, false)
	return value.FuncVal(fnValue), nil
}

// Apply implements the 'apply' native.
//
//	apply :f [v1 v2 ... vn] -> f v1 v2 ... vn
//
// The argument block is reduced (each element evaluated) left to right, then
// f is invoked directly against the resulting values — equivalent to typing
// the call out with each argument already in hand, including refinements
// given as --name or --name value pairs.
func Apply(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 2 {
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDArgCount,
			[3]string{"apply", "2", fmt.Sprintf("%d", len(args))},
		)
	}

	if !value.IsFunctionType(args[0].GetType()) {
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDTypeMismatch,
			[3]string{"apply", "function! native! action!", value.TypeToString(args[0].GetType())},
		)
	}

	argsBlock, ok := value.AsBlock(args[1])
	if !ok {
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDTypeMismatch,
			[3]string{"apply arguments", "block", value.TypeToString(args[1].GetType())},
		)
	}

	fn, _ := value.AsFunction(args[0])

	posArgs := make([]core.Value, 0, len(fn.Params))
	callRefValues := make(map[string]core.Value)

	vals := argsBlock.Elements
	position := 0
	for position < len(vals) {
		if word, isWord := value.AsWord(vals[position]); isWord && strings.HasPrefix(word, "--") {
			refName := strings.TrimPrefix(word, "--")
			spec, found := findRefinementSpec(fn, refName)
			if !found {
				return value.NoneVal(), verror.NewScriptError(
					verror.ErrIDBadRefinement,
					[3]string{functionDisplayNameFor(args[0]), refName, ""},
				)
			}
			position++
			if spec.TakesValue {
				if position >= len(vals) {
					return value.NoneVal(), verror.NewScriptError(
						verror.ErrIDInvalidOperation,
						[3]string{fmt.Sprintf("--%s requires a value", refName), "", ""},
					)
				}
				newPos, result, err := eval.EvaluateExpression(vals, nil, position)
				if err != nil {
					return value.NoneVal(), err
				}
				callRefValues[refName] = result
				position = newPos
			} else {
				callRefValues[refName] = value.LogicVal(true)
			}
			continue
		}

		newPos, result, err := eval.EvaluateExpression(vals, nil, position)
		if err != nil {
			return value.NoneVal(), err
		}
		posArgs = append(posArgs, result)
		position = newPos
	}

	return eval.ApplyFunction(args[0], posArgs, callRefValues)
}

// Redo implements the tail-retargeting native: while inside a function
// call, redo a-different-fn re-dispatches using the current call's
// already-bound argument values, mapped onto the new function's parameter
// list by position and by refinement name.
//
//	redo new-fn -> any-type!
func Redo(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDArgCount,
			[3]string{"redo", "1", fmt.Sprintf("%d", len(args))},
		)
	}

	if !value.IsFunctionType(args[0].GetType()) {
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDTypeMismatch,
			[3]string{"redo", "function! native! action!", value.TypeToString(args[0].GetType())},
		)
	}

	return eval.Redo(args[0])
}

// findRefinementSpec locates fn's declared refinement named name, if any.
func findRefinementSpec(fn *value.FunctionValue, name string) (value.ParamSpec, bool) {
	for _, spec := range fn.Params {
		if spec.Refinement && spec.Name == name {
			return spec, true
		}
	}
	return value.ParamSpec{}, false
}

// functionDisplayNameFor returns fn's name for diagnostics, falling back to
// "function" for anonymous functions.
func functionDisplayNameFor(fnVal core.Value) string {
	fn, ok := value.AsFunction(fnVal)
	if !ok || fn.Name == "" {
		return "function"
	}
	return fn.Name
}

// ParseParamSpecs parses a function spec block: a word is an evaluated
// parameter, a lit-word a quoted (unevaluated) one, and a --word a refinement.
func ParseParamSpecs(block *value.BlockValue) ([]value.ParamSpec, error) {
	return parseParamSpecs(block)
}

func parseParamSpecs(block *value.BlockValue) ([]value.ParamSpec, error) {
	specs := make([]value.ParamSpec, 0, len(block.Elements))
	seen := make(map[string]struct{})

	for i := 0; i < len(block.Elements); i++ {
		elem := block.Elements[i]
		evalArg := elem.GetType() == value.TypeWord
		if !evalArg && elem.GetType() != value.TypeLitWord {
			return nil, verror.NewScriptError(
				verror.ErrIDInvalidOperation,
				[3]string{fmt.Sprintf("Invalid parameter specification: %s", elem.String()), "", ""},
			)
		}

		symbol, _ := value.AsWord(elem)
		if strings.HasPrefix(symbol, "--") {
			if !evalArg {
				return nil, verror.NewScriptError(
					verror.ErrIDInvalidOperation,
					[3]string{fmt.Sprintf("Invalid parameter specification: %s", elem.String()), "", ""},
				)
			}
			name := strings.TrimPrefix(symbol, "--")
			if name == "" {
				return nil, verror.NewScriptError(
					verror.ErrIDInvalidOperation,
					[3]string{"Invalid refinement name", "", ""},
				)
			}

			if _, exists := seen[name]; exists {
				return nil, verror.NewScriptError(
					verror.ErrIDInvalidOperation,
					[3]string{fmt.Sprintf("Duplicate parameter name: %s", name), "", ""},
				)
			}
			seen[name] = struct{}{}

			takesValue := false
			if i+1 < len(block.Elements) && block.Elements[i+1].GetType() == value.TypeBlock {
				takesValue = true
				i++ // Skip metadata block (type/docstring)
			}

			specs = append(specs, value.NewRefinementSpec(name, takesValue))
			continue
		}

		name := symbol
		if _, exists := seen[name]; exists {
			return nil, verror.NewScriptError(
				verror.ErrIDInvalidOperation,
				[3]string{fmt.Sprintf("Duplicate parameter name: %s", name), "", ""},
			)
		}
		seen[name] = struct{}{}

		specs = append(specs, value.NewParamSpec(name, evalArg))
	}

	return specs, nil
}
