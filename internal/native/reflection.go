package native

import (
	"fmt"
	"strings"

	"github.com/tomasz-nowicki/rebo/internal/core"
	"github.com/tomasz-nowicki/rebo/internal/value"
	"github.com/tomasz-nowicki/rebo/internal/verror"
)

// Reflection natives (Feature 002, FR-022)
// Contract per contracts/reflection.md: type-of, spec-of, body-of, words-of, values-of, source

// TypeOf implements the `type-of` native (T155).
//
// Contract: type-of value -> word! representing type name
// Returns canonical type name as word (e.g., integer!, string!, object!)
// For functions, distinguishes between native! and function! based on FunctionValue.Kind
func TypeOf(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NoneVal(), arityError("type-of", 1, len(args))
	}

	val := args[0]

	typeName := value.TypeToString(val.GetType())
	return value.WordVal(typeName), nil
}

// SpecOf implements the `spec-of` native (T156).
//
// Contract: spec-of value -> block! copy of specification
// Supports: function!, native!, object!
// Returns immutable copy of specification block
func SpecOf(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NoneVal(), arityError("spec-of", 1, len(args))
	}

	val := args[0]

	switch {
	case value.IsFunctionType(val.GetType()):
		fn, _ := value.AsFunction(val)
		// Build spec block from Params
		specElements := []core.Value{}
		for _, param := range fn.Params {
			specElements = append(specElements, value.WordVal(param.Name))
		}
		return value.BlockVal(specElements), nil

	case val.GetType() == value.TypeObject:
		obj, _ := value.AsObject(val)
		// Build spec block from manifest
		specElements := []core.Value{}
		for i, field := range obj.Manifest.Words {
			specElements = append(specElements, value.WordVal(field))
			// If there's a type hint, include it
			if i < len(obj.Manifest.Types) && obj.Manifest.Types[i] != core.TypeEnd {
				typeName := value.TypeToString(obj.Manifest.Types[i])
				specElements = append(specElements, value.WordVal(typeName))
			}
		}
		return value.BlockVal(specElements), nil

	default:
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDTypeMismatch,
			[3]string{"spec-of", "function! object!", value.TypeToString(val.GetType())},
		)
	}
}

// BodyOf implements the `body-of` native (T157).
//
// Contract: body-of value -> block! copy of body
// Supports: function!, object!
// Returns a new block; nested series inside it are shared with the original
// Native functions return an error as they have no accessible body
func BodyOf(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NoneVal(), arityError("body-of", 1, len(args))
	}

	val := args[0]

	switch {
	case value.IsFunctionType(val.GetType()):
		fn, _ := value.AsFunction(val)
		// Natives/actions/commands/routines have no accessible body
		if fn.Body == nil {
			return value.NoneVal(), verror.NewScriptError(
				verror.ErrIDInvalidOperation,
				[3]string{"native functions have no accessible body", "", ""},
			)
		}
		bodyElements := make([]core.Value, len(fn.Body.Elements))
		copy(bodyElements, fn.Body.Elements)
		return value.BlockVal(bodyElements), nil

	case val.GetType() == value.TypeObject:
		obj, _ := value.AsObject(val)
		// Build body block from manifest (field: value pairs)
		bodyElements := []core.Value{}
		for _, field := range obj.Manifest.Words {
			bodyElements = append(bodyElements, value.SetWordVal(field))
			if fv, found := obj.GetField(field); found {
				bodyElements = append(bodyElements, fv)
			} else {
				bodyElements = append(bodyElements, value.NoneVal())
			}
		}
		return value.BlockVal(bodyElements), nil

	default:
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDTypeMismatch,
			[3]string{"body-of", "function! object!", value.TypeToString(val.GetType())},
		)
	}
}

// WordsOf implements the `words-of` native (T158).
//
// Contract: words-of value -> block! of words
// Supports: object!
// Returns block of field names
func WordsOf(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NoneVal(), arityError("words-of", 1, len(args))
	}

	val := args[0]

	if val.GetType() != value.TypeObject {
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDTypeMismatch,
			[3]string{"object!", value.TypeToString(val.GetType()), ""},
		)
	}

	obj, _ := value.AsObject(val)

	// Build block of words
	wordElements := make([]core.Value, len(obj.Manifest.Words))
	for i, field := range obj.Manifest.Words {
		wordElements[i] = value.WordVal(field)
	}

	return value.BlockVal(wordElements), nil
}

// ValuesOf implements the `values-of` native (T159).
//
// Contract: values-of value -> block! of values
// Supports: object!
// Returns a new block of the field values (the values themselves are not copied)
func ValuesOf(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NoneVal(), arityError("values-of", 1, len(args))
	}

	val := args[0]

	if val.GetType() != value.TypeObject {
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDTypeMismatch,
			[3]string{"object!", value.TypeToString(val.GetType()), ""},
		)
	}

	obj, _ := value.AsObject(val)

	// Build block of values using owned frame
	valueElements := make([]core.Value, len(obj.Manifest.Words))
	for i, field := range obj.Manifest.Words {
		if fieldVal, found := obj.GetField(field); found {
			valueElements[i] = fieldVal
		} else {
			valueElements[i] = value.NoneVal()
		}
	}

	return value.BlockVal(valueElements), nil
}

// Source implements the `source` native (T160).
//
// Contract: source value -> string! formatted source
// Supports: function!, native!, object!
// Returns formatted string representation
func Source(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NoneVal(), arityError("source", 1, len(args))
	}

	val := args[0]

	switch {
	case value.IsFunctionType(val.GetType()):
		fn, _ := value.AsFunction(val)
		if fn.Body == nil {
			return value.StrVal(fmt.Sprintf("native[%s]", fn.Name)), nil
		}
		// Format: fn [spec] [body]
		specElements := []core.Value{}
		for _, param := range fn.Params {
			specElements = append(specElements, value.WordVal(param.Name))
		}
		specStr := formatBlock(specElements)
		bodyStr := formatBlock(fn.Body.Elements)
		source := fmt.Sprintf("fn %s %s", specStr, bodyStr)
		return value.StrVal(source), nil

	case val.GetType() == value.TypeObject:
		obj, _ := value.AsObject(val)
		// Format: object [field ...] (names only, no values)
		fields := []string{}
		for _, field := range obj.Manifest.Words {
			fields = append(fields, field)
		}
		fieldsStr := strings.Join(fields, " ")
		source := fmt.Sprintf("object [%s]", fieldsStr)
		return value.StrVal(source), nil

	default:
		return value.NoneVal(), verror.NewScriptError(
			verror.ErrIDTypeMismatch,
			[3]string{"source", "function! object!", value.TypeToString(val.GetType())},
		)
	}
}

// formatBlock formats a block of values into a string representation
func formatBlock(elements []core.Value) string {
	parts := make([]string, len(elements))
	for i, elem := range elements {
		parts[i] = elem.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
