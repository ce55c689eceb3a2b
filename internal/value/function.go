package value

import (
	"fmt"

	"github.com/tomasz-nowicki/rebo/internal/core"
)

// ParamSpec is one declared formal: either a positional argument or a
// refinement name (Refinement == true), optionally followed by the
// dependent positional params it introduces.
type ParamSpec struct {
	Name string

	// Refinement marks this entry as a refinement name (--name) rather than
	// a plain positional argument.
	Refinement bool

	// TakesValue, meaningful only when Refinement is true, means the
	// refinement is followed by one dependent value rather than standing
	// alone as a boolean flag.
	TakesValue bool

	// Eval means the actual argument in this position is evaluated before
	// being bound; false means it is taken literally (the next raw value,
	// unevaluated) — used by natives like `fn`/`if` that consume blocks.
	Eval bool

	// Hidden marks a pure local: bound in the call frame but never supplied
	// by a caller and never counted toward Arity.
	Hidden bool

	// Optional marks a trailing positional argument that binds to none!
	// when the caller supplies no further tokens, instead of raising an
	// arg-count error. Meaningful only on the last positional param.
	Optional bool

	// AcceptedTypes restricts the argument's runtime type; empty means
	// unconstrained.
	AcceptedTypes []core.ValueType
}

// NewParamSpec creates a positional parameter. eval selects whether the
// argument is evaluated (true) or taken as a literal value (false).
func NewParamSpec(name string, eval bool) ParamSpec {
	return ParamSpec{Name: name, Eval: eval}
}

// NewRefinementSpec creates a refinement parameter. takesValue selects
// whether it is followed by a dependent value or stands alone as a flag.
// The dependent value, if any, is evaluated; use NewLiteralRefinementSpec
// for refinements that must see the bare word/block unevaluated.
func NewRefinementSpec(name string, takesValue bool) ParamSpec {
	return ParamSpec{Name: name, Refinement: true, TakesValue: takesValue, Eval: takesValue}
}

// NewLiteralRefinementSpec creates a refinement whose dependent value is
// taken literally rather than evaluated (e.g. debug --breakpoint name).
func NewLiteralRefinementSpec(name string) ParamSpec {
	return ParamSpec{Name: name, Refinement: true, TakesValue: true, Eval: false}
}

// NewOptionalParamSpec creates a trailing positional parameter that binds to
// none! rather than erroring when the caller omits it (used by return).
func NewOptionalParamSpec(name string, eval bool) ParamSpec {
	return ParamSpec{Name: name, Eval: eval, Optional: true}
}

// Accepts reports whether typ satisfies this param's type constraint.
func (p ParamSpec) Accepts(typ core.ValueType) bool {
	if len(p.AcceptedTypes) == 0 {
		return true
	}
	for _, t := range p.AcceptedTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// ParamDoc documents a single parameter of a native function.
type ParamDoc struct {
	Name        string
	Type        string
	Description string
	Optional    bool
}

// NativeDoc carries help-system documentation for a native or action. It
// lives alongside FunctionValue, rather than in internal/native (whose
// registration code is the only place that populates it), so that
// FunctionValue.Doc can hold a pointer to it without an import cycle.
type NativeDoc struct {
	Category    string
	Summary     string
	Description string
	Parameters  []ParamDoc
	Returns     string
	Examples    []string
	SeeAlso     []string
	Tags        []string
}

// Validate checks if the documentation is complete and well-formed.
// Returns an error message if validation fails, empty string if valid.
func (d *NativeDoc) Validate(funcName string) string {
	if d.Category == "" {
		return funcName + ": missing category"
	}
	if d.Summary == "" {
		return funcName + ": missing summary"
	}
	if d.Description == "" {
		return funcName + ": missing description"
	}
	if d.Returns == "" {
		return funcName + ": missing returns documentation"
	}
	if len(d.Examples) == 0 {
		return funcName + ": missing examples"
	}
	for _, param := range d.Parameters {
		if param.Name == "" {
			return funcName + ": parameter missing name"
		}
		if param.Type == "" {
			return funcName + ": parameter '" + param.Name + "' missing type"
		}
		if param.Description == "" {
			return funcName + ": parameter '" + param.Name + "' missing description"
		}
	}
	return ""
}

// HasDoc reports whether the documentation is present and non-empty.
func (d *NativeDoc) HasDoc() bool {
	return d != nil && d.Summary != ""
}

// FunctionValue is the single representation behind every callable kind the
// evaluator dispatches on: user functions, closures, natives, actions,
// commands and routines differ only in Kind and in how Native/Body/Parent
// are populated — the argument-fulfillment state machine (internal/eval)
// treats them identically up to that point.
type FunctionValue struct {
	Kind   core.ValueType // TypeFunction, TypeClosure, TypeNative, TypeAction, TypeCommand or TypeRoutine
	Name   string
	Params []ParamSpec

	Body *BlockValue // user/closure body; nil for native-backed kinds

	// Native backs TypeNative, TypeAction, TypeCommand and TypeRoutine —
	// an action's Native re-dispatches on the first argument's runtime
	// type via the per-type frame registry (internal/frame, consulted by
	// internal/native's CreateAction); this field carries the dispatcher.
	Native core.NativeFunc

	Parent int // captured enclosing frame index for user functions/closures; -1 otherwise

	Infix     bool // usable as an infix operator (consumes a left argument)
	HasReturn bool // body declares an implicit definitional RETURN local

	Doc *NativeDoc // help-system metadata; nil means undocumented
}

// NewUserFunction creates a TypeFunction value (the `fn` native's product).
// parent is the lexical frame index captured at definition time (-1 if none).
func NewUserFunction(name string, params []ParamSpec, body *BlockValue, parent int, hasReturn bool) *FunctionValue {
	return &FunctionValue{Kind: core.TypeFunction, Name: name, Params: params, Body: body, Parent: parent, HasReturn: hasReturn}
}

// NewClosure creates a TypeClosure value: a function whose captured parent
// frame is kept alive past its defining call.
func NewClosure(name string, params []ParamSpec, body *BlockValue, parent int, hasReturn bool) *FunctionValue {
	return &FunctionValue{Kind: core.TypeClosure, Name: name, Params: params, Body: body, Parent: parent, HasReturn: hasReturn}
}

// NewNativeFunction creates a TypeNative value backed by a Go implementation.
// rest accepts, in any combination, a bool (Infix) and a *NativeDoc (Doc) —
// registration code grew both a bare 3-argument call and a fully-annotated
// 5-argument call over time, so both are accepted here rather than forcing
// every call site onto one shape.
func NewNativeFunction(name string, params []ParamSpec, impl core.NativeFunc, rest ...interface{}) *FunctionValue {
	fn := &FunctionValue{Kind: core.TypeNative, Name: name, Params: params, Native: impl, Parent: -1}
	for _, r := range rest {
		switch v := r.(type) {
		case bool:
			fn.Infix = v
		case *NativeDoc:
			fn.Doc = v
		}
	}
	return fn
}

// NewAction creates a TypeAction value: a polymorphic function that
// re-dispatches to a type-specific implementation based on its first
// argument's runtime kind. impl is the dispatcher invoked on call.
func NewAction(name string, params []ParamSpec, impl core.NativeFunc) *FunctionValue {
	return &FunctionValue{Kind: core.TypeAction, Name: name, Params: params, Native: impl, Parent: -1}
}

// NewCommand creates a TypeCommand value for an extension-call-convention
// native (arguments pre-validated against a fixed spec, no refinements).
func NewCommand(name string, params []ParamSpec, impl core.NativeFunc) *FunctionValue {
	return &FunctionValue{Kind: core.TypeCommand, Name: name, Params: params, Native: impl, Parent: -1}
}

// NewRoutine creates a TypeRoutine value for a foreign-call-convention
// native (e.g. calling into a C ABI library).
func NewRoutine(name string, params []ParamSpec, impl core.NativeFunc) *FunctionValue {
	return &FunctionValue{Kind: core.TypeRoutine, Name: name, Params: params, Native: impl, Parent: -1}
}

// IsFunctionType reports whether t is one of the callable kinds a
// FunctionValue can carry (TypeFunction, TypeClosure, TypeNative,
// TypeAction, TypeCommand or TypeRoutine).
func IsFunctionType(t core.ValueType) bool {
	switch t {
	case core.TypeFunction, core.TypeClosure, core.TypeNative, core.TypeAction, core.TypeCommand, core.TypeRoutine:
		return true
	default:
		return false
	}
}

// FuncVal and NewFuncVal both wrap a *FunctionValue as a core.Value;
// registration code uses both spellings.
func FuncVal(f *FunctionValue) core.Value    { return f }
func NewFuncVal(f *FunctionValue) core.Value { return f }

func (f *FunctionValue) GetType() core.ValueType { return f.Kind }
func (f *FunctionValue) GetPayload() any         { return f }

func (f *FunctionValue) String() string {
	switch f.Kind {
	case core.TypeNative:
		return fmt.Sprintf("native[%s]", f.Name)
	case core.TypeAction:
		return fmt.Sprintf("action[%s]", f.Name)
	case core.TypeClosure:
		return fmt.Sprintf("closure[%s]", f.Name)
	case core.TypeCommand:
		return fmt.Sprintf("command[%s]", f.Name)
	case core.TypeRoutine:
		return fmt.Sprintf("routine[%s]", f.Name)
	default:
		return fmt.Sprintf("function[%s]", f.Name)
	}
}

func (f *FunctionValue) Equals(other core.Value) bool {
	of, ok := other.(*FunctionValue)
	return ok && of == f
}

// Arity returns the number of required positional (non-refinement,
// non-hidden) parameters.
func (f *FunctionValue) Arity() int {
	count := 0
	for _, p := range f.Params {
		if !p.Refinement && !p.Hidden {
			count++
		}
	}
	return count
}

// HasRefinement reports whether the function declares a refinement of the given name.
func (f *FunctionValue) HasRefinement(name string) bool {
	for _, p := range f.Params {
		if p.Refinement && p.Name == name {
			return true
		}
	}
	return false
}

// GetRefinement returns the ParamSpec for a named refinement, or nil.
func (f *FunctionValue) GetRefinement(name string) *ParamSpec {
	for i := range f.Params {
		if f.Params[i].Refinement && f.Params[i].Name == name {
			return &f.Params[i]
		}
	}
	return nil
}

// RefinementArgs returns the dependent ParamSpecs following the named
// refinement, up to (but not including) the next refinement entry.
func (f *FunctionValue) RefinementArgs(name string) []ParamSpec {
	start := -1
	for i, p := range f.Params {
		if p.Refinement && p.Name == name {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}
	end := start
	for end < len(f.Params) && !f.Params[end].Refinement {
		end++
	}
	return f.Params[start:end]
}
