// Package frame implements the binding contexts the evaluator arena-
// addresses by index (core.Frame). A Frame maps word symbols to Values:
// function-call argument/local frames, closures kept alive past their
// call, and object/module field frames all share this same
// representation, differing only in FrameType and in what owns the index.
//
// rebo is local-by-default: assigning to a word inside a function body
// creates a binding in that call's own frame unless the word was already
// bound by an enclosing frame the evaluator chose to walk up to — Frame
// itself only ever does local lookups; walking the parent chain is the
// evaluator's job (internal/eval), not this package's.
package frame

import "github.com/tomasz-nowicki/rebo/internal/core"

// FrameType distinguishes why a frame exists; it does not change lookup
// semantics, only diagnostics and capture behavior (internal/eval).
type FrameType = core.FrameType

const (
	FrameFunctionArgs FrameType = iota
	FrameClosure
	FrameObject
)

// Frame is a parallel-array binding context: Words and Values move
// together, Parent is an index into the evaluator's frame arena (not a
// pointer) so it survives arena growth, and Index is this frame's own
// slot in that same arena once registered.
type Frame struct {
	typ    FrameType
	Words  []string
	Values []core.Value
	Parent int // parent frame's arena index, -1 if none
	Index  int // this frame's own arena index, set by RegisterFrame
	Name   string
}

// NewFrame creates an empty frame of the given kind with the given parent.
func NewFrame(typ FrameType, parent int) *Frame {
	return &Frame{typ: typ, Parent: parent, Index: -1}
}

// NewFrameWithCapacity pre-allocates Words/Values, useful when the
// parameter count is known up front (function call frames).
func NewFrameWithCapacity(typ FrameType, parent, capacity int) *Frame {
	return &Frame{
		typ:    typ,
		Words:  make([]string, 0, capacity),
		Values: make([]core.Value, 0, capacity),
		Parent: parent,
		Index:  -1,
	}
}

func (f *Frame) GetType() FrameType          { return f.typ }
func (f *Frame) ChangeType(typ FrameType)    { f.typ = typ }

// Bind adds a new word binding, or overwrites an existing one in this
// frame — it never consults the parent chain.
func (f *Frame) Bind(symbol string, val core.Value) {
	for i, w := range f.Words {
		if w == symbol {
			f.Values[i] = val
			return
		}
	}
	f.Words = append(f.Words, symbol)
	f.Values = append(f.Values, val)
}

// Get performs a local-only lookup.
func (f *Frame) Get(symbol string) (core.Value, bool) {
	for i, w := range f.Words {
		if w == symbol {
			return f.Values[i], true
		}
	}
	return nil, false
}

// Set updates an existing local binding; it does not create one.
func (f *Frame) Set(symbol string, val core.Value) bool {
	for i, w := range f.Words {
		if w == symbol {
			f.Values[i] = val
			return true
		}
	}
	return false
}

func (f *Frame) HasWord(symbol string) bool {
	for _, w := range f.Words {
		if w == symbol {
			return true
		}
	}
	return false
}

func (f *Frame) GetParent() int   { return f.Parent }
func (f *Frame) GetIndex() int    { return f.Index }
func (f *Frame) SetIndex(idx int) { f.Index = idx }
func (f *Frame) Count() int       { return len(f.Words) }

// Binding is a (symbol, value) pair, used only for diagnostic enumeration.
type Binding = core.Binding

// All returns every binding in this frame, for inspection/debugging natives.
func (f *Frame) All() []core.Binding {
	out := make([]core.Binding, len(f.Words))
	for i := range f.Words {
		out[i] = core.Binding{Symbol: f.Words[i], Value: f.Values[i]}
	}
	return out
}

// Clone makes a shallow copy (bound values are shared, slices are not),
// used when a closure captures a snapshot of the frame it closes over.
func (f *Frame) Clone() *Frame {
	wordsCopy := make([]string, len(f.Words))
	valuesCopy := make([]core.Value, len(f.Values))
	copy(wordsCopy, f.Words)
	copy(valuesCopy, f.Values)
	return &Frame{typ: f.typ, Words: wordsCopy, Values: valuesCopy, Parent: f.Parent, Index: -1, Name: f.Name}
}

var _ core.Frame = (*Frame)(nil)
