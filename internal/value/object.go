package value

import (
	"fmt"

	"github.com/tomasz-nowicki/rebo/internal/core"
)

// ObjectManifest records the field order and declared accepted-type
// constraint (if any) a MAKE OBJECT! spec gave each field, so the path
// walker's object dispatcher can reject a SetPath write of the wrong type
// (ErrIDBadFieldSet) instead of silently accepting it.
type ObjectManifest struct {
	Words []string
	Types []core.ValueType // core.TypeEnd means "unconstrained"
}

// HasField reports whether name was declared in the manifest.
func (m ObjectManifest) HasField(name string) bool {
	for _, w := range m.Words {
		if w == name {
			return true
		}
	}
	return false
}

// AcceptsType reports whether assigning a value of typ to name is allowed.
func (m ObjectManifest) AcceptsType(name string, typ core.ValueType) bool {
	for i, w := range m.Words {
		if w == name {
			return m.Types[i] == core.TypeEnd || m.Types[i] == typ
		}
	}
	return false
}

// ObjectInstance is the script-visible handle onto a binding frame
// (core.FrameObject) — fields live in Frame, not here. ParentProto chains
// to an enclosing prototype object for field fallback (spec's object
// inheritance). Frame is held directly rather than by arena index so that
// objects built outside the evaluator's call-frame arena (reflection
// results, parsed token records, namespace objects like `bit`) can still
// be path-addressed without needing to be registered.
type ObjectInstance struct {
	Frame       core.Frame
	ParentProto *ObjectInstance
	Manifest    ObjectManifest
}

// NewObject creates an ObjectInstance over a frame, with an optional
// manifest (pass value.ObjectManifest{} when none is known, e.g. for ad
// hoc reflection objects).
func NewObject(f core.Frame, manifest ObjectManifest) *ObjectInstance {
	return &ObjectInstance{Frame: f, Manifest: manifest}
}

func (o *ObjectInstance) GetType() core.ValueType { return core.TypeObject }
func (o *ObjectInstance) GetPayload() any         { return o }

func (o *ObjectInstance) String() string {
	if o == nil {
		return "object[]"
	}
	return fmt.Sprintf("object[fields:%d]", len(o.Manifest.Words))
}

func (o *ObjectInstance) Equals(other core.Value) bool {
	oo, ok := other.(*ObjectInstance)
	return ok && oo.Frame == o.Frame
}

// ObjectVal wraps an ObjectInstance as a core.Value.
func ObjectVal(obj *ObjectInstance) core.Value { return obj }

// SetField writes directly to the object's own frame, bypassing the
// prototype chain (fields are never created dynamically: callers check
// ObjectManifest.HasField first).
func (o *ObjectInstance) SetField(name string, val core.Value) {
	o.Frame.Bind(name, val)
}

// GetField reads a field, falling back through the prototype chain.
func (o *ObjectInstance) GetField(name string) (core.Value, bool) {
	if v, ok := o.Frame.Get(name); ok {
		return v, true
	}
	if o.ParentProto != nil {
		return o.ParentProto.GetField(name)
	}
	return nil, false
}
