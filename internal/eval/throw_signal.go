package eval

import "github.com/tomasz-nowicki/rebo/internal/core"

// ThrowSignal unwinds to the nearest enclosing catch, carrying the thrown
// value. Unlike break/continue (verror.ErrThrow-category *verror.Error
// values interpreted by loop bodies), a throw is not bound to loop nesting
// and must cross intervening function calls until a catch native stops it,
// so it travels as its own Go error type rather than a verror.Error.
type ThrowSignal struct {
	value core.Value
}

func NewThrowSignal(val core.Value) *ThrowSignal {
	return &ThrowSignal{value: val}
}

func (t *ThrowSignal) Error() string {
	return "throw signal"
}

func (t *ThrowSignal) Value() core.Value {
	return t.value
}
