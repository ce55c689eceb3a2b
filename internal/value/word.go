package value

import "github.com/tomasz-nowicki/rebo/internal/core"

// Word types all share a bare symbol payload; they differ only in how the
// evaluator's dispatch table treats them (internal/eval):
//   - WordValue: looked up and evaluated (may trigger a function call)
//   - SetWordValue: assigns the next evaluated value to symbol
//   - GetWordValue: looked up but never evaluated (no function call)
//   - LitWordValue: evaluates to itself as a WordValue

type WordValue struct{ symbol string }

func (w *WordValue) GetType() core.ValueType { return core.TypeWord }
func (w *WordValue) GetPayload() any         { return w.symbol }
func (w *WordValue) String() string          { return w.symbol }
func (w *WordValue) Equals(other core.Value) bool {
	if ow, ok := other.(*WordValue); ok {
		return w.symbol == ow.symbol
	}
	return false
}
func (w *WordValue) Symbol() string { return w.symbol }

type SetWordValue struct{ symbol string }

func (s *SetWordValue) GetType() core.ValueType { return core.TypeSetWord }
func (s *SetWordValue) GetPayload() any         { return s.symbol }
func (s *SetWordValue) String() string          { return s.symbol + ":" }
func (s *SetWordValue) Equals(other core.Value) bool {
	if os, ok := other.(*SetWordValue); ok {
		return s.symbol == os.symbol
	}
	return false
}
func (s *SetWordValue) Symbol() string { return s.symbol }

type GetWordValue struct{ symbol string }

func (g *GetWordValue) GetType() core.ValueType { return core.TypeGetWord }
func (g *GetWordValue) GetPayload() any         { return g.symbol }
func (g *GetWordValue) String() string          { return ":" + g.symbol }
func (g *GetWordValue) Equals(other core.Value) bool {
	if og, ok := other.(*GetWordValue); ok {
		return g.symbol == og.symbol
	}
	return false
}
func (g *GetWordValue) Symbol() string { return g.symbol }

type LitWordValue struct{ symbol string }

func (l *LitWordValue) GetType() core.ValueType { return core.TypeLitWord }
func (l *LitWordValue) GetPayload() any         { return l.symbol }
func (l *LitWordValue) String() string          { return "'" + l.symbol }
func (l *LitWordValue) Equals(other core.Value) bool {
	if ol, ok := other.(*LitWordValue); ok {
		return l.symbol == ol.symbol
	}
	return false
}
func (l *LitWordValue) Symbol() string { return l.symbol }

// ValidWordSymbol reports whether s is a legal word symbol: non-empty, not
// digit-led, and built only from letters, digits and the REBOL word
// punctuation (- _ ? ! ' * + =).
func ValidWordSymbol(s string) bool {
	if len(s) == 0 {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for _, r := range s {
		if !isWordChar(r) {
			return false
		}
	}
	return true
}

func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '-' || r == '_' || r == '?' || r == '!' || r == '\'' || r == '*' || r == '+' || r == '='
}
