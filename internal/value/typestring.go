package value

import "github.com/tomasz-nowicki/rebo/internal/core"

// TypeToString renders a ValueType the way rebo source denotes it: a
// lowercase name followed by "!", REBOL's datatype-literal convention.
func TypeToString(t core.ValueType) string {
	switch t {
	case core.TypeEnd:
		return "end!"
	case core.TypeUnset:
		return "unset!"
	case core.TypeNone:
		return "none!"
	case core.TypeLogic:
		return "logic!"
	case core.TypeInteger:
		return "integer!"
	case core.TypeDecimal:
		return "decimal!"
	case core.TypeCharacter:
		return "char!"
	case core.TypeString:
		return "string!"
	case core.TypeBinary:
		return "binary!"
	case core.TypeImage:
		return "image!"
	case core.TypeBitset:
		return "bitset!"
	case core.TypeTime:
		return "time!"
	case core.TypeDate:
		return "date!"
	case core.TypeMoney:
		return "money!"
	case core.TypePair:
		return "pair!"
	case core.TypeTuple:
		return "tuple!"
	case core.TypeWord:
		return "word!"
	case core.TypeGetWord:
		return "get-word!"
	case core.TypeLitWord:
		return "lit-word!"
	case core.TypeSetWord:
		return "set-word!"
	case core.TypePath:
		return "path!"
	case core.TypeGetPath:
		return "get-path!"
	case core.TypeLitPath:
		return "lit-path!"
	case core.TypeSetPath:
		return "set-path!"
	case core.TypeBlock:
		return "block!"
	case core.TypeParen:
		return "paren!"
	case core.TypeFunction:
		return "function!"
	case core.TypeNative:
		return "native!"
	case core.TypeAction:
		return "action!"
	case core.TypeClosure:
		return "closure!"
	case core.TypeCommand:
		return "command!"
	case core.TypeRoutine:
		return "routine!"
	case core.TypeDatatype:
		return "datatype!"
	case core.TypeError:
		return "error!"
	case core.TypeObject:
		return "object!"
	case core.TypeModule:
		return "module!"
	case core.TypePort:
		return "port!"
	case core.TypeFrame:
		return "frame!"
	default:
		return "unknown!"
	}
}
