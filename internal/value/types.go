package value

import "github.com/tomasz-nowicki/rebo/internal/core"

// Value, ValueType and Evaluator are aliases, not new types: every concrete
// kind in this package already implements core.Value directly, and native
// function code should read as "value.Value" / "value.Evaluator" without
// needing to import internal/core itself or cast across packages.
type Value = core.Value
type ValueType = core.ValueType
type Evaluator = core.Evaluator

const (
	TypeEnd   = core.TypeEnd
	TypeUnset = core.TypeUnset
	TypeNone  = core.TypeNone

	TypeLogic     = core.TypeLogic
	TypeInteger   = core.TypeInteger
	TypeDecimal   = core.TypeDecimal
	TypeCharacter = core.TypeCharacter
	TypeString    = core.TypeString
	TypeBinary    = core.TypeBinary
	TypeImage     = core.TypeImage
	TypeBitset    = core.TypeBitset
	TypeTime      = core.TypeTime
	TypeDate      = core.TypeDate
	TypeMoney     = core.TypeMoney
	TypePair      = core.TypePair
	TypeTuple     = core.TypeTuple

	TypeWord    = core.TypeWord
	TypeGetWord = core.TypeGetWord
	TypeLitWord = core.TypeLitWord
	TypeSetWord = core.TypeSetWord

	TypePath    = core.TypePath
	TypeGetPath = core.TypeGetPath
	TypeLitPath = core.TypeLitPath
	TypeSetPath = core.TypeSetPath

	TypeBlock = core.TypeBlock
	TypeParen = core.TypeParen

	TypeFunction = core.TypeFunction
	TypeNative   = core.TypeNative
	TypeAction   = core.TypeAction
	TypeClosure  = core.TypeClosure
	TypeCommand  = core.TypeCommand
	TypeRoutine  = core.TypeRoutine

	TypeDatatype = core.TypeDatatype

	TypeError  = core.TypeError
	TypeObject = core.TypeObject
	TypeModule = core.TypeModule
	TypePort   = core.TypePort

	TypeFrame = core.TypeFrame
)

// New-prefixed aliases. Both spellings are used across the codebase
// (constructors grew organically as natives were added); rather than pick
// a winner and touch every call site, both names resolve to the same
// underlying constructor.
func NewNoneVal() core.Value                { return NoneVal() }
func NewUnsetVal() core.Value               { return UnsetVal() }
func NewLogicVal(b bool) core.Value         { return LogicVal(b) }
func NewIntVal(i int64) core.Value          { return IntVal(i) }
func NewStrVal(s string) core.Value         { return StrVal(s) }
func NewCharVal(r rune) core.Value          { return CharVal(r) }
func NewWordVal(s string) core.Value        { return WordVal(s) }
func NewSetWordVal(s string) core.Value     { return SetWordVal(s) }
func NewGetWordVal(s string) core.Value     { return GetWordVal(s) }
func NewLitWordVal(s string) core.Value     { return LitWordVal(s) }
func NewBlockVal(els []core.Value) core.Value { return BlockVal(els) }
func NewParenVal(els []core.Value) core.Value { return ParenVal(els) }
func NewBinaryVal(data []byte) core.Value   { return BinaryVal(data) }
func NewDatatypeVal(name string) core.Value { return DatatypeVal(name) }
func NewErrorVal(err error) core.Value      { return ErrorVal(err) }
