package native

import (
	"fmt"
	"math/bits"

	"github.com/tomasz-nowicki/rebo/internal/core"
	"github.com/tomasz-nowicki/rebo/internal/value"
	"github.com/tomasz-nowicki/rebo/internal/verror"
)

// bitwiseBinary is the shape shared by and/or/xor: an integer op and the
// matching byte-wise op over binary!, dispatched once both operands agree
// on type.
type bitwiseBinary struct {
	name     string
	intOp    func(a, b int64) int64
	byteOp   func(a, b byte) byte
	padZero  bool // whether mismatched-length binary! operands treat the short side as zero-padded
}

func (op bitwiseBinary) apply(args []core.Value) (core.Value, error) {
	if len(args) != 2 {
		return value.NewNoneVal(), arityError(op.name, 2, len(args))
	}

	if args[0].GetType() != args[1].GetType() {
		return value.NewNoneVal(), verror.NewScriptError(
			verror.ErrIDTypeMismatch,
			[3]string{op.name, "operands must be same type", ""},
		)
	}

	switch args[0].GetType() {
	case value.TypeInteger:
		left, _ := value.AsIntValue(args[0])
		right, _ := value.AsIntValue(args[1])
		return value.NewIntVal(op.intOp(left, right)), nil

	case value.TypeBinary:
		left, _ := value.AsBinaryValue(args[0])
		right, _ := value.AsBinaryValue(args[1])
		return combineBinary(left, right, op.byteOp, op.padZero), nil

	default:
		return value.NewNoneVal(), typeError(op.name, "integer! binary!", args[0])
	}
}

var (
	bitAndOp = bitwiseBinary{"bit.and", func(a, b int64) int64 { return a & b }, func(a, b byte) byte { return a & b }, true}
	bitOrOp  = bitwiseBinary{"bit.or", func(a, b int64) int64 { return a | b }, func(a, b byte) byte { return a | b }, false}
	bitXorOp = bitwiseBinary{"bit.xor", func(a, b int64) int64 { return a ^ b }, func(a, b byte) byte { return a ^ b }, false}
)

func BitAnd(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	return bitAndOp.apply(args)
}

func BitOr(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	return bitOrOp.apply(args)
}

func BitXor(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	return bitXorOp.apply(args)
}

func BitNot(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NewNoneVal(), arityError("bit.not", 1, len(args))
	}

	switch args[0].GetType() {
	case value.TypeInteger:
		val, _ := value.AsIntValue(args[0])
		return value.NewIntVal(^val), nil

	case value.TypeBinary:
		bin, _ := value.AsBinaryValue(args[0])
		data := bin.Bytes()
		flipped := make([]byte, len(data))
		for i, b := range data {
			flipped[i] = ^b
		}
		return value.NewBinaryValue(flipped), nil

	default:
		return value.NewNoneVal(), typeError("bit.not", "integer! binary!", args[0])
	}
}

// bitShift implements bit.shl/bit.shr: a validated non-negative shift count
// dispatched over integer! (native Go shift) or binary! (byte-and-bit
// carry propagation).
func bitShift(name string, args []core.Value, shiftInt func(int64, uint) int64, shiftBinary func(*value.BinaryValue, int64) core.Value) (core.Value, error) {
	if len(args) != 2 {
		return value.NewNoneVal(), arityError(name, 2, len(args))
	}

	if args[1].GetType() != value.TypeInteger {
		return value.NewNoneVal(), typeError(name, "integer!", args[1])
	}
	count, _ := value.AsIntValue(args[1])
	if count < 0 {
		return value.NewNoneVal(), verror.NewScriptError(
			verror.ErrIDOutOfBounds,
			[3]string{name, "shift count must be non-negative", ""},
		)
	}

	switch args[0].GetType() {
	case value.TypeInteger:
		val, _ := value.AsIntValue(args[0])
		return value.NewIntVal(shiftInt(val, uint(count))), nil

	case value.TypeBinary:
		bin, _ := value.AsBinaryValue(args[0])
		return shiftBinary(bin, count), nil

	default:
		return value.NewNoneVal(), typeError(name, "integer! binary!", args[0])
	}
}

func BitShl(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	return bitShift("bit.shl", args,
		func(v int64, n uint) int64 { return v << n },
		shiftBinaryBytes,
	)
}

func BitShr(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	return bitShift("bit.shr", args,
		func(v int64, n uint) int64 { return v >> n },
		func(b *value.BinaryValue, count int64) core.Value { return shiftBinaryBytes(b, -count) },
	)
}

func bitFlagAt(name string, args []core.Value, set bool) (core.Value, error) {
	if len(args) != 2 {
		return value.NewNoneVal(), arityError(name, 2, len(args))
	}
	if args[0].GetType() != value.TypeInteger {
		return value.NewNoneVal(), typeError(name, "integer!", args[0])
	}
	if args[1].GetType() != value.TypeInteger {
		return value.NewNoneVal(), typeError(name, "integer!", args[1])
	}

	val, _ := value.AsIntValue(args[0])
	pos, _ := value.AsIntValue(args[1])
	if pos < 0 || pos >= 64 {
		return value.NewNoneVal(), verror.NewScriptError(
			verror.ErrIDInvalidOperation,
			[3]string{fmt.Sprintf("%s: bit position %d out of range (valid: 0-63)", name, pos), "", ""},
		)
	}

	if set {
		return value.NewIntVal(val | (1 << uint(pos))), nil
	}
	return value.NewIntVal(val &^ (1 << uint(pos))), nil
}

func BitOn(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	return bitFlagAt("bit.on", args, true)
}

func BitOff(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	return bitFlagAt("bit.off", args, false)
}

func BitCount(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) != 1 {
		return value.NewNoneVal(), arityError("bit.count", 1, len(args))
	}

	switch args[0].GetType() {
	case value.TypeInteger:
		val, _ := value.AsIntValue(args[0])
		return value.NewIntVal(int64(bits.OnesCount64(uint64(val)))), nil

	case value.TypeBinary:
		bin, _ := value.AsBinaryValue(args[0])
		total := 0
		for _, b := range bin.Bytes() {
			total += bits.OnesCount8(b)
		}
		return value.NewIntVal(int64(total)), nil

	default:
		return value.NewNoneVal(), typeError("bit.count", "integer! binary!", args[0])
	}
}

// combineBinary byte-wise combines two binary! values, right-aligning the
// shorter one. When padZero is false, a position where one side has run out
// of bytes takes the other side's byte unmodified (OR/XOR identity);
// padZero treats the missing byte as 0 (AND's absorbing case).
func combineBinary(left, right *value.BinaryValue, op func(byte, byte) byte, padZero bool) core.Value {
	leftBytes, rightBytes := left.Bytes(), right.Bytes()

	width := len(leftBytes)
	if len(rightBytes) > width {
		width = len(rightBytes)
	}

	result := make([]byte, width)
	leftOffset := width - len(leftBytes)
	rightOffset := width - len(rightBytes)

	for i := 0; i < width; i++ {
		haveLeft := i >= leftOffset
		haveRight := i >= rightOffset

		var l, r byte
		if haveLeft {
			l = leftBytes[i-leftOffset]
		}
		if haveRight {
			r = rightBytes[i-rightOffset]
		}

		switch {
		case padZero, haveLeft && haveRight:
			result[i] = op(l, r)
		case haveLeft:
			result[i] = l
		default:
			result[i] = r
		}
	}

	return value.NewBinaryValue(result)
}

// shiftBinaryBytes shifts a binary! value left by bits (positive) or right
// (negative), carrying bits across byte boundaries.
func shiftBinaryBytes(b *value.BinaryValue, bitOffset int64) core.Value {
	data := b.Bytes()
	if bitOffset == 0 || len(data) == 0 {
		return value.NewBinaryValue(append([]byte(nil), data...))
	}

	left := bitOffset > 0
	n := bitOffset
	if !left {
		n = -n
	}

	byteShift := int(n / 8)
	bitShift := uint(n % 8)
	result := make([]byte, len(data))
	if byteShift >= len(data) {
		return value.NewBinaryValue(result)
	}

	if left {
		for i := 0; i < len(data)-byteShift; i++ {
			result[i+byteShift] = data[i]
		}
		if bitShift > 0 {
			carry := byte(0)
			for i := len(result) - 1; i >= 0; i-- {
				next := result[i] >> (8 - bitShift)
				result[i] = (result[i] << bitShift) | carry
				carry = next
			}
		}
		return value.NewBinaryValue(result)
	}

	for i := byteShift; i < len(data); i++ {
		result[i-byteShift] = data[i]
	}
	if bitShift > 0 {
		carry := byte(0)
		for i := 0; i < len(result); i++ {
			next := result[i] << (8 - bitShift)
			result[i] = (result[i] >> bitShift) | carry
			carry = next
		}
	}
	return value.NewBinaryValue(result)
}
