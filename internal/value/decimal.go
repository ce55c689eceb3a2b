package value

import (
	"fmt"
	"strings"

	"github.com/ericlagergren/decimal"
	"github.com/tomasz-nowicki/rebo/internal/core"
)

// DecimalValue is a decimal128-precision floating value (34 significant
// digits, half-even rounding), backed by github.com/ericlagergren/decimal
// rather than float64 so money-like arithmetic doesn't accumulate binary
// rounding error. Scale is tracked separately from the magnitude so
// "1.20" round-trips as "1.20", not "1.2".
type DecimalValue struct {
	Magnitude *decimal.Big
	Context   *decimal.Context
	Scale     int16
}

var defaultDecimalContext = decimal.Context{
	Precision:    34,
	RoundingMode: decimal.ToNearestEven,
}

// NewDecimal creates a DecimalValue with the default decimal128-style context.
func NewDecimal(magnitude *decimal.Big, scale int16) *DecimalValue {
	ctx := defaultDecimalContext
	return &DecimalValue{Magnitude: magnitude, Context: &ctx, Scale: scale}
}

// DecimalVal wraps a *decimal.Big magnitude (math natives' working type) as
// a core.Value, carrying scale for display.
func DecimalVal(magnitude *decimal.Big, scale int16) core.Value {
	return NewDecimal(magnitude, scale)
}

// DecimalFromString parses a decimal literal such as "19.99" or "42.0",
// preserving its written scale for round-trip formatting.
func DecimalFromString(s string) core.Value {
	ctx := defaultDecimalContext
	big := new(decimal.Big)
	big.Context = ctx
	big.SetString(s)
	scale := 0
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		scale = len(s) - dot - 1
	}
	return NewDecimal(big, int16(scale))
}

func (d *DecimalValue) GetType() core.ValueType { return core.TypeDecimal }
func (d *DecimalValue) GetPayload() any         { return d }

func (d *DecimalValue) String() string {
	if d == nil || d.Magnitude == nil {
		return "0.0"
	}
	if f, ok := d.Magnitude.Float64(); ok {
		return fmt.Sprintf("%.*f", d.Scale, f)
	}
	return d.Magnitude.String()
}

func (d *DecimalValue) Equals(other core.Value) bool {
	od, ok := other.(*DecimalValue)
	if !ok {
		return false
	}
	if d.Magnitude == nil && od.Magnitude == nil {
		return true
	}
	if d.Magnitude == nil || od.Magnitude == nil {
		return false
	}
	return d.Magnitude.Cmp(od.Magnitude) == 0
}
