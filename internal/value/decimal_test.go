package value

import "testing"

func TestDecimalFromStringPreservesScale(t *testing.T) {
	d := DecimalFromString("19.99")
	if d.String() != "19.99" {
		t.Errorf("String() = %q, want %q", d.String(), "19.99")
	}

	trailing := DecimalFromString("42.0")
	if trailing.String() != "42.0" {
		t.Errorf("String() = %q, want %q (trailing zero preserved)", trailing.String(), "42.0")
	}
}

func TestDecimalEquals(t *testing.T) {
	a := DecimalFromString("1.50")
	b := DecimalFromString("1.5")
	if !a.Equals(b) {
		t.Error("1.50 and 1.5 should be numerically equal regardless of scale")
	}

	c := DecimalFromString("2.00")
	if a.Equals(c) {
		t.Error("different magnitudes should not be equal")
	}
}
