package verror

import (
	"strings"
	"testing"

	"github.com/tomasz-nowicki/rebo/internal/core"
	"github.com/tomasz-nowicki/rebo/internal/value"
)

// TestCaptureNear_DecimalContext verifies that decimal values render inside
// the Near window the same way any other scalar does, with the offending
// value bracketed.
func TestCaptureNear_DecimalContext(t *testing.T) {
	tests := []struct {
		name       string
		vals       []core.Value
		index      int
		wantSubstr []string
	}{
		{
			name: "decimal at error position",
			vals: []core.Value{
				value.IntVal(1),
				value.IntVal(2),
				value.DecimalFromString("19.99"),
			},
			index:      2,
			wantSubstr: []string{"19.99", ">>>", "<<<"},
		},
		{
			name: "decimal with trailing zero scale",
			vals: []core.Value{
				value.DecimalFromString("42.0"),
				value.IntVal(10),
			},
			index:      0,
			wantSubstr: []string{"42.0", ">>>", "<<<"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CaptureNear(tt.vals, tt.index)
			for _, want := range tt.wantSubstr {
				if !strings.Contains(got, want) {
					t.Errorf("CaptureNear() missing expected substring\nwant: %q\ngot:  %q", want, got)
				}
			}
		})
	}
}
