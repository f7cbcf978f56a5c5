// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatResult(t *testing.T) {
	a, b := 0.1, 0.2
	one, three := 1.0, 3.0

	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"positive infinity", math.Inf(1), "∞"},
		{"negative infinity", math.Inf(-1), "∞"},
		{"nan", math.NaN(), "∞"},
		{"integer", 10, "10"},
		{"negative integer", -4, "-4"},
		{"zero", 0, "0"},
		{"negative zero", math.Copysign(0, -1), "0"},
		{"simple fraction", 0.1, "0.1"},
		{"float noise trimmed", a + b, "0.3"},
		{"repeating third", one / three, "0.3333333333"},
		{"rounds up", 2 / three, "0.6666666667"},
		{"short fraction", 123.456, "123.456"},
		{"negative fraction", -2.75, "-2.75"},
		{"below rounding precision", 1e-11, "0"},
		{"small value exponent", 1.5e-7, "1.5e-7"},
		{"large integer exponent", 1e21, "1e+21"},
		{"large mantissa exponent", 2.5e21, "2.5e+21"},
		{"large integer plain", 123456789012, "123456789012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatResult(tt.in))
		})
	}
}

func TestFormatEvaluatedResults(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"10%", "0.1"},
		{"5+5", "10"},
		{"1/0", "∞"},
		{"0.1+0.2", "0.3"},
		{"10÷4", "2.5"},
		{"1÷3", "0.3333333333"},
		{"1÷2048", "0.0004882813"},
		{"-1÷2048", "-0.0004882813"},
		{"0.00048828125", "0.0004882813"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := Evaluate(tt.expr)
			if assert.NoError(t, err) {
				assert.Equal(t, tt.want, FormatResult(v))
			}
		})
	}
}
