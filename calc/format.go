// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// resultDecimals caps the fractional digits kept in a displayed result
const resultDecimals = 10

// FormatResult renders an evaluation result for the display.
// Non-finite values show as ∞; fractions are rounded half away from
// zero to 10 decimals and printed without trailing zeros.
func FormatResult(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return GlyphInfinity
	}
	if v == math.Trunc(v) {
		return formatNumber(v)
	}

	return formatNumber(roundHalfAway(v, resultDecimals))
}

// roundHalfAway rounds the exact binary value of v to the given number
// of decimals, with ties away from zero.
func roundHalfAway(v float64, decimals int) float64 {
	r := new(big.Rat).SetFloat64(v)
	if r == nil {
		return v
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))

	q, m := new(big.Int).QuoRem(new(big.Int).Abs(r.Num()), r.Denom(), new(big.Int))
	if m.Lsh(m, 1).Cmp(r.Denom()) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if r.Sign() < 0 {
		q.Neg(q)
	}

	rounded, err := strconv.ParseFloat(q.String()+"e-"+strconv.Itoa(decimals), 64)
	if err != nil {
		return v
	}
	return rounded
}

// formatNumber prints the shortest decimal that reads back as v,
// switching to exponent notation outside [1e-6, 1e21).
func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
