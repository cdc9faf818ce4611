package prediction

import (
	"math"
	"math/big"
)

var (
	hundred = big.NewFloat(100)
	half    = big.NewFloat(0.5)
)

// Round2 rounds v to two decimal places using the exact binary value of v,
// with ties going away from zero. Scaling by 100 in float64 first can land
// on a false tie (1.9849999999999999*100 == 198.5), so the scaled value is
// computed exactly instead.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return v
	}
	if v < 0 {
		return -Round2(-v)
	}

	// 53 mantissa bits times 100 fits well inside 128 bits. Truncation keeps
	// the integer part exact for tiny values that do not fit.
	x := new(big.Float).SetPrec(128).SetMode(big.ToZero).SetFloat64(v)
	x.Mul(x, hundred)
	x.Add(x, half)

	n, _ := x.Int(nil)
	if !n.IsInt64() {
		return v
	}
	// float64 division is correctly rounded, so this is the float64 nearest
	// to the decimal n/100.
	return float64(n.Int64()) / 100
}
