package bignum

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

// LogPrec is the precision used by [Log2].
const LogPrec = 128

// NewFloat allocates a new *big.Float with the given precision.
func NewFloat(x float64, prec uint) (y *big.Float) {
	y = new(big.Float).SetPrec(prec)
	y.SetFloat64(x)
	return
}

// Log returns the natural logarithm of x.
// x must be strictly positive.
func Log(x *big.Float) (ln *big.Float) {
	return bigfloat.Log(x)
}

// Log2 returns log2(|x|), or -Inf if x is zero.
// Values too large for a float64 mantissa are handled
// without loss of the exponent.
func Log2(x *big.Int) float64 {

	if x.Sign() == 0 {
		return math.Inf(-1)
	}

	xF := new(big.Float).SetPrec(LogPrec).SetInt(x)
	xF.Abs(xF)

	ln2 := Log(NewFloat(2, LogPrec))

	lnX := Log(xF)

	f64, _ := lnX.Quo(lnX, ln2).Float64()

	return f64
}
