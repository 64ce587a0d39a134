// Package lagrange implements the reconstruction of a Shamir secret, the
// constant term of the polynomial on which the shares lie, by Lagrange
// interpolation over the integers.
package lagrange

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/Pro7ech/sss/share"
)

// Mode selects how the Lagrange terms are divided.
type Mode int

const (
	// Truncated divides each term y_i * prod(x - x_j) by prod(x_i - x_j)
	// with truncation toward zero before summing the terms. The result is
	// exact whenever every division is exact, which holds for instance for
	// the identifiers 1, 2, ..., k, and may be off otherwise.
	Truncated = Mode(0)

	// Exact sums the Lagrange terms as rationals and requires the sum to be
	// an integer.
	Exact = Mode(1)
)

func (m Mode) String() string {
	switch m {
	case Truncated:
		return "truncated"
	case Exact:
		return "exact"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode returns the [Mode] named by s.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "truncated", "":
		return Truncated, nil
	case "exact":
		return Exact, nil
	default:
		return 0, fmt.Errorf("unknown interpolation mode %q: must be \"truncated\" or \"exact\"", s)
	}
}

// Combiner reconstructs secrets from threshold sets of shares.
// A Combiner holds no state besides its [Mode] and is safe for
// concurrent use.
type Combiner struct {
	mode Mode
}

// NewCombiner creates a new Combiner using the given [Mode].
func NewCombiner(mode Mode) *Combiner {
	return &Combiner{mode: mode}
}

// Mode returns the division mode of the receiver.
func (cmb Combiner) Mode() Mode {
	return cmb.mode
}

// Combine returns the constant term of the polynomial interpolated from the
// first threshold shares, taken in the given order. The remaining shares are
// ignored. Returns an [*InsufficientSharesError] if len(shares) < threshold
// and [ErrDivisionByZero] if two of the selected shares have the same identifier.
func (cmb Combiner) Combine(shares []share.Share, threshold int) (secret *big.Int, err error) {

	if threshold < 1 {
		return nil, fmt.Errorf("invalid threshold: must be positive but is %d", threshold)
	}

	if len(shares) < threshold {
		return nil, &InsufficientSharesError{Required: threshold, Actual: len(shares)}
	}

	return cmb.Evaluate(shares[:threshold], new(big.Int))
}

// Evaluate evaluates at x the polynomial interpolated from all the given points:
//
//	P(x) = sum_i y_i * prod_{j != i}(x - x_j) / prod_{j != i}(x_i - x_j)
func (cmb Combiner) Evaluate(points []share.Share, x *big.Int) (y *big.Int, err error) {

	if cmb.mode == Exact {

		var v *big.Rat
		if v, err = interpolate(points, x); err != nil {
			return
		}

		if !v.IsInt() {
			return nil, &NonIntegralError{Value: v}
		}

		return new(big.Int).Set(v.Num()), nil
	}

	y = new(big.Int)

	num, den, tmp := new(big.Int), new(big.Int), new(big.Int)

	for i := range points {

		if err = basis(points, i, x, num, den, tmp); err != nil {
			return nil, err
		}

		// y[i] * prod(x - x[j]) / prod(x[i] - x[j])
		num.Mul(num, points[i].Y)
		num.Quo(num, den)

		y.Add(y, num)
	}

	return
}

// Verify interpolates the first threshold shares and checks that every other
// share lies on the resulting polynomial. The check uses rational arithmetic
// regardless of the [Mode] of any [Combiner].
// Returns an [*InconsistentShareError] for the first share that does not.
func Verify(shares []share.Share, threshold int) (err error) {

	if threshold < 1 {
		return fmt.Errorf("invalid threshold: must be positive but is %d", threshold)
	}

	if len(shares) < threshold {
		return &InsufficientSharesError{Required: threshold, Actual: len(shares)}
	}

	points := shares[:threshold]

	for _, s := range shares[threshold:] {

		var v *big.Rat
		if v, err = interpolate(points, s.X); err != nil {
			return
		}

		if v.Cmp(new(big.Rat).SetInt(s.Y)) != 0 {
			return &InconsistentShareError{X: s.X, Y: s.Y, Expected: v}
		}
	}

	return
}

// interpolate evaluates at x the polynomial interpolated from the points
// using rational arithmetic.
func interpolate(points []share.Share, x *big.Int) (v *big.Rat, err error) {

	v = new(big.Rat)

	num, den, tmp := new(big.Int), new(big.Int), new(big.Int)
	term := new(big.Rat)

	for i := range points {

		if err = basis(points, i, x, num, den, tmp); err != nil {
			return nil, err
		}

		num.Mul(num, points[i].Y)

		v.Add(v, term.SetFrac(num, den))
	}

	return
}

// basis sets num to prod_{j != i}(x - x_j) and den to prod_{j != i}(x_i - x_j).
// At x = 0 the numerator is prod_{j != i}(-x_j).
func basis(points []share.Share, i int, x, num, den, tmp *big.Int) error {

	num.SetInt64(1)
	den.SetInt64(1)

	xi := points[i].X

	for j := range points {
		if j != i {
			num.Mul(num, tmp.Sub(x, points[j].X))
			den.Mul(den, tmp.Sub(xi, points[j].X))
		}
	}

	if den.Sign() == 0 {
		return ErrDivisionByZero
	}

	return nil
}
