package lagrange

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrInsufficientShares is matched by [*InsufficientSharesError].
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrDivisionByZero is returned when two interpolation points share the same x coordinate.
	ErrDivisionByZero = errors.New("division by zero: duplicate share identifier")

	// ErrNonIntegral is matched by [*NonIntegralError].
	ErrNonIntegral = errors.New("interpolated value is not an integer")

	// ErrInconsistentShares is matched by [*InconsistentShareError].
	ErrInconsistentShares = errors.New("inconsistent shares")
)

// InsufficientSharesError reports a share set smaller than the threshold.
type InsufficientSharesError struct {
	Required int
	Actual   int
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("%s: need %d shares but only found %d", ErrInsufficientShares, e.Required, e.Actual)
}

func (e *InsufficientSharesError) Unwrap() error {
	return ErrInsufficientShares
}

// NonIntegralError reports an exact interpolation whose value is not an integer.
type NonIntegralError struct {
	Value *big.Rat
}

func (e *NonIntegralError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNonIntegral, e.Value.RatString())
}

func (e *NonIntegralError) Unwrap() error {
	return ErrNonIntegral
}

// InconsistentShareError reports a share that does not lie
// on the polynomial interpolated from the threshold shares.
type InconsistentShareError struct {
	X        *big.Int
	Y        *big.Int
	Expected *big.Rat
}

func (e *InconsistentShareError) Error() string {
	return fmt.Sprintf("%s: share %s has value %s but the polynomial evaluates to %s", ErrInconsistentShares, e.X, e.Y, e.Expected.RatString())
}

func (e *InconsistentShareError) Unwrap() error {
	return ErrInconsistentShares
}
