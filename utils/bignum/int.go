// Package bignum implements arbitrary precision helpers used to decode and
// manipulate share coordinates.
package bignum

import (
	"fmt"
	"math/big"
	"strings"
)

// MinBase and MaxBase bound the digit radix accepted by [ParseInt].
const (
	MinBase = 2
	MaxBase = 36
)

// NewInt allocates a new *big.Int.
// Accepted types are: string, uint, uint64, int64, int or *big.Int.
// Strings are read with base prefix detection (0x, 0o, 0b) and
// an invalid string yields zero.
func NewInt(x interface{}) (y *big.Int) {

	y = new(big.Int)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case string:
		y.SetString(x, 0)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case int64:
		y.SetInt64(x)
	case int:
		y.SetInt64(int64(x))
	case *big.Int:
		y.Set(x)
	default:
		panic(fmt.Sprintf("cannot NewInt: accepted types are string, uint, uint64, int, int64, *big.Int, but is %T", x))
	}

	return
}

// ParseInt decodes s as a signed integer written in positional notation
// with the given base. Digits are 0-9 followed by the letters a-z, in either
// case. A single leading '+' or '-' is accepted.
func ParseInt(s string, base int) (*big.Int, error) {

	if base < MinBase || base > MaxBase {
		return nil, fmt.Errorf("invalid base %d: must be in [%d, %d]", base, MinBase, MaxBase)
	}

	if s == "" {
		return nil, fmt.Errorf("empty value")
	}

	// big.Int.SetString only accepts underscores with base 0, but
	// keep the error explicit.
	if strings.ContainsRune(s, '_') {
		return nil, fmt.Errorf("invalid digit '_' in %q", s)
	}

	y, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, fmt.Errorf("%q is not a valid base-%d integer", s, base)
	}

	return y, nil
}
