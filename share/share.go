// Package share implements the decoding of secret-share documents into
// (x, y) points of a Shamir polynomial.
//
// A document is a keyed collection in which the reserved key [ParamsKey]
// holds the threshold parameters and every other key is the decimal
// identifier (the x coordinate) of a share whose value (the y coordinate)
// is written as a string of digits in an arbitrary base:
//
//	{
//	    "keys": {"n": 4, "k": 3},
//	    "1": {"base": "10", "value": "4"},
//	    "2": {"base": "2", "value": "111"},
//	    ...
//	}
//
// Shares are returned in the order in which they appear in the document.
package share

import (
	"math/big"

	"github.com/google/go-cmp/cmp"
)

var bigIntComparer = cmp.Comparer(func(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

// Share is a point (X, Y) on the secret polynomial.
// X is the share identifier and Y the share value.
type Share struct {
	X *big.Int
	Y *big.Int
}

// NewShare returns a new Share holding copies of x and y.
func NewShare(x, y *big.Int) Share {
	return Share{
		X: new(big.Int).Set(x),
		Y: new(big.Int).Set(y),
	}
}

// Equal performs a deep equal.
func (s Share) Equal(other *Share) bool {
	return cmp.Equal(s, *other, bigIntComparer)
}

// Params are the threshold parameters of a share set.
type Params struct {
	// N is the total number of shares declared by the document.
	N int
	// K is the number of shares required to reconstruct the secret.
	K int
}

// Set is the collection of shares decoded from one document.
type Set struct {
	Params
	Shares []Share
}

// Len returns the number of shares in the set.
func (s Set) Len() int {
	return len(s.Shares)
}

// Equal performs a deep equal.
func (s Set) Equal(other *Set) bool {
	return cmp.Equal(s, *other, bigIntComparer)
}
