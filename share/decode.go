package share

import (
	"math/big"

	"github.com/Pro7ech/sss/utils/bignum"
)

// Decode converts the entries of a parsed document into a [Set].
// The x coordinate of each share is its document key read as a decimal
// integer and the y coordinate is its value read in its stated base.
// Shares keep the document order.
func Decode(doc *Document) (*Set, error) {

	if doc.Params == nil {
		return nil, malformed(ParamsKey, "missing threshold parameters")
	}

	params := *doc.Params

	if params.K < 1 {
		return nil, malformed(ParamsKey, "k must be positive but is %d", params.K)
	}

	if params.N < 0 {
		return nil, malformed(ParamsKey, "n must be non-negative but is %d", params.N)
	}

	shares := make([]Share, len(doc.Entries))

	for i, entry := range doc.Entries {

		x, ok := new(big.Int).SetString(entry.ID, 10)
		if !ok {
			return nil, malformed(entry.ID, "share identifier is not a decimal integer")
		}

		y, err := bignum.ParseInt(entry.Record.Value, entry.Record.Base)
		if err != nil {
			return nil, malformed(entry.ID, "cannot decode value: %w", err)
		}

		shares[i] = Share{X: x, Y: y}
	}

	return &Set{Params: params, Shares: shares}, nil
}

// DecodeBytes parses data according to format and decodes the result.
func DecodeBytes(data []byte, format Format) (*Set, error) {
	doc, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}
