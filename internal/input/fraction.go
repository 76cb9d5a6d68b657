package input

import (
	"fmt"
	"math/big"
	"strings"
)

// FractionToken is a fraction argument before parsing, e.g. "1/4", "0.25" or "1".
type FractionToken string

// Rat parses the token as an exact rational number.
func (f FractionToken) Rat() (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(string(f)))
	if !ok {
		return nil, fmt.Errorf("%q is not a fraction", string(f))
	}
	return r, nil
}
