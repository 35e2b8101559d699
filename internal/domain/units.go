package domain

import (
	"math/big"
)

var tokenUnit = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(TOKEN_DECIMALS), nil))

// FromBaseUnits converts an 18-decimal integer amount to its decimal value
func FromBaseUnits(amount *big.Int) float64 {
	if amount == nil {
		return 0
	}
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(amount), tokenUnit).Float64()
	return f
}
