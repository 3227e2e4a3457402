package util

import (
	"fmt"
	"math/big"

	"github.com/dustin/go-humanize"
)

const LamportsPerSol = 1_000_000_000

func LamportsToSolString(lamports uint64) string {
	return fmt.Sprintf("%v SOL", TokenString(lamports, 9))
}

// TokenString renders a base-unit amount in whole tokens with thousands separators.
func TokenString(amount uint64, decimals uint8) string {
	value := new(big.Float).SetUint64(amount)
	scale := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value.Quo(value, scale)
	return humanize.BigCommaf(value)
}

func BaseUnitString(amount uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(amount))
}
