package oracle

import (
	"context"
	"errors"
	"rewards/domain"

	"github.com/gagliardetto/solana-go"
)

// FixedRateOracle prices every swap at numerator/denominator output units
// per input unit, truncating.
type FixedRateOracle struct {
	Numerator   uint64
	Denominator uint64
}

func NewFixedRateOracle(numerator, denominator uint64) (*FixedRateOracle, error) {
	if denominator == 0 {
		return nil, errors.New("swap rate denominator must be greater than zero")
	}
	return &FixedRateOracle{Numerator: numerator, Denominator: denominator}, nil
}

func (o *FixedRateOracle) Quote(ctx context.Context, inputMint, outputMint solana.PublicKey, amount uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return domain.MulDiv(amount, o.Numerator, o.Denominator)
}
