package domain

import (
	"errors"
	"math"
	"strings"

	"github.com/holiman/uint256"
)

// MaxBasisPoints is 100% in basis points.
const MaxBasisPoints = 10000

// MulDiv returns floor(a * b / d). Intermediates are 256 bits wide so only
// the final result can overflow. A zero divisor yields zero.
func MulDiv(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, nil
	}
	product := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	quotient := product.Div(product, uint256.NewInt(d))
	if !quotient.IsUint64() {
		return 0, ErrorArithmeticOverflow
	}
	return quotient.Uint64(), nil
}

// CheckedAdd returns a + b or ErrorArithmeticOverflow.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum, overflow := new(uint256.Int).AddOverflow(uint256.NewInt(a), uint256.NewInt(b))
	if overflow || !sum.IsUint64() {
		return 0, ErrorArithmeticOverflow
	}
	return sum.Uint64(), nil
}

// CheckedSub returns a - b or ErrorInsufficientBalance when b > a.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrorInsufficientBalance
	}
	return a - b, nil
}

// SaturatingAdd returns a + b clamped to the int64 range.
func SaturatingAdd(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}

// SaturatingSub returns a - b clamped to the int64 range.
func SaturatingSub(a, b int64) int64 {
	switch {
	case b < 0 && a > math.MaxInt64+b:
		return math.MaxInt64
	case b > 0 && a < math.MinInt64+b:
		return math.MinInt64
	}
	return a - b
}

// SplitTax splits amount into the tax owed at rate and the net remainder.
// The tax is truncated, never rounded, so tax + net == amount always holds.
func SplitTax(amount uint64, rateBasisPoints uint16) (tax uint64, net uint64, err error) {
	if rateBasisPoints > MaxBasisPoints {
		return 0, 0, ErrorInvalidTaxRate
	}
	tax, err = MulDiv(amount, uint64(rateBasisPoints), MaxBasisPoints)
	if err != nil {
		return 0, 0, err
	}
	return tax, amount - tax, nil
}

// ParseAmount parses a base-unit decimal amount. Values outside the
// 64-bit asset domain are reported as ErrorArithmeticOverflow.
func ParseAmount(s string) (uint64, error) {
	value, err := uint256.FromDecimal(strings.TrimSpace(s))
	if err != nil {
		if errors.Is(err, uint256.ErrBig256Range) {
			return 0, ErrorArithmeticOverflow
		}
		return 0, err
	}
	if !value.IsUint64() {
		return 0, ErrorArithmeticOverflow
	}
	return value.Uint64(), nil
}
