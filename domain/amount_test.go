package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTax(t *testing.T) {
	tests := []struct {
		name   string
		amount uint64
		rate   uint16
		tax    uint64
		net    uint64
	}{
		{"five percent of 100 tokens", 100_000_000_000, 500, 5_000_000_000, 95_000_000_000},
		{"truncated to zero", 19, 500, 0, 19},
		{"truncated not rounded", 39, 500, 1, 38},
		{"zero rate", 1_000, 0, 0, 1_000},
		{"full rate", 1_000, MaxBasisPoints, 1_000, 0},
		{"max amount", math.MaxUint64, 500, 922337203685477580, math.MaxUint64 - 922337203685477580},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, net, err := SplitTax(tt.amount, tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.tax, tax)
			assert.Equal(t, tt.net, net)
			assert.Equal(t, tt.amount, tax+net)
		})
	}
}

func TestSplitTaxConservesAmount(t *testing.T) {
	rates := []uint16{0, 1, 33, 250, 500, 999, 5000, 9999, MaxBasisPoints}
	amounts := []uint64{1, 7, 9_999, 10_000, 10_001, 123_456_789, 1 << 40, math.MaxUint64 - 1, math.MaxUint64}
	for _, rate := range rates {
		for _, amount := range amounts {
			tax, net, err := SplitTax(amount, rate)
			require.NoError(t, err)
			assert.Equal(t, amount, tax+net, "amount %d rate %d", amount, rate)
			assert.LessOrEqual(t, tax, amount)
		}
	}
}

func TestSplitTaxRejectsRate(t *testing.T) {
	_, _, err := SplitTax(100, MaxBasisPoints+1)
	assert.ErrorIs(t, err, ErrorInvalidTaxRate)
}

func TestMulDiv(t *testing.T) {
	v, err := MulDiv(math.MaxUint64, math.MaxUint64, math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), v)

	v, err = MulDiv(1_000, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, v)

	v, err = MulDiv(10, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v)

	_, err = MulDiv(math.MaxUint64, 2, 1)
	assert.ErrorIs(t, err, ErrorArithmeticOverflow)
}

func TestCheckedArithmetic(t *testing.T) {
	sum, err := CheckedAdd(math.MaxUint64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), sum)

	_, err = CheckedAdd(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrorArithmeticOverflow)

	diff, err := CheckedSub(10, 10)
	require.NoError(t, err)
	assert.Zero(t, diff)

	_, err = CheckedSub(10, 11)
	assert.ErrorIs(t, err, ErrorInsufficientBalance)
}

func TestSaturatingArithmetic(t *testing.T) {
	cases := []struct {
		a, b     int64
		add, sub int64
	}{
		{a: 1, b: 2, add: 3, sub: -1},
		{a: math.MaxInt64, b: 1, add: math.MaxInt64, sub: math.MaxInt64 - 1},
		{a: math.MinInt64, b: 60, add: math.MinInt64 + 60, sub: math.MinInt64},
		{a: math.MinInt64, b: -1, add: math.MinInt64, sub: math.MinInt64 + 1},
		{a: math.MaxInt64, b: -1, add: math.MaxInt64 - 1, sub: math.MaxInt64},
	}
	for _, c := range cases {
		assert.Equal(t, c.add, SaturatingAdd(c.a, c.b), "%d + %d", c.a, c.b)
		assert.Equal(t, c.sub, SaturatingSub(c.a, c.b), "%d - %d", c.a, c.b)
	}
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount(" 18446744073709551615 ")
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), v)

	_, err = ParseAmount("18446744073709551616")
	assert.ErrorIs(t, err, ErrorArithmeticOverflow)

	_, err = ParseAmount("12abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrorArithmeticOverflow)
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(ErrorTooEarlyForDistribution))
	assert.True(t, IsRejection(ErrorAccountNotFound))
	assert.True(t, IsRejection(ErrorNoRewardsToDistribute))
	assert.True(t, IsRejection(ErrorNoEligibleHolders))
	assert.True(t, IsRejection(ErrorInvalidHolder))
	assert.True(t, IsRejection(ErrorInvalidDestination))
	assert.False(t, IsRejection(nil))
	assert.False(t, IsRejection(ErrorInvalidAccountData))
}
