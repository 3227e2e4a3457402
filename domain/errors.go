package domain

import (
	"errors"
	"fmt"
)

var (
	ErrorAlreadyInitialized      = fmt.Errorf("global state is already initialized")
	ErrorNotInitialized          = fmt.Errorf("global state is not initialized")
	ErrorInvalidTaxRate          = fmt.Errorf("tax rate must be between 0 and %d basis points", MaxBasisPoints)
	ErrorInvalidRewardInterval   = fmt.Errorf("reward interval must be at least %d seconds", MinRewardIntervalSeconds)
	ErrorUnauthorized            = fmt.Errorf("unauthorized access")
	ErrorInsufficientBalance     = fmt.Errorf("insufficient balance")
	ErrorSlippageExceeded        = fmt.Errorf("swap output is below the minimum output amount")
	ErrorTooEarlyForDistribution = fmt.Errorf("too early for reward distribution")
	ErrorArithmeticOverflow      = fmt.Errorf("arithmetic overflow")
	ErrorInvalidAmount           = fmt.Errorf("amount must be greater than zero")
	ErrorNoRewardsToDistribute   = fmt.Errorf("no rewards available to distribute")
	ErrorNoEligibleHolders       = fmt.Errorf("holder has no balance eligible for rewards")

	ErrorAccountNotFound      = fmt.Errorf("account not found")
	ErrorInvalidMint          = fmt.Errorf("account does not hold the governed asset")
	ErrorInvalidVault         = fmt.Errorf("vault address does not match the derived address")
	ErrorInvalidOwner         = fmt.Errorf("account is not owned by the expected identity")
	ErrorInvalidMintAuthority = fmt.Errorf("program is not the mint authority of the asset")
	ErrorInvalidAccountData   = fmt.Errorf("unexpected account data")
	ErrorInvalidHolder        = fmt.Errorf("program vaults cannot receive rewards")
	ErrorInvalidDestination   = fmt.Errorf("program vaults cannot receive transfers")
)

// policyErrors are the rejections a caller can cause. Anything else that
// escapes an operation is an infrastructure failure.
var policyErrors = []error{
	ErrorAlreadyInitialized,
	ErrorNotInitialized,
	ErrorInvalidTaxRate,
	ErrorInvalidRewardInterval,
	ErrorUnauthorized,
	ErrorInsufficientBalance,
	ErrorSlippageExceeded,
	ErrorTooEarlyForDistribution,
	ErrorArithmeticOverflow,
	ErrorInvalidAmount,
	ErrorNoRewardsToDistribute,
	ErrorNoEligibleHolders,
	ErrorAccountNotFound,
	ErrorInvalidMint,
	ErrorInvalidVault,
	ErrorInvalidOwner,
	ErrorInvalidMintAuthority,
	ErrorInvalidHolder,
	ErrorInvalidDestination,
}

// IsRejection reports whether err is a policy rejection rather than a
// storage or transport failure.
func IsRejection(err error) bool {
	for _, target := range policyErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
