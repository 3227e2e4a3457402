package domain

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Address namespaces under the program id.
const (
	SeedState         = "state"
	SeedTaxVault      = "tax_vault"
	SeedRewardVault   = "reward_vault"
	SeedMintAuthority = "mint_authority"
)

// NativeMint identifies the payment currency of swaps.
var NativeMint = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")

// Program holds the program id and the addresses derived from it. The
// derived addresses have no private key; only the program can act for them.
type Program struct {
	ID            solana.PublicKey
	State         solana.PublicKey
	TaxVault      solana.PublicKey
	RewardVault   solana.PublicKey
	MintAuthority solana.PublicKey
}

func NewProgram(id solana.PublicKey) (*Program, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("program id is required")
	}

	program := &Program{ID: id}
	for seed, target := range map[string]*solana.PublicKey{
		SeedState:         &program.State,
		SeedTaxVault:      &program.TaxVault,
		SeedRewardVault:   &program.RewardVault,
		SeedMintAuthority: &program.MintAuthority,
	} {
		address, err := DeriveAddress(id, seed)
		if err != nil {
			return nil, err
		}
		*target = address
	}
	return program, nil
}

// DeriveAddress maps a namespace tag to its program-derived address.
func DeriveAddress(programID solana.PublicKey, seed string) (solana.PublicKey, error) {
	address, _, err := solana.FindProgramAddress([][]byte{[]byte(seed)}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("deriving %q address: %w", seed, err)
	}
	return address, nil
}
