package domain

import (
	"github.com/gagliardetto/solana-go"
)

// TokenAccount is a balance of one mint held for an owner. Holder accounts
// are owned by participants; the two vaults are owned by the state address.
type TokenAccount struct {
	Address solana.PublicKey `json:"address"`
	Mint    solana.PublicKey `json:"mint"`
	Owner   solana.PublicKey `json:"owner"`
	Amount  uint64           `json:"amount"`
}

func (a *TokenAccount) Debit(amount uint64) error {
	balance, err := CheckedSub(a.Amount, amount)
	if err != nil {
		return err
	}
	a.Amount = balance
	return nil
}

func (a *TokenAccount) Credit(amount uint64) error {
	balance, err := CheckedAdd(a.Amount, amount)
	if err != nil {
		return err
	}
	a.Amount = balance
	return nil
}

// Mint describes the governed asset: its issuer and circulating supply.
type Mint struct {
	Address       solana.PublicKey `json:"address"`
	MintAuthority solana.PublicKey `json:"mint_authority"`
	Decimals      uint8            `json:"decimals"`
	Supply        uint64           `json:"supply"`
}

// Issue increases the supply by amount. The caller credits the destination.
func (m *Mint) Issue(amount uint64) error {
	supply, err := CheckedAdd(m.Supply, amount)
	if err != nil {
		return err
	}
	m.Supply = supply
	return nil
}

// NativeAccount is a balance of the payment currency, in its base unit.
type NativeAccount struct {
	Address  solana.PublicKey `json:"address"`
	Lamports uint64           `json:"lamports"`
}

func (a *NativeAccount) Debit(amount uint64) error {
	balance, err := CheckedSub(a.Lamports, amount)
	if err != nil {
		return err
	}
	a.Lamports = balance
	return nil
}

func (a *NativeAccount) Credit(amount uint64) error {
	balance, err := CheckedAdd(a.Lamports, amount)
	if err != nil {
		return err
	}
	a.Lamports = balance
	return nil
}
