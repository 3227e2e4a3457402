package usecase

import (
	"context"
	"rewards/domain"

	"github.com/gagliardetto/solana-go"
)

// Ledger is the host the policy engine runs inside. Update runs fn against a
// consistent view and commits every write fn made, or none of them if fn
// returns an error. Implementations serialize Update calls.
type Ledger interface {
	Update(ctx context.Context, fn func(tx LedgerTx) error) error
	View(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx is one invocation's view of the ledger. Getters return copies;
// nothing is visible to other invocations until the Update commits.
type LedgerTx interface {
	// GlobalState returns nil and no error when no record exists at address.
	GlobalState(address solana.PublicKey) (*domain.GlobalState, error)
	PutGlobalState(address solana.PublicKey, state *domain.GlobalState) error

	// TokenAccount returns domain.ErrorAccountNotFound for unknown addresses.
	TokenAccount(address solana.PublicKey) (*domain.TokenAccount, error)
	PutTokenAccount(account *domain.TokenAccount) error

	Mint(address solana.PublicKey) (*domain.Mint, error)
	PutMint(mint *domain.Mint) error

	// NativeAccount returns a zero balance for unknown addresses.
	NativeAccount(address solana.PublicKey) (*domain.NativeAccount, error)
	PutNativeAccount(account *domain.NativeAccount) error
}

// stagedAccounts caches token accounts read during an invocation so that
// changes to an address seen twice (sender == recipient, holder == vault)
// compose instead of overwriting each other. Nothing reaches the ledger
// until flush.
type stagedAccounts struct {
	tx       LedgerTx
	accounts map[solana.PublicKey]*domain.TokenAccount
	order    []solana.PublicKey
}

func newStagedAccounts(tx LedgerTx) *stagedAccounts {
	return &stagedAccounts{
		tx:       tx,
		accounts: make(map[solana.PublicKey]*domain.TokenAccount),
	}
}

// load returns the staged copy of address, checking it holds mint.
func (s *stagedAccounts) load(address, mint solana.PublicKey) (*domain.TokenAccount, error) {
	if account, ok := s.accounts[address]; ok {
		return account, nil
	}
	account, err := s.tx.TokenAccount(address)
	if err != nil {
		return nil, err
	}
	if !account.Mint.Equals(mint) {
		return nil, domain.ErrorInvalidMint
	}
	s.accounts[address] = account
	s.order = append(s.order, address)
	return account, nil
}

func (s *stagedAccounts) flush() error {
	for _, address := range s.order {
		if err := s.tx.PutTokenAccount(s.accounts[address]); err != nil {
			return err
		}
	}
	return nil
}
