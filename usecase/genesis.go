package usecase

import (
	"context"
	"rewards/domain"

	"github.com/gagliardetto/solana-go"
)

// GenesisInteractor performs the host-side setup the policy engine assumes
// exists: the asset mint, holder accounts and native balances. These are
// ledger primitives, not program operations, so they carry no signature.
type GenesisInteractor struct {
	deployment *Deployment
}

func NewGenesisInteractor(deployment *Deployment) *GenesisInteractor {
	return &GenesisInteractor{
		deployment: deployment,
	}
}

// CreateMint creates the asset mint with the program as its mint authority.
func (interactor *GenesisInteractor) CreateMint(ctx context.Context, address solana.PublicKey, decimals uint8) (*domain.Mint, error) {
	d := interactor.deployment
	mint := &domain.Mint{
		Address:       address,
		MintAuthority: d.Program.MintAuthority,
		Decimals:      decimals,
	}
	err := d.Ledger.Update(ctx, func(tx LedgerTx) error {
		if _, err := tx.Mint(address); err == nil {
			return domain.ErrorAlreadyInitialized
		}
		return tx.PutMint(mint)
	})
	if err != nil {
		return nil, err
	}
	d.Logger.Info("created mint", "mint", address, "decimals", decimals)
	return mint, nil
}

// CreateTokenAccount opens an asset account for owner holding amount newly
// issued units.
func (interactor *GenesisInteractor) CreateTokenAccount(ctx context.Context, address, mintAddress, owner solana.PublicKey, amount uint64) (*domain.TokenAccount, error) {
	d := interactor.deployment
	account := &domain.TokenAccount{
		Address: address,
		Mint:    mintAddress,
		Owner:   owner,
		Amount:  amount,
	}
	err := d.Ledger.Update(ctx, func(tx LedgerTx) error {
		if _, err := tx.TokenAccount(address); err == nil {
			return domain.ErrorAlreadyInitialized
		}
		mint, err := tx.Mint(mintAddress)
		if err != nil {
			return err
		}
		if err := mint.Issue(amount); err != nil {
			return err
		}
		if err := tx.PutMint(mint); err != nil {
			return err
		}
		return tx.PutTokenAccount(account)
	})
	if err != nil {
		return nil, err
	}
	d.Logger.Info("created token account", "account", address, "owner", owner, "amount", amount)
	return account, nil
}

// Airdrop credits lamports of the native currency to address.
func (interactor *GenesisInteractor) Airdrop(ctx context.Context, address solana.PublicKey, lamports uint64) (*domain.NativeAccount, error) {
	d := interactor.deployment
	var account *domain.NativeAccount
	err := d.Ledger.Update(ctx, func(tx LedgerTx) error {
		var err error
		account, err = tx.NativeAccount(address)
		if err != nil {
			return err
		}
		if err := account.Credit(lamports); err != nil {
			return err
		}
		return tx.PutNativeAccount(account)
	})
	if err != nil {
		return nil, err
	}
	d.Logger.Info("airdropped", "account", address, "lamports", lamports)
	return account, nil
}

// NativeBalance reads the native balance of address.
func (interactor *GenesisInteractor) NativeBalance(ctx context.Context, address solana.PublicKey) (uint64, error) {
	var lamports uint64
	err := interactor.deployment.Ledger.View(ctx, func(tx LedgerTx) error {
		account, err := tx.NativeAccount(address)
		if err != nil {
			return err
		}
		lamports = account.Lamports
		return nil
	})
	return lamports, err
}

// TokenAccount reads the asset account at address.
func (interactor *GenesisInteractor) TokenAccount(ctx context.Context, address solana.PublicKey) (*domain.TokenAccount, error) {
	var account *domain.TokenAccount
	err := interactor.deployment.Ledger.View(ctx, func(tx LedgerTx) error {
		var err error
		account, err = tx.TokenAccount(address)
		return err
	})
	return account, err
}
