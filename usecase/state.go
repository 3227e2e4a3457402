package usecase

import (
	"context"
	"errors"
	"rewards/domain"

	"github.com/gagliardetto/solana-go"
)

type StateInteractor struct {
	deployment *Deployment
}

func NewStateInteractor(deployment *Deployment) *StateInteractor {
	return &StateInteractor{
		deployment: deployment,
	}
}

// Initialize creates the global state record and the two empty vaults. The
// signer becomes the authority. It is a one-time transition: a second call
// fails and leaves the first record as it was.
func (interactor *StateInteractor) Initialize(ctx context.Context, args domain.InitializeArgs, auth domain.Authorization) (*domain.GlobalState, error) {
	d := interactor.deployment
	inv := d.begin(args.InstructionName())

	if err := authorize(d.Program, args, auth); err != nil {
		return nil, inv.end(err)
	}
	if args.TaxRateBasisPoints > domain.MaxBasisPoints {
		return nil, inv.end(domain.ErrorInvalidTaxRate)
	}
	if args.RewardIntervalSeconds < domain.MinRewardIntervalSeconds {
		return nil, inv.end(domain.ErrorInvalidRewardInterval)
	}
	if !args.TaxVault.Equals(d.Program.TaxVault) || !args.RewardVault.Equals(d.Program.RewardVault) {
		return nil, inv.end(domain.ErrorInvalidVault)
	}

	var created *domain.GlobalState
	err := d.Ledger.Update(ctx, func(tx LedgerTx) error {
		existing, err := tx.GlobalState(d.Program.State)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrorAlreadyInitialized
		}
		for _, vault := range []solana.PublicKey{args.TaxVault, args.RewardVault} {
			_, err := tx.TokenAccount(vault)
			if err == nil {
				return domain.ErrorAlreadyInitialized
			}
			if !errors.Is(err, domain.ErrorAccountNotFound) {
				return err
			}
		}
		if _, err := tx.Mint(args.Asset); err != nil {
			return err
		}

		state := &domain.GlobalState{
			Authority:                 auth.Signer,
			Asset:                     args.Asset,
			TaxVault:                  args.TaxVault,
			RewardVault:               args.RewardVault,
			TaxRateBasisPoints:        args.TaxRateBasisPoints,
			RewardIntervalSeconds:     args.RewardIntervalSeconds,
			LastDistributionTimestamp: d.now(),
		}
		if err := tx.PutGlobalState(d.Program.State, state); err != nil {
			return err
		}
		for _, vault := range []solana.PublicKey{args.TaxVault, args.RewardVault} {
			err := tx.PutTokenAccount(&domain.TokenAccount{
				Address: vault,
				Mint:    args.Asset,
				Owner:   d.Program.State,
			})
			if err != nil {
				return err
			}
		}
		created = state
		return nil
	})
	if err != nil {
		return nil, inv.end(err)
	}

	inv.log.Info("✅ initialized",
		"authority", created.Authority,
		"asset", created.Asset,
		"tax_rate_bps", created.TaxRateBasisPoints,
		"reward_interval", created.RewardIntervalSeconds)
	return created, inv.end(nil)
}

// ForceUpdateLastDistribution overwrites the distribution gate. Only the
// authority may call it; the new timestamp is not checked against the old one.
func (interactor *StateInteractor) ForceUpdateLastDistribution(ctx context.Context, args domain.ForceUpdateLastDistributionArgs, auth domain.Authorization) error {
	d := interactor.deployment
	inv := d.begin(args.InstructionName())

	if err := authorize(d.Program, args, auth); err != nil {
		return inv.end(err)
	}

	var previous int64
	err := d.Ledger.Update(ctx, func(tx LedgerTx) error {
		state, err := requireState(tx, d.Program)
		if err != nil {
			return err
		}
		if !state.IsAuthority(auth.Signer) {
			return domain.ErrorUnauthorized
		}
		previous = state.LastDistributionTimestamp
		state.LastDistributionTimestamp = args.NewTimestamp
		return tx.PutGlobalState(d.Program.State, state)
	})
	if err != nil {
		return inv.end(err)
	}

	inv.log.Warn("⚠️ forced last distribution timestamp", "previous", previous, "current", args.NewTimestamp)
	return inv.end(nil)
}

// State loads the global state record.
func (interactor *StateInteractor) State(ctx context.Context) (*domain.GlobalState, error) {
	d := interactor.deployment
	var state *domain.GlobalState
	err := d.Ledger.View(ctx, func(tx LedgerTx) error {
		var err error
		state, err = requireState(tx, d.Program)
		return err
	})
	return state, err
}
