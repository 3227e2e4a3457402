package usecase

import (
	"context"
	"errors"
	"rewards/domain"

	"github.com/gagliardetto/solana-go"
)

// HolderLister lists asset accounts with a positive balance.
type HolderLister interface {
	Holders(ctx context.Context, mint solana.PublicKey) ([]domain.TokenAccount, error)
}

// KeeperInteractor drives the periodic client-side tasks: it pulls a
// distribution for the first eligible holder once the gate opens and
// publishes snapshots to the exporter.
type KeeperInteractor struct {
	deployment             *Deployment
	distributionInteractor *DistributionInteractor
	statisticInteractor    *StatisticInteractor
	lister                 HolderLister
	holders                []solana.PublicKey
}

// NewKeeperInteractor distributes to holders in the given order, or to every
// holder known to lister, largest balance first, when holders is empty.
func NewKeeperInteractor(deployment *Deployment,
	distributionInteractor *DistributionInteractor,
	statisticInteractor *StatisticInteractor,
	lister HolderLister,
	holders []solana.PublicKey) *KeeperInteractor {
	return &KeeperInteractor{
		deployment:             deployment,
		distributionInteractor: distributionInteractor,
		statisticInteractor:    statisticInteractor,
		lister:                 lister,
		holders:                holders,
	}
}

// Distribute attempts one distribution. It returns nil and no error while
// the gate is closed or the reward vault is empty.
func (interactor *KeeperInteractor) Distribute(ctx context.Context) (*DistributionReceipt, error) {
	log := interactor.deployment.Logger

	stat, err := interactor.statisticInteractor.Statistic(ctx)
	if err != nil {
		return nil, err
	}
	if stat.SecondsUntilDistribution() > 0 {
		log.Debug("distribution not due", "in_seconds", stat.SecondsUntilDistribution())
		return nil, nil
	}

	candidates, err := interactor.candidates(ctx, stat.State)
	if err != nil {
		return nil, err
	}

	for _, holder := range candidates {
		receipt, err := interactor.distributionInteractor.DistributeRewards(ctx, domain.DistributeRewardsArgs{Holder: holder})
		switch {
		case err == nil:
			return receipt, nil
		case errors.Is(err, domain.ErrorTooEarlyForDistribution):
			return nil, nil
		case errors.Is(err, domain.ErrorNoRewardsToDistribute):
			log.Debug("reward vault is empty")
			return nil, nil
		case errors.Is(err, domain.ErrorAccountNotFound), errors.Is(err, domain.ErrorInvalidMint),
			errors.Is(err, domain.ErrorNoEligibleHolders), errors.Is(err, domain.ErrorInvalidHolder):
			log.Warn("⚠️ skipping distribution holder", "holder", holder, "reason", err)
			continue
		default:
			return nil, err
		}
	}

	log.Debug("no distribution holder available")
	return nil, nil
}

func (interactor *KeeperInteractor) candidates(ctx context.Context, state domain.GlobalState) ([]solana.PublicKey, error) {
	if len(interactor.holders) > 0 {
		return interactor.holders, nil
	}
	if interactor.lister == nil {
		return nil, nil
	}

	accounts, err := interactor.lister.Holders(ctx, state.Asset)
	if err != nil {
		return nil, err
	}
	candidates := make([]solana.PublicKey, 0, len(accounts))
	for _, account := range accounts {
		if account.Address.Equals(state.TaxVault) || account.Address.Equals(state.RewardVault) {
			continue
		}
		candidates = append(candidates, account.Address)
	}
	return candidates, nil
}

// Refresh publishes a fresh snapshot to the exporter.
func (interactor *KeeperInteractor) Refresh(ctx context.Context) error {
	stat, err := interactor.statisticInteractor.Statistic(ctx)
	if err != nil {
		return err
	}
	return interactor.statisticInteractor.Store(stat)
}
