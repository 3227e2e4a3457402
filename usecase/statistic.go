package usecase

import (
	"context"
	"rewards/domain"
	"rewards/interface/exporter"
)

type StatisticInteractor struct {
	deployment *Deployment
}

func NewStatisticInteractor(deployment *Deployment) *StatisticInteractor {
	interactor := &StatisticInteractor{
		deployment: deployment,
	}
	return interactor
}

// Statistic reads the state, both vault balances and the asset supply in one
// consistent view.
func (interactor *StatisticInteractor) Statistic(ctx context.Context) (*domain.StatisticResult, error) {
	d := interactor.deployment
	result := domain.StatisticResult{}

	err := d.Ledger.View(ctx, func(tx LedgerTx) error {
		state, err := requireState(tx, d.Program)
		if err != nil {
			return err
		}
		taxVault, err := tx.TokenAccount(state.TaxVault)
		if err != nil {
			return err
		}
		rewardVault, err := tx.TokenAccount(state.RewardVault)
		if err != nil {
			return err
		}
		mint, err := tx.Mint(state.Asset)
		if err != nil {
			return err
		}

		result.State = *state
		result.TaxVaultBalance = taxVault.Amount
		result.RewardVaultBalance = rewardVault.Amount
		result.Supply = mint.Supply
		result.Decimals = mint.Decimals
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Now = d.Clock.Now()

	return &result, nil
}

// Store publishes a snapshot to the metrics exporter.
func (interactor *StatisticInteractor) Store(result *domain.StatisticResult) error {
	exporter.SetStatistic(result)
	return nil
}
