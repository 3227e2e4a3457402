package usecase

import (
	"context"
	"rewards/domain"
	"rewards/domain/util"
)

type DistributionInteractor struct {
	deployment *Deployment
}

func NewDistributionInteractor(deployment *Deployment) *DistributionInteractor {
	return &DistributionInteractor{
		deployment: deployment,
	}
}

type DistributionReceipt struct {
	Share     uint64
	Timestamp int64
}

// DistributeRewards pays one holder its pro-rata share of the reward vault:
// floor(vault * holder / supply). Anyone may call it. The gate is global:
// the first call after the interval elapses resets it for every holder.
// Calls that would pay out of an empty vault or to an empty holder are
// rejected and leave the gate open.
func (interactor *DistributionInteractor) DistributeRewards(ctx context.Context, args domain.DistributeRewardsArgs) (*DistributionReceipt, error) {
	d := interactor.deployment
	inv := d.begin(args.InstructionName())

	var receipt *DistributionReceipt
	err := d.Ledger.Update(ctx, func(tx LedgerTx) error {
		state, err := requireState(tx, d.Program)
		if err != nil {
			return err
		}

		// The clock is read inside the transaction so the gate check and
		// the timestamp it writes belong to the same serialized invocation.
		now := d.now()
		if !state.DistributionDue(now) {
			return domain.ErrorTooEarlyForDistribution
		}

		staged := newStagedAccounts(tx)
		holder, err := staged.load(args.Holder, state.Asset)
		if err != nil {
			return err
		}
		if state.IsVault(holder.Address) || holder.Owner.Equals(d.Program.State) {
			return domain.ErrorInvalidHolder
		}
		holderBalance := holder.Amount
		rewardVault, err := staged.load(state.RewardVault, state.Asset)
		if err != nil {
			return err
		}
		if rewardVault.Amount == 0 {
			return domain.ErrorNoRewardsToDistribute
		}
		if holderBalance == 0 {
			return domain.ErrorNoEligibleHolders
		}
		mint, err := tx.Mint(state.Asset)
		if err != nil {
			return err
		}

		share, err := domain.MulDiv(rewardVault.Amount, holderBalance, mint.Supply)
		if err != nil {
			return err
		}
		if err := rewardVault.Debit(share); err != nil {
			return err
		}
		if err := holder.Credit(share); err != nil {
			return err
		}

		state.LastDistributionTimestamp = now
		if err := tx.PutGlobalState(d.Program.State, state); err != nil {
			return err
		}
		if err := staged.flush(); err != nil {
			return err
		}

		receipt = &DistributionReceipt{Share: share, Timestamp: now}
		return nil
	})
	if err != nil {
		return nil, inv.end(err)
	}

	inv.log.Info("distributed",
		"holder", args.Holder,
		"share", util.BaseUnitString(receipt.Share),
		"timestamp", receipt.Timestamp)
	return receipt, inv.end(nil)
}
