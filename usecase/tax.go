package usecase

import (
	"context"
	"rewards/domain"
	"rewards/domain/util"
)

type TaxInteractor struct {
	deployment *Deployment
}

func NewTaxInteractor(deployment *Deployment) *TaxInteractor {
	return &TaxInteractor{
		deployment: deployment,
	}
}

// CollectTax sweeps the whole tax vault into an asset account owned by the
// authority. An empty vault is swept like any other and moves nothing.
func (interactor *TaxInteractor) CollectTax(ctx context.Context, args domain.CollectTaxArgs, auth domain.Authorization) (uint64, error) {
	d := interactor.deployment
	inv := d.begin(args.InstructionName())

	if err := authorize(d.Program, args, auth); err != nil {
		return 0, inv.end(err)
	}

	var collected uint64
	err := d.Ledger.Update(ctx, func(tx LedgerTx) error {
		state, err := requireState(tx, d.Program)
		if err != nil {
			return err
		}
		if !state.IsAuthority(auth.Signer) {
			return domain.ErrorUnauthorized
		}

		staged := newStagedAccounts(tx)
		taxVault, err := staged.load(state.TaxVault, state.Asset)
		if err != nil {
			return err
		}
		destination, err := staged.load(args.Destination, state.Asset)
		if err != nil {
			return err
		}
		if err := requireOwner(destination, state.Authority); err != nil {
			return err
		}

		collected = taxVault.Amount
		if err := taxVault.Debit(collected); err != nil {
			return err
		}
		if err := destination.Credit(collected); err != nil {
			return err
		}
		return staged.flush()
	})
	if err != nil {
		return 0, inv.end(err)
	}

	inv.log.Info("collected tax", "destination", args.Destination, "amount", util.BaseUnitString(collected))
	return collected, inv.end(nil)
}
