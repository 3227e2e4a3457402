package usecase

import (
	"context"
	"rewards/domain"
	"rewards/domain/util"
)

type TransferInteractor struct {
	deployment *Deployment
}

func NewTransferInteractor(deployment *Deployment) *TransferInteractor {
	return &TransferInteractor{
		deployment: deployment,
	}
}

// TransferReceipt is what a committed transfer moved.
type TransferReceipt struct {
	Amount uint64
	Tax    uint64
	Net    uint64
}

// TransferWithTax moves amount out of the source account: the recipient
// gets amount minus the truncated tax and the tax vault gets the tax. The
// signer must own the source account.
func (interactor *TransferInteractor) TransferWithTax(ctx context.Context, args domain.TransferWithTaxArgs, auth domain.Authorization) (*TransferReceipt, error) {
	d := interactor.deployment
	inv := d.begin(args.InstructionName())

	if err := authorize(d.Program, args, auth); err != nil {
		return nil, inv.end(err)
	}
	if args.Amount == 0 {
		return nil, inv.end(domain.ErrorInvalidAmount)
	}

	var receipt *TransferReceipt
	err := d.Ledger.Update(ctx, func(tx LedgerTx) error {
		state, err := requireState(tx, d.Program)
		if err != nil {
			return err
		}

		staged := newStagedAccounts(tx)
		source, err := staged.load(args.Source, state.Asset)
		if err != nil {
			return err
		}
		if !source.Owner.Equals(auth.Signer) {
			return domain.ErrorUnauthorized
		}
		destination, err := staged.load(args.Destination, state.Asset)
		if err != nil {
			return err
		}
		if state.IsVault(destination.Address) || destination.Owner.Equals(d.Program.State) {
			return domain.ErrorInvalidDestination
		}
		taxVault, err := staged.load(state.TaxVault, state.Asset)
		if err != nil {
			return err
		}

		tax, net, err := domain.SplitTax(args.Amount, state.TaxRateBasisPoints)
		if err != nil {
			return err
		}
		if err := source.Debit(args.Amount); err != nil {
			return err
		}
		if err := destination.Credit(net); err != nil {
			return err
		}
		if err := taxVault.Credit(tax); err != nil {
			return err
		}
		if err := staged.flush(); err != nil {
			return err
		}

		receipt = &TransferReceipt{Amount: args.Amount, Tax: tax, Net: net}
		return nil
	})
	if err != nil {
		return nil, inv.end(err)
	}

	inv.log.Info("transferred",
		"source", args.Source,
		"destination", args.Destination,
		"amount", util.BaseUnitString(receipt.Amount),
		"tax", util.BaseUnitString(receipt.Tax),
		"net", util.BaseUnitString(receipt.Net))
	return receipt, inv.end(nil)
}
