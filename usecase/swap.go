package usecase

import (
	"context"
	"fmt"
	"rewards/domain"
	"rewards/domain/util"

	"github.com/gagliardetto/solana-go"
)

// PriceOracle prices a swap of amount base units of inputMint into outputMint.
type PriceOracle interface {
	Quote(ctx context.Context, inputMint, outputMint solana.PublicKey, amount uint64) (uint64, error)
}

type SwapInteractor struct {
	deployment *Deployment
	oracle     PriceOracle
}

func NewSwapInteractor(deployment *Deployment, oracle PriceOracle) *SwapInteractor {
	return &SwapInteractor{
		deployment: deployment,
		oracle:     oracle,
	}
}

type SwapReceipt struct {
	PaymentAmount uint64
	OutputAmount  uint64
}

// SwapSolForAsset pays paymentAmount of the native currency from the signer
// to the payment recipient and mints the quoted output of the asset into the
// reward vault. It is the only way value enters the reward vault.
func (interactor *SwapInteractor) SwapSolForAsset(ctx context.Context, args domain.SwapArgs, auth domain.Authorization) (*SwapReceipt, error) {
	d := interactor.deployment
	inv := d.begin(args.InstructionName())

	if err := authorize(d.Program, args, auth); err != nil {
		return nil, inv.end(err)
	}

	// The quote is taken before the ledger transaction opens so no
	// outbound call runs while state is locked.
	var asset solana.PublicKey
	err := d.Ledger.View(ctx, func(tx LedgerTx) error {
		state, err := requireState(tx, d.Program)
		if err != nil {
			return err
		}
		asset = state.Asset
		return nil
	})
	if err != nil {
		return nil, inv.end(err)
	}

	output, err := interactor.oracle.Quote(ctx, domain.NativeMint, asset, args.PaymentAmount)
	if err != nil {
		return nil, inv.end(fmt.Errorf("quoting swap: %w", err))
	}
	if output < args.MinOutputAmount {
		inv.log.Debug("quote below minimum", "quoted", output, "minimum", args.MinOutputAmount)
		return nil, inv.end(domain.ErrorSlippageExceeded)
	}

	err = d.Ledger.Update(ctx, func(tx LedgerTx) error {
		state, err := requireState(tx, d.Program)
		if err != nil {
			return err
		}
		if !state.Asset.Equals(asset) {
			return domain.ErrorInvalidMint
		}

		payer, err := tx.NativeAccount(auth.Signer)
		if err != nil {
			return err
		}
		recipient := payer
		if !args.PaymentRecipient.Equals(auth.Signer) {
			recipient, err = tx.NativeAccount(args.PaymentRecipient)
			if err != nil {
				return err
			}
		}
		if err := payer.Debit(args.PaymentAmount); err != nil {
			return err
		}
		if err := recipient.Credit(args.PaymentAmount); err != nil {
			return err
		}

		mint, err := tx.Mint(state.Asset)
		if err != nil {
			return err
		}
		if !mint.MintAuthority.Equals(d.Program.MintAuthority) {
			return domain.ErrorInvalidMintAuthority
		}
		if err := mint.Issue(output); err != nil {
			return err
		}
		staged := newStagedAccounts(tx)
		rewardVault, err := staged.load(state.RewardVault, state.Asset)
		if err != nil {
			return err
		}
		if err := rewardVault.Credit(output); err != nil {
			return err
		}

		if err := tx.PutNativeAccount(payer); err != nil {
			return err
		}
		if recipient != payer {
			if err := tx.PutNativeAccount(recipient); err != nil {
				return err
			}
		}
		if err := tx.PutMint(mint); err != nil {
			return err
		}
		return staged.flush()
	})
	if err != nil {
		return nil, inv.end(err)
	}

	inv.log.Info("swapped",
		"payer", auth.Signer,
		"payment", util.LamportsToSolString(args.PaymentAmount),
		"output", util.BaseUnitString(output))
	return &SwapReceipt{PaymentAmount: args.PaymentAmount, OutputAmount: output}, inv.end(nil)
}
