/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"rewards/domain"
	"rewards/domain/config"
	"rewards/domain/util"
	"rewards/infrastructure/logger"
	"rewards/interface/exporter"
	"rewards/interface/oracle"
	"rewards/interface/repository"
	"rewards/usecase"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Runs every operation once against an in-memory ledger",
	Long: `Runs a full lifecycle against a throwaway in-memory ledger with a simulated
clock: mint and holder setup, initialize, a taxed transfer, a swap, a reward
distribution after the interval and a tax collection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		taxRate, _ := cmd.Flags().GetUint16("tax-rate")
		interval, _ := cmd.Flags().GetInt64("interval")
		numerator, denominator := config.GetSwapRate()

		priceOracle, err := oracle.NewFixedRateOracle(numerator, denominator)
		if err != nil {
			return err
		}
		return simulate(cmd.Context(), taxRate, interval, priceOracle)
	},
}

type simulation struct {
	clock *clockwork.FakeClock
	rows  []table.Row
}

func (s *simulation) record(step string, err error, detail string) {
	status := "✅"
	if err != nil {
		status = "❌"
		detail = err.Error()
	}
	s.rows = append(s.rows, table.Row{s.clock.Now().Unix(), step, status, detail})
}

func simulate(ctx context.Context, taxRate uint16, interval int64, priceOracle usecase.PriceOracle) error {
	exporter.Init()

	programId := config.GetProgramId()
	if programId.IsZero() {
		programId = solana.NewWallet().PublicKey()
	}
	simulatedProgram, err := domain.NewProgram(programId)
	if err != nil {
		return err
	}
	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
	ledger := repository.NewMemoryLedger()
	d := &usecase.Deployment{
		Program: simulatedProgram,
		Ledger:  ledger,
		Clock:   clock,
		Logger:  logger.New(config.IsVerbose()),
	}
	if err := d.Validate(); err != nil {
		return err
	}
	s := &simulation{clock: clock}

	genesis := usecase.NewGenesisInteractor(d)
	states := usecase.NewStateInteractor(d)
	transfers := usecase.NewTransferInteractor(d)
	swaps := usecase.NewSwapInteractor(d, priceOracle)
	distributions := usecase.NewDistributionInteractor(d)
	taxes := usecase.NewTaxInteractor(d)
	statistics := usecase.NewStatisticInteractor(d)

	authority, err := solana.NewRandomPrivateKey()
	if err != nil {
		return err
	}
	alice, err := solana.NewRandomPrivateKey()
	if err != nil {
		return err
	}
	bob := solana.NewWallet().PublicKey()

	mint, err := genesis.CreateMint(ctx, solana.NewWallet().PublicKey(), 9)
	if err != nil {
		return err
	}
	aliceAccount, err := genesis.CreateTokenAccount(ctx, solana.NewWallet().PublicKey(), mint.Address, alice.PublicKey(), 100*util.LamportsPerSol)
	if err != nil {
		return err
	}
	bobAccount, err := genesis.CreateTokenAccount(ctx, solana.NewWallet().PublicKey(), mint.Address, bob, 0)
	if err != nil {
		return err
	}
	treasury, err := genesis.CreateTokenAccount(ctx, solana.NewWallet().PublicKey(), mint.Address, authority.PublicKey(), 0)
	if err != nil {
		return err
	}
	if _, err := genesis.Airdrop(ctx, alice.PublicKey(), 2*util.LamportsPerSol); err != nil {
		return err
	}

	initArgs := domain.InitializeArgs{
		TaxRateBasisPoints:    taxRate,
		RewardIntervalSeconds: interval,
		Asset:                 mint.Address,
		TaxVault:              simulatedProgram.TaxVault,
		RewardVault:           simulatedProgram.RewardVault,
	}
	auth, err := domain.Sign(simulatedProgram.ID, initArgs, authority)
	if err != nil {
		return err
	}
	_, err = states.Initialize(ctx, initArgs, auth)
	s.record("initialize", err, fmt.Sprintf("tax %v bps, interval %vs", taxRate, interval))
	if err != nil {
		s.renderSteps()
		return err
	}

	transferArgs := domain.TransferWithTaxArgs{
		Source:      aliceAccount.Address,
		Destination: bobAccount.Address,
		Amount:      10 * util.LamportsPerSol,
	}
	auth, err = domain.Sign(simulatedProgram.ID, transferArgs, alice)
	if err != nil {
		return err
	}
	transfer, err := transfers.TransferWithTax(ctx, transferArgs, auth)
	if err == nil {
		s.record("transfer_with_tax", nil, fmt.Sprintf("net %v, tax %v", util.BaseUnitString(transfer.Net), util.BaseUnitString(transfer.Tax)))
	} else {
		s.record("transfer_with_tax", err, "")
	}

	swapArgs := domain.SwapArgs{
		PaymentAmount:    util.LamportsPerSol,
		MinOutputAmount:  0,
		PaymentRecipient: authority.PublicKey(),
	}
	auth, err = domain.Sign(simulatedProgram.ID, swapArgs, alice)
	if err != nil {
		return err
	}
	swap, err := swaps.SwapSolForAsset(ctx, swapArgs, auth)
	if err == nil {
		s.record("swap_sol_for_asset", nil, fmt.Sprintf("%v for %v", util.LamportsToSolString(swap.PaymentAmount), util.BaseUnitString(swap.OutputAmount)))
	} else {
		s.record("swap_sol_for_asset", err, "")
	}

	_, err = distributions.DistributeRewards(ctx, domain.DistributeRewardsArgs{Holder: aliceAccount.Address})
	s.record("distribute_rewards", err, "")

	clock.Advance(time.Duration(interval+1) * time.Second)
	distribution, err := distributions.DistributeRewards(ctx, domain.DistributeRewardsArgs{Holder: aliceAccount.Address})
	if err == nil {
		s.record("distribute_rewards", nil, fmt.Sprintf("share %v", util.BaseUnitString(distribution.Share)))
	} else {
		s.record("distribute_rewards", err, "")
	}

	collectArgs := domain.CollectTaxArgs{Destination: treasury.Address}
	auth, err = domain.Sign(simulatedProgram.ID, collectArgs, authority)
	if err != nil {
		return err
	}
	collected, err := taxes.CollectTax(ctx, collectArgs, auth)
	if err == nil {
		s.record("collect_tax", nil, fmt.Sprintf("collected %v", util.BaseUnitString(collected)))
	} else {
		s.record("collect_tax", err, "")
	}

	return s.render(ctx, statistics)
}

func (s *simulation) renderSteps() {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Time", "Operation", "", "Result"})
	t.AppendRows(s.rows)
	t.Render()
}

func (s *simulation) render(ctx context.Context, statistics *usecase.StatisticInteractor) error {
	s.renderSteps()

	stat, err := statistics.Statistic(ctx)
	if err != nil {
		return err
	}
	printStatistic(stat)
	return nil
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Uint16("tax-rate", 500, "transfer tax in basis points")
	simulateCmd.Flags().Int64("interval", 60, "minimum seconds between reward distributions")
}
