/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"rewards/domain"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes the program state and its vaults",
	Long: `Initializes the global state with a tax rate and reward interval and opens
the tax and reward vaults at their derived addresses. The signer becomes the
authority. It can only run once per program.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := defaultDependencyInject(); err != nil {
			return err
		}
		defer closeDependencies()

		taxRate, _ := cmd.Flags().GetUint16("tax-rate")
		interval, _ := cmd.Flags().GetInt64("interval")
		asset, err := publicKeyFlag(cmd, "asset")
		if err != nil {
			return err
		}

		ix := domain.InitializeArgs{
			TaxRateBasisPoints:    taxRate,
			RewardIntervalSeconds: interval,
			Asset:                 asset,
			TaxVault:              program.TaxVault,
			RewardVault:           program.RewardVault,
		}
		auth, err := signInstruction(ix)
		if err != nil {
			return err
		}

		state, err := stateInteractor.Initialize(cmd.Context(), ix, auth)
		if err != nil {
			return err
		}

		fmt.Printf("✅ initialized %v\n", program.State)
		printState(state)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Uint16("tax-rate", 500, "transfer tax in basis points (0 to 10000)")
	initCmd.Flags().Int64("interval", 3600, "minimum seconds between reward distributions")
	initCmd.Flags().String("asset", "", "mint address of the asset")
	_ = initCmd.MarkFlagRequired("asset")
}
