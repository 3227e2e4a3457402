/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"rewards/domain"

	"github.com/spf13/cobra"
)

var distributeCmd = &cobra.Command{
	Use:   "distribute",
	Short: "Pays a holder's pro-rata share of the reward vault",
	Long: `Pays the holder's pro-rata share of the reward vault and restarts the
distribution interval. Anyone may call it, but at most once per interval.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := defaultDependencyInject(); err != nil {
			return err
		}
		defer closeDependencies()

		holder, err := publicKeyFlag(cmd, "holder")
		if err != nil {
			return err
		}

		receipt, err := distributionInteractor.DistributeRewards(cmd.Context(), domain.DistributeRewardsArgs{Holder: holder})
		if err != nil {
			return err
		}

		fmt.Printf("✅ distributed %v base units to %v at %v\n", receipt.Share, holder, receipt.Timestamp)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(distributeCmd)

	distributeCmd.Flags().String("holder", "", "asset account receiving the share")
	_ = distributeCmd.MarkFlagRequired("holder")
}
