/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"rewards/domain"

	"github.com/spf13/cobra"
)

var collectTaxCmd = &cobra.Command{
	Use:   "collect-tax",
	Short: "Sweeps the tax vault to an authority-owned account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := defaultDependencyInject(); err != nil {
			return err
		}
		defer closeDependencies()

		destination, err := publicKeyFlag(cmd, "to")
		if err != nil {
			return err
		}

		ix := domain.CollectTaxArgs{Destination: destination}
		auth, err := signInstruction(ix)
		if err != nil {
			return err
		}

		collected, err := taxInteractor.CollectTax(cmd.Context(), ix, auth)
		if err != nil {
			return err
		}

		fmt.Printf("✅ collected %v base units of tax into %v\n", collected, destination)
		return nil
	},
}

var forceUpdateCmd = &cobra.Command{
	Use:   "force-update",
	Short: "Overrides the last distribution timestamp",
	Long: `Overrides the last distribution timestamp. Only the authority may call it.
A past timestamp opens the distribution gate early, a future one delays it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := defaultDependencyInject(); err != nil {
			return err
		}
		defer closeDependencies()

		timestamp, _ := cmd.Flags().GetInt64("timestamp")
		ix := domain.ForceUpdateLastDistributionArgs{NewTimestamp: timestamp}
		auth, err := signInstruction(ix)
		if err != nil {
			return err
		}

		if err := stateInteractor.ForceUpdateLastDistribution(cmd.Context(), ix, auth); err != nil {
			return err
		}

		fmt.Printf("✅ last distribution set to %v\n", timestamp)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(collectTaxCmd)
	rootCmd.AddCommand(forceUpdateCmd)

	collectTaxCmd.Flags().String("to", "", "asset account owned by the authority")
	_ = collectTaxCmd.MarkFlagRequired("to")

	forceUpdateCmd.Flags().Int64("timestamp", 0, "new last distribution time, unix seconds")
	_ = forceUpdateCmd.MarkFlagRequired("timestamp")
}
