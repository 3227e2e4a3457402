/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"rewards/domain"
	"rewards/domain/util"

	"github.com/spf13/cobra"
)

var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Pays native currency and mints asset units into the reward vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := defaultDependencyInject(); err != nil {
			return err
		}
		defer closeDependencies()

		lamports, err := amountFlag(cmd, "lamports")
		if err != nil {
			return err
		}
		minOutput, err := amountFlag(cmd, "min-output")
		if err != nil {
			return err
		}
		recipient, err := publicKeyFlag(cmd, "recipient")
		if err != nil {
			return err
		}

		ix := domain.SwapArgs{
			PaymentAmount:    lamports,
			MinOutputAmount:  minOutput,
			PaymentRecipient: recipient,
		}
		auth, err := signInstruction(ix)
		if err != nil {
			return err
		}

		receipt, err := swapInteractor.SwapSolForAsset(cmd.Context(), ix, auth)
		if err != nil {
			return err
		}

		fmt.Printf("✅ paid %v to %v, %v base units added to the reward vault\n",
			util.LamportsToSolString(receipt.PaymentAmount), recipient, receipt.OutputAmount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().String("lamports", "", "payment in lamports")
	swapCmd.Flags().String("min-output", "0", "minimum asset base units to accept")
	swapCmd.Flags().String("recipient", "", "native account receiving the payment")
	_ = swapCmd.MarkFlagRequired("lamports")
	_ = swapCmd.MarkFlagRequired("recipient")
}
