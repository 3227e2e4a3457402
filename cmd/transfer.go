/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"rewards/domain"

	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfers asset units with the transfer tax withheld",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := defaultDependencyInject(); err != nil {
			return err
		}
		defer closeDependencies()

		source, err := publicKeyFlag(cmd, "from")
		if err != nil {
			return err
		}
		destination, err := publicKeyFlag(cmd, "to")
		if err != nil {
			return err
		}
		amount, err := amountFlag(cmd, "amount")
		if err != nil {
			return err
		}

		ix := domain.TransferWithTaxArgs{
			Source:      source,
			Destination: destination,
			Amount:      amount,
		}
		auth, err := signInstruction(ix)
		if err != nil {
			return err
		}

		receipt, err := transferInteractor.TransferWithTax(cmd.Context(), ix, auth)
		if err != nil {
			return err
		}

		fmt.Printf("✅ transferred %v base units: %v to %v, %v withheld as tax\n",
			receipt.Amount, receipt.Net, destination, receipt.Tax)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)

	transferCmd.Flags().String("from", "", "source asset account, owned by the signer")
	transferCmd.Flags().String("to", "", "destination asset account")
	transferCmd.Flags().String("amount", "", "amount in base units")
	_ = transferCmd.MarkFlagRequired("from")
	_ = transferCmd.MarkFlagRequired("to")
	_ = transferCmd.MarkFlagRequired("amount")
}
