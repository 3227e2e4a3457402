/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"rewards/domain/util"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

// tokenCmd groups the host-side ledger setup: mints, holder accounts and
// native balances.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sets up asset mints, holder accounts and native balances",
}

var createMintCmd = &cobra.Command{
	Use:   "create-mint",
	Short: "Creates an asset mint controlled by the program",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := defaultDependencyInject(); err != nil {
			return err
		}
		defer closeDependencies()

		decimals, _ := cmd.Flags().GetUint8("decimals")
		address := solana.NewWallet().PublicKey()

		mint, err := genesisInteractor.CreateMint(cmd.Context(), address, decimals)
		if err != nil {
			return err
		}
		fmt.Printf("✅ mint %v created, mint authority %v\n", mint.Address, mint.MintAuthority)
		return nil
	},
}

var createAccountCmd = &cobra.Command{
	Use:   "create-account",
	Short: "Opens an asset account, optionally with an initial balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := defaultDependencyInject(); err != nil {
			return err
		}
		defer closeDependencies()

		mint, err := publicKeyFlag(cmd, "mint")
		if err != nil {
			return err
		}
		owner, err := publicKeyFlag(cmd, "owner")
		if err != nil {
			return err
		}
		amount, err := amountFlag(cmd, "amount")
		if err != nil {
			return err
		}
		address := solana.NewWallet().PublicKey()

		account, err := genesisInteractor.CreateTokenAccount(cmd.Context(), address, mint, owner, amount)
		if err != nil {
			return err
		}
		fmt.Printf("✅ account %v created for %v holding %v base units\n",
			account.Address, account.Owner, util.BaseUnitString(account.Amount))
		return nil
	},
}

var airdropCmd = &cobra.Command{
	Use:   "airdrop",
	Short: "Credits native currency to an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := defaultDependencyInject(); err != nil {
			return err
		}
		defer closeDependencies()

		to, err := publicKeyFlag(cmd, "to")
		if err != nil {
			return err
		}
		lamports, err := amountFlag(cmd, "lamports")
		if err != nil {
			return err
		}

		account, err := genesisInteractor.Airdrop(cmd.Context(), to, lamports)
		if err != nil {
			return err
		}
		fmt.Printf("✅ %v now holds %v\n", account.Address, util.LamportsToSolString(account.Lamports))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(createMintCmd, createAccountCmd, airdropCmd)

	createMintCmd.Flags().Uint8("decimals", 9, "decimal places of the asset")

	createAccountCmd.Flags().String("mint", "", "asset mint")
	createAccountCmd.Flags().String("owner", "", "account owner")
	createAccountCmd.Flags().String("amount", "0", "initial balance in base units, newly issued")
	_ = createAccountCmd.MarkFlagRequired("mint")
	_ = createAccountCmd.MarkFlagRequired("owner")

	airdropCmd.Flags().String("to", "", "native account")
	airdropCmd.Flags().String("lamports", "", "lamports to credit")
	_ = airdropCmd.MarkFlagRequired("to")
	_ = airdropCmd.MarkFlagRequired("lamports")
}
