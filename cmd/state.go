/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"rewards/domain"
	"rewards/domain/util"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Prints the program state, vault balances and distribution schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := defaultDependencyInject(); err != nil {
			return err
		}
		defer closeDependencies()

		stat, err := statisticInteractor.Statistic(cmd.Context())
		if errors.Is(err, domain.ErrorNotInitialized) {
			fmt.Printf("⛔️ program %v is not initialized\n", program.ID)
			return nil
		}
		if err != nil {
			return err
		}

		printStatistic(stat)
		return nil
	},
}

func printState(state *domain.GlobalState) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	appendStateRows(t, state)
	t.Render()
}

func printStatistic(stat *domain.StatisticResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	appendStateRows(t, &stat.State)
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Tax vault balance", util.TokenString(stat.TaxVaultBalance, stat.Decimals)},
		{"Reward vault balance", util.TokenString(stat.RewardVaultBalance, stat.Decimals)},
		{"Supply", util.TokenString(stat.Supply, stat.Decimals)},
		{"Next distribution", humanize.Time(time.Unix(stat.State.NextDistribution(), 0))},
		{"Seconds until distribution", stat.SecondsUntilDistribution()},
	})
	t.Render()
}

func appendStateRows(t table.Writer, state *domain.GlobalState) {
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Authority", state.Authority},
		{"Asset", state.Asset},
		{"Tax vault", state.TaxVault},
		{"Reward vault", state.RewardVault},
		{"Tax rate", fmt.Sprintf("%v bps (%.2f%%)", state.TaxRateBasisPoints, float64(state.TaxRateBasisPoints)/100)},
		{"Reward interval", time.Duration(state.RewardIntervalSeconds) * time.Second},
		{"Last distribution", time.Unix(state.LastDistributionTimestamp, 0).UTC().Format(time.RFC3339)},
	})
}

func init() {
	rootCmd.AddCommand(stateCmd)
}
