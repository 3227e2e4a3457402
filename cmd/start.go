/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"rewards/domain/config"
	"rewards/domain/util"
	"rewards/interface/server"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Starts the distribution keeper",
	Long: `Starts the distribution keeper: it pulls a reward distribution as soon as
the interval elapses, refreshes the exported metrics and serves /metrics and
/state. To stop it, run 'stop' command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := defaultDependencyInject(); err != nil {
			return err
		}
		defer closeDependencies()

		if err := writePidFile(config.GetPidFile()); err != nil {
			return err
		}
		defer os.Remove(config.GetPidFile())

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			schedule(ctx, distribute, config.GetDistributeInterval())
			return nil
		})
		g.Go(func() error {
			schedule(ctx, refresh, config.GetRefreshInterval())
			return nil
		})
		g.Go(func() error {
			router := server.NewRouter(log, statisticInteractor)
			return server.Serve(ctx, log, config.GetMetricsAddress(), router)
		})

		log.Info("keeper started", "program", program.ID, "pid", os.Getpid())
		err := g.Wait()
		log.Info("keeper stopped")
		return err
	},
}

// schedule runs task every interval until ctx is done. A slow task delays
// the next run rather than overlapping it.
func schedule(ctx context.Context, task func(context.Context), interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ticker.Stop()
			task(ctx)
			ticker.Reset(interval)

		case <-ctx.Done():
			return
		}
	}
}

func distribute(ctx context.Context) {
	receipt, err := keeperInteractor.Distribute(ctx)
	if err != nil {
		log.Error("❌ distribution failed", "error", err)
		return
	}
	if receipt != nil {
		log.Info("💰 rewards distributed", "share", util.BaseUnitString(receipt.Share), "timestamp", receipt.Timestamp)
	}
}

func refresh(ctx context.Context) {
	if err := keeperInteractor.Refresh(ctx); err != nil {
		log.Warn("⚠️ refreshing statistic failed", "error", err)
	}
}

func writePidFile(path string) error {
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func init() {
	rootCmd.AddCommand(startCmd)
}
