/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"rewards/domain/config"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stops the distribution keeper",
	Long:  `Stops the distribution keeper, which is started previously by 'start' command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := readPidFile(config.GetPidFile())
		if err != nil {
			return err
		}

		process, err := os.FindProcess(pid)
		if err != nil {
			return err
		}
		if err := process.Signal(syscall.SIGTERM); err != nil {
			return fmt.Errorf("failed to stop keeper %v: %w", pid, err)
		}

		fmt.Printf("✅ sent stop signal to keeper %v\n", pid)
		return nil
	},
}

func readPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("keeper is not running: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid pid file %v: %w", path, err)
	}
	return pid, nil
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
