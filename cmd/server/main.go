// Package main runs the task list API server.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var configPath string

var rootCmd = &cobra.Command{
	Use:          "tasklister",
	Short:        "Shared task list API for small teams",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (defaults to $TASKLISTER_CONFIG)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}
