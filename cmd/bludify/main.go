package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bludify/internal/config"
	applog "bludify/internal/log"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "bludify",
	Short: "Bludify secure tech resale marketplace",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		return applog.Init(cfg.LogFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		applog.Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, catalogCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
