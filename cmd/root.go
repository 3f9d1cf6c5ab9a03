// Package cmd implements the command-line interface for goharvest.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/goharvest/cmd/migrate"
	"github.com/jonesrussell/goharvest/cmd/serve"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// rootCmd represents the root command for the goharvest CLI.
	rootCmd = &cobra.Command{
		Use:   "goharvest",
		Short: "Marketplace product ingestion and stats service",
		Long:  `goharvest ingests scraped marketplace product records, persists them with deduplication and derived pricing, and serves operational statistics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml or /etc/goharvest/config.yaml)",
	)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("goharvest version 0.1.0")
		},
	})

	rootCmd.AddCommand(serve.Command(&cfgFile))
	rootCmd.AddCommand(migrate.Command(&cfgFile))
}
