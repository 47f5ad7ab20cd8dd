// Package cmd provides CLI commands for ledgerctl.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/gnucash-lite/pkg/client"
	"github.com/pigeonworks-llc/gnucash-lite/pkg/config"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate a GnuCash-Lite ledger from the command line",
	Long: `ledgerctl talks to a running GnuCash-Lite ledger API.

It supports:
- Seeding the default chart of accounts into an empty ledger
- Exporting transactions to monthly Beancount files
- Skipping already exported transactions with SQLite history
- Printing the balance sheet

Example:
  ledgerctl seed
  ledgerctl export --from 2025-01-01 --to 2025-03-31
  ledgerctl report balance-sheet --date 2025-03-31`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
}

// loadConfig loads the configuration and checks the required keys.
func loadConfig(required ...[]string) *config.Config {
	cfg, err := config.Load(cfgFile)
	exitOnError(err, "failed to load configuration")
	exitOnError(cfg.Validate(required...), "invalid configuration")
	return cfg
}

// newClient builds a ledger API client from the configuration.
func newClient(cfg *config.Config) *client.Client {
	slog.Debug("Using ledger API", "url", cfg.Client.APIURL)
	return client.NewClient(client.ClientConfig{
		APIURL:   cfg.Client.APIURL,
		APIToken: cfg.Client.APIToken,
	})
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
