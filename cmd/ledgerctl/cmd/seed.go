package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/gnucash-lite/internal/ledger"
	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// seedCmd represents the seed command.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default chart of accounts",
	Long: `Create the default chart of accounts through the ledger API.

Nothing is created when the ledger already has accounts.

Example:
  ledgerctl seed`,
	Run: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) {
	cfg := loadConfig([]string{"client", "apiUrl"})
	c := newClient(cfg)

	existing, err := c.ListAccounts()
	exitOnError(err, "failed to list accounts")
	if len(existing) > 0 {
		fmt.Printf("Ledger already has %d accounts, nothing to seed\n", len(existing))
		return
	}

	n, err := ledger.WalkChart(ledger.DefaultChart(), func(req models.CreateAccountRequest) (string, error) {
		account, err := c.CreateAccount(req)
		if err != nil {
			return "", err
		}
		slog.Debug("Created account", "name", account.Name, "code", account.CodeOrEmpty())
		return account.GUID, nil
	})
	exitOnError(err, fmt.Sprintf("failed to seed chart after %d accounts", n))

	fmt.Printf("Created %d accounts\n", n)
	slog.Info("Seed completed", "accounts", n)
}
