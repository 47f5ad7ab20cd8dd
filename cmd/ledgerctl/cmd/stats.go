package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/gnucash-lite/pkg/db"
	"github.com/pigeonworks-llc/gnucash-lite/pkg/pathutil"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display export statistics",
	Long: `Display statistics about exported transactions.

Shows:
- Total number of exported transactions
- Number of Beancount files written
- Range of exported post dates
- Last export timestamp

Example:
  ledgerctl stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := loadConfig([]string{"beancount", "root"})

	pathResolver := pathutil.New(pathutil.Config{
		BeancountRoot: cfg.Beancount.Root,
		DatabasePath:  cfg.Beancount.DBPath,
	})

	dbPath := pathResolver.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)

	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")
	defer conn.Close()

	stats, err := db.NewExportHistory(conn).GetStats()
	exitOnError(err, "failed to get statistics")

	version, err := conn.Version()
	exitOnError(err, "failed to read schema version")
	fmt.Printf("Database: %s (schema v%d)\n", conn.GetPath(), version)

	printStats(stats)
}

func printStats(stats *db.Stats) {
	fmt.Println("\n=== Export Statistics ===")
	fmt.Printf("Exported transactions: %d\n", stats.TotalTransactions)
	fmt.Printf("Beancount files:       %d\n", stats.TotalFiles)
	if stats.FirstDate.Valid {
		fmt.Printf("Post dates:            %s .. %s\n", stats.FirstDate.String, stats.LastDate.String)
	}
	if stats.LastExport.Valid {
		fmt.Printf("Last export:           %s\n", stats.LastExport.String)
	} else {
		fmt.Printf("Last export:           (never)\n")
	}
	fmt.Println()
}
