package cmd

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
	"github.com/pigeonworks-llc/gnucash-lite/pkg/beancount"
	"github.com/pigeonworks-llc/gnucash-lite/pkg/converter"
	"github.com/pigeonworks-llc/gnucash-lite/pkg/db"
	"github.com/pigeonworks-llc/gnucash-lite/pkg/pathutil"
)

var (
	dateFrom string
	dateTo   string
	dryRun   bool
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ledger transactions to Beancount",
	Long: `Export transactions from the ledger API to Beancount files.

This command:
1. Fetches accounts and transactions from the ledger API
2. Filters out already exported transactions
3. Converts them to Beancount format
4. Appends to monthly Beancount files
5. Records export history in SQLite

Example:
  ledgerctl export --from 2025-01-01 --to 2025-01-31
  ledgerctl export --from 2025-01-01 --to 2025-01-31 --dry-run`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&dateFrom, "from", "", "Start date (YYYY-MM-DD) (required)")
	exportCmd.Flags().StringVar(&dateTo, "to", "", "End date (YYYY-MM-DD) (required)")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Dry run mode (no file writes)")

	_ = exportCmd.MarkFlagRequired("from")
	_ = exportCmd.MarkFlagRequired("to")
}

func runExport(cmd *cobra.Command, args []string) {
	slog.Info("Starting export", "from", dateFrom, "to", dateTo, "dry_run", dryRun)

	cfg := loadConfig(
		[]string{"client", "apiUrl"},
		[]string{"beancount", "root"},
		[]string{"beancount", "mappingPath"},
	)

	pathResolver := pathutil.New(pathutil.Config{
		BeancountRoot: cfg.Beancount.Root,
		DatabasePath:  cfg.Beancount.DBPath,
	})

	dbPath := pathResolver.GetDatabasePath()
	slog.Debug("Opening database", "path", dbPath)
	conn, err := db.Open(dbPath)
	exitOnError(err, "failed to open database")
	defer conn.Close()

	history := db.NewExportHistory(conn)

	mapper, err := converter.NewMapper(cfg.Beancount.MappingPath)
	exitOnError(err, "failed to load account mapping")

	c := newClient(cfg)
	accounts, err := c.ListAccounts()
	exitOnError(err, "failed to list accounts")

	slog.Info("Fetching transactions", "from", dateFrom, "to", dateTo)
	txns, err := c.ListTransactions(dateFrom, dateTo)
	exitOnError(err, "failed to fetch transactions")
	slog.Info("Fetched transactions", "count", len(txns))

	exported, err := history.ExportedGUIDs()
	exitOnError(err, "failed to get exported transactions")

	byMonth, err := groupNewByMonth(txns, exported)
	exitOnError(err, "failed to group transactions")

	cvtr := converter.NewConverter(mapper, accounts, cfg.Beancount.Currency)
	repo := beancount.NewFileSystemRepository(pathResolver)

	written, err := exportMonths(byMonth, cvtr, repo, history, pathResolver, dryRun)
	exitOnError(err, "failed to export transactions")

	if !dryRun {
		stats, err := history.GetStats()
		if err == nil {
			printStats(stats)
		}
	}

	slog.Info("Export completed",
		"fetched", len(txns),
		"exported", written,
		"skipped", len(txns)-countAll(byMonth),
	)
}

// groupNewByMonth drops already exported transactions and groups the rest by
// YYYY-MM, oldest first within each month.
func groupNewByMonth(txns []models.Transaction, exported map[string]bool) (map[string][]models.Transaction, error) {
	groups := make(map[string][]models.Transaction)
	for _, txn := range txns {
		if exported[txn.GUID] {
			continue
		}
		month, err := pathutil.MonthKey(txn.PostDate)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", txn.GUID, err)
		}
		groups[month] = append(groups[month], txn)
	}

	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].PostDate != group[j].PostDate {
				return group[i].PostDate < group[j].PostDate
			}
			return group[i].EnterDate.Before(group[j].EnterDate)
		})
	}
	return groups, nil
}

// exportMonths writes each month's transactions and records them, or prints
// them when dryRun is set. It returns the number of transactions written.
func exportMonths(
	byMonth map[string][]models.Transaction,
	cvtr *converter.Converter,
	repo beancount.Repository,
	history *db.ExportHistory,
	pathResolver *pathutil.PathResolver,
	dryRun bool,
) (int, error) {
	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	written := 0
	for _, month := range months {
		filePath, err := pathResolver.GetMonthFilePath(month)
		if err != nil {
			return written, err
		}

		var formatted []string
		var records []db.ExportRecord
		for _, txn := range byMonth[month] {
			bean, err := cvtr.Convert(txn)
			if err != nil {
				return written, err
			}
			formatted = append(formatted, cvtr.FormatTransaction(bean))
			records = append(records, db.ExportRecord{
				TransactionGUID: txn.GUID,
				PostDate:        txn.PostDate,
				Amount:          debitTotal(txn).StringFixed(2),
				BeancountFile:   filePath,
			})
		}

		if dryRun {
			fmt.Printf("[DRY RUN] Would append %d transactions to %s\n", len(formatted), filePath)
			for _, f := range formatted {
				fmt.Println(f)
			}
			continue
		}

		if err := repo.AppendTransactions(month, formatted); err != nil {
			return written, err
		}
		if err := history.RecordExports(records); err != nil {
			return written, err
		}
		written += len(records)
		slog.Info("Updated file", "path", filePath, "transactions", len(records))
	}

	return written, nil
}

func debitTotal(txn models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, s := range txn.Splits {
		if s.Amount.IsPositive() {
			total = total.Add(s.Amount)
		}
	}
	return total
}

func countAll(byMonth map[string][]models.Transaction) int {
	n := 0
	for _, group := range byMonth {
		n += len(group)
	}
	return n
}
