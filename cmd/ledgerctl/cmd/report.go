package cmd

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

var reportDate string

// reportCmd groups the report commands.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print financial reports",
}

// balanceSheetCmd represents the report balance-sheet command.
var balanceSheetCmd = &cobra.Command{
	Use:   "balance-sheet",
	Short: "Print the balance sheet",
	Long: `Print the balance sheet at a date (today by default).

Example:
  ledgerctl report balance-sheet --date 2025-03-31`,
	Run: runBalanceSheet,
}

func init() {
	balanceSheetCmd.Flags().StringVar(&reportDate, "date", "", "Report date (YYYY-MM-DD)")
	reportCmd.AddCommand(balanceSheetCmd)
}

func runBalanceSheet(cmd *cobra.Command, args []string) {
	cfg := loadConfig([]string{"client", "apiUrl"})

	report, err := newClient(cfg).BalanceSheet(reportDate)
	exitOnError(err, "failed to fetch balance sheet")

	fmt.Print(formatBalanceSheet(report, cfg.Beancount.Currency))
}

// formatBalanceSheet renders a balance sheet with amounts in currency.
func formatBalanceSheet(report *models.BalanceSheet, currency string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "=== Balance Sheet %s ===\n", report.Date)
	sections := []struct {
		title string
		nodes []*models.ReportNode
		total decimal.Decimal
	}{
		{"Assets", report.Assets, report.TotalAssets},
		{"Liabilities", report.Liabilities, report.TotalLiabilities},
		{"Equity", report.Equity, report.TotalEquity},
	}
	for _, s := range sections {
		fmt.Fprintf(&sb, "\n%s\n", s.title)
		for _, n := range s.nodes {
			writeNode(&sb, n, 1, currency)
		}
		fmt.Fprintf(&sb, "%-40s %20s\n", "Total "+s.title, display(s.total, currency))
	}

	fmt.Fprintf(&sb, "\n%-40s %20s\n", "Retained earnings", display(report.RetainedEarnings, currency))
	if report.IsBalanced {
		sb.WriteString("Balanced: yes\n")
	} else {
		sb.WriteString("Balanced: NO\n")
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n *models.ReportNode, depth int, currency string) {
	label := strings.Repeat("  ", depth) + n.Name
	if n.Code != nil {
		label += " (" + *n.Code + ")"
	}
	fmt.Fprintf(sb, "%-40s %20s\n", label, display(n.Balance, currency))
	for _, child := range n.Children {
		writeNode(sb, child, depth+1, currency)
	}
}

// display formats an amount with the currency's symbol and separators.
func display(amount decimal.Decimal, currency string) string {
	c := money.GetCurrency(currency)
	if c == nil {
		return amount.StringFixed(2) + " " + currency
	}
	minor := amount.Shift(int32(c.Fraction)).Round(0).IntPart()
	return money.New(minor, c.Code).Display()
}
