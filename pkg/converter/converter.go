package converter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
	"github.com/pigeonworks-llc/gnucash-lite/pkg/beancount"
)

// Column the amount of a posting ends at.
const amountColumn = 60

// Converter converts ledger transactions to Beancount format.
type Converter struct {
	mapper   *Mapper
	accounts map[string]models.Account
	currency string
}

// NewConverter creates a new Converter for the given chart of accounts.
func NewConverter(mapper *Mapper, accounts []models.Account, currency string) *Converter {
	if currency == "" {
		currency = "CNY"
	}

	byGUID := make(map[string]models.Account, len(accounts))
	for _, a := range accounts {
		byGUID[a.GUID] = a
	}

	return &Converter{
		mapper:   mapper,
		accounts: byGUID,
		currency: currency,
	}
}

// Convert converts a ledger transaction to a Beancount transaction with one
// posting per split. Debits stay positive and credits negative.
func (c *Converter) Convert(txn models.Transaction) (beancount.Transaction, error) {
	postings := make([]beancount.Posting, 0, len(txn.Splits))
	for _, s := range txn.Splits {
		account, ok := c.accounts[s.AccountGUID]
		if !ok {
			return beancount.Transaction{}, fmt.Errorf("transaction %s: unknown account %s", txn.GUID, s.AccountGUID)
		}

		postings = append(postings, beancount.Posting{
			Account:  c.mapper.BeancountAccount(account),
			Amount:   s.Amount,
			Currency: c.currency,
			Comment:  s.Memo,
		})
	}

	var tags []string
	if txn.Source != nil {
		tags = []string{"purchase"}
	}

	return beancount.Transaction{
		Date:      txn.PostDate,
		Narration: txn.Description,
		Tags:      tags,
		Links:     []string{txn.GUID},
		Postings:  postings,
	}, nil
}

// FormatTransaction formats a Beancount transaction as a string.
func (c *Converter) FormatTransaction(txn beancount.Transaction) string {
	var sb strings.Builder

	sb.WriteString(txn.Date)
	sb.WriteString(" *")
	if txn.Payee != "" {
		fmt.Fprintf(&sb, " %s", quote(txn.Payee))
	}
	fmt.Fprintf(&sb, " %s", quote(txn.Narration))
	for _, tag := range txn.Tags {
		fmt.Fprintf(&sb, " #%s", tag)
	}
	for _, link := range txn.Links {
		fmt.Fprintf(&sb, " ^%s", link)
	}
	sb.WriteString("\n")

	for _, posting := range txn.Postings {
		sb.WriteString("  ")
		sb.WriteString(posting.Account)

		amount := formatAmount(posting.Amount)
		spaces := max(1, amountColumn-utf8.RuneCountInString(posting.Account)-len(amount))
		sb.WriteString(strings.Repeat(" ", spaces))
		fmt.Fprintf(&sb, "%s %s", amount, posting.Currency)

		if posting.Comment != "" {
			fmt.Fprintf(&sb, " ; %s", oneLine(posting.Comment))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatAmount prints at least two decimals and never drops precision, so
// the postings of a balanced entry still sum to zero.
func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(max(2, -d.Exponent()))
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(oneLine(s), `"`, `\"`) + `"`
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
