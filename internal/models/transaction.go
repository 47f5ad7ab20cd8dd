package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reconcile states of a split.
const (
	ReconcileNo  = "n"
	ReconcileYes = "y"
)

// Transaction represents a posted journal entry.
type Transaction struct {
	GUID        string    `json:"guid"`
	PostDate    string    `json:"post_date"` // YYYY-MM-DD
	EnterDate   time.Time `json:"enter_date"`
	Description string    `json:"description"`
	Splits      []Split   `json:"splits"`
	// Source is the purchase order GUID when the entry was posted by an approval.
	Source *string `json:"source,omitempty"`
}

// Touches reports whether any split of the transaction posts to one of the
// given accounts.
func (t *Transaction) Touches(accounts map[string]bool) bool {
	for _, s := range t.Splits {
		if accounts[s.AccountGUID] {
			return true
		}
	}
	return false
}

// Split is one debit (positive) or credit (negative) line of a transaction.
type Split struct {
	GUID           string          `json:"guid"`
	AccountGUID    string          `json:"account_guid"`
	Memo           string          `json:"memo"`
	Amount         decimal.Decimal `json:"amount"`
	ValueNum       int64           `json:"value_num"`
	ValueDenom     int64           `json:"value_denom"`
	ReconcileState string          `json:"reconcile_state"`
}

// CreateTransactionRequest represents the request to post a transaction.
type CreateTransactionRequest struct {
	PostDate    string               `json:"post_date"`
	Description string               `json:"description"`
	Splits      []CreateSplitRequest `json:"splits"`
}

// CreateSplitRequest represents one split in a create-transaction request.
type CreateSplitRequest struct {
	AccountGUID string          `json:"account_guid"`
	Memo        string          `json:"memo"`
	Amount      decimal.Decimal `json:"amount"`
}

// QuickEntryRequest posts a two-split transaction from a single account.
// A positive amount increases the account, a negative one decreases it.
type QuickEntryRequest struct {
	PostDate            string          `json:"post_date"`
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount"`
	OppositeAccountGUID string          `json:"opposite_account_guid"`
	Memo                string          `json:"memo"`
}

// ReconcileRequest sets the reconcile state of a split.
type ReconcileRequest struct {
	State string `json:"state"`
}

// BalanceCheck is the result of checking a set of splits for balance.
type BalanceCheck struct {
	DebitTotal  decimal.Decimal `json:"debit_total"`
	CreditTotal decimal.Decimal `json:"credit_total"`
	Difference  decimal.Decimal `json:"difference"`
	IsBalanced  bool            `json:"is_balanced"`
}
