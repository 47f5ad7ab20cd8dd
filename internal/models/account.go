// Package models defines the records persisted by the store and exchanged
// with the front-end as JSON.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The front-end reads amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in statement order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeIncome,
	AccountTypeExpense,
}

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// DebitNormal reports whether increases of this type are recorded as debits.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account represents a node in the chart of accounts.
type Account struct {
	GUID        string      `json:"guid"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"account_type"`
	ParentGUID  *string     `json:"parent_guid"`
	Placeholder bool        `json:"placeholder"`
	Code        *string     `json:"code"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CodeOrEmpty returns the account code, or "" when it has none.
func (a *Account) CodeOrEmpty() string {
	if a.Code == nil {
		return ""
	}
	return *a.Code
}

// AccountNode is an account with its rolled-up balance and children.
type AccountNode struct {
	GUID        string          `json:"guid"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"account_type"`
	ParentGUID  *string         `json:"parent_guid"`
	Placeholder bool            `json:"placeholder"`
	Code        *string         `json:"code"`
	Balance     decimal.Decimal `json:"balance"`
	Children    []*AccountNode  `json:"children"`
}

// CreateAccountRequest represents the request to create an account.
type CreateAccountRequest struct {
	Name        string      `json:"name"`
	AccountType AccountType `json:"account_type"`
	ParentGUID  *string     `json:"parent_guid,omitempty"`
	Placeholder bool        `json:"placeholder"`
	Code        *string     `json:"code,omitempty"`
}

// UpdateAccountRequest represents the request to rename an account.
type UpdateAccountRequest struct {
	Name *string `json:"name"`
}

// AccountBalance is the rolled-up balance of an account subtree at a date.
type AccountBalance struct {
	AccountGUID string          `json:"account_guid"`
	Date        string          `json:"date"`
	Balance     decimal.Decimal `json:"balance"`
}
