package models

import "github.com/shopspring/decimal"

// ReportNode is an account line of a financial statement.
type ReportNode struct {
	GUID        string          `json:"guid"`
	Name        string          `json:"name"`
	Code        *string         `json:"code,omitempty"`
	AccountType AccountType     `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
	Children    []*ReportNode   `json:"children"`
}

// BalanceSheet is the statement of financial position at a date.
type BalanceSheet struct {
	Date             string          `json:"date"`
	Assets           []*ReportNode   `json:"assets"`
	Liabilities      []*ReportNode   `json:"liabilities"`
	Equity           []*ReportNode   `json:"equity"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	RetainedEarnings decimal.Decimal `json:"retained_earnings"`
	IsBalanced       bool            `json:"is_balanced"`
}

// IncomeStatement is the profit and loss over a period.
type IncomeStatement struct {
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	Income        []*ReportNode   `json:"income"`
	Expenses      []*ReportNode   `json:"expenses"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetIncome     decimal.Decimal `json:"net_income"`
}

// CashFlowSection holds the inflows and outflows of one activity class.
type CashFlowSection struct {
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
	Net      decimal.Decimal `json:"net"`
}

// CashFlowStatement is the movement of cash over a period.
type CashFlowStatement struct {
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	Operating    CashFlowSection `json:"operating"`
	Investing    CashFlowSection `json:"investing"`
	Financing    CashFlowSection `json:"financing"`
	NetIncrease  decimal.Decimal `json:"net_increase"`
	StartBalance decimal.Decimal `json:"start_balance"`
	EndBalance   decimal.Decimal `json:"end_balance"`
}

// AccountingEquation checks Assets = Liabilities + Equity + Net Income.
type AccountingEquation struct {
	TotalAssets           decimal.Decimal `json:"total_assets"`
	TotalLiabilities      decimal.Decimal `json:"total_liabilities"`
	TotalEquity           decimal.Decimal `json:"total_equity"`
	NetIncome             decimal.Decimal `json:"net_income"`
	TotalEquityWithIncome decimal.Decimal `json:"total_equity_with_income"`
	RightSide             decimal.Decimal `json:"right_side"`
	IsBalanced            bool            `json:"is_balanced"`
}

// MonthlyCashFlow is the net cash movement of one month.
type MonthlyCashFlow struct {
	Month  string          `json:"month"` // YYYY-MM
	Amount decimal.Decimal `json:"amount"`
}

// TodoItem is a pending task shown on the dashboard.
type TodoItem struct {
	ID       int    `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Deadline string `json:"deadline"`
	Urgent   bool   `json:"urgent"`
	Ref      string `json:"ref"`
}

// Dashboard aggregates the headline figures of the books.
type Dashboard struct {
	Date                      string             `json:"date"`
	CashAndEquivalents        decimal.Decimal    `json:"cash_and_equivalents"`
	CashGrowthRate            decimal.Decimal    `json:"cash_growth_rate"`
	NetIncome                 decimal.Decimal    `json:"net_income"`
	NetIncomeGrowthRate       decimal.Decimal    `json:"net_income_growth_rate"`
	AccountsPayable           decimal.Decimal    `json:"accounts_payable"`
	AccountsPayableGrowthRate decimal.Decimal    `json:"accounts_payable_growth_rate"`
	CashFlowData              []MonthlyCashFlow  `json:"cash_flow_data"`
	TodoItems                 []TodoItem         `json:"todo_items"`
	AccountingEquation        AccountingEquation `json:"accounting_equation"`
}
