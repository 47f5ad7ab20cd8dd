package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// BalanceSheet reports assets, liabilities and equity at date (today when
// empty). Net income to date is carried as retained earnings.
func (s *Service) BalanceSheet(date string) (*models.BalanceSheet, error) {
	date, err := s.dateOrToday("date", date)
	if err != nil {
		return nil, err
	}

	b, err := s.loadBooks()
	if err != nil {
		return nil, err
	}
	return b.balanceSheet(date), nil
}

func (b *books) balanceSheet(date string) *models.BalanceSheet {
	own := b.ownBalances("", date)
	assets, totalAssets := b.statement(models.AccountTypeAsset, own)
	liabilities, totalLiabilities := b.statement(models.AccountTypeLiability, own)
	equity, totalEquity := b.statement(models.AccountTypeEquity, own)
	retained := b.netIncome("", date)

	return &models.BalanceSheet{
		Date:             date,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
		RetainedEarnings: retained,
		IsBalanced:       balanced(totalAssets, totalLiabilities.Add(totalEquity).Add(retained)),
	}
}

func balanced(left, right decimal.Decimal) bool {
	return left.Sub(right).Abs().LessThanOrEqual(tolerance)
}

// IncomeStatement reports income and expenses posted in [start, end].
func (s *Service) IncomeStatement(start, end string) (*models.IncomeStatement, error) {
	if err := period(start, end); err != nil {
		return nil, err
	}

	b, err := s.loadBooks()
	if err != nil {
		return nil, err
	}

	own := b.ownBalances(start, end)
	income, totalIncome := b.statement(models.AccountTypeIncome, own)
	expenses, totalExpenses := b.statement(models.AccountTypeExpense, own)
	return &models.IncomeStatement{
		StartDate:     start,
		EndDate:       end,
		Income:        income,
		Expenses:      expenses,
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetIncome:     totalIncome.Sub(totalExpenses),
	}, nil
}

// activity is the cash-flow class of a transaction.
type activity int

const (
	operating activity = iota
	investing
	financing
)

// cashAccounts returns the ASSET accounts whose code starts with one of
// the configured cash prefixes.
func (s *Service) cashAccounts(b *books) map[string]bool {
	cash := make(map[string]bool)
	for _, a := range b.accounts {
		if a.AccountType != models.AccountTypeAsset {
			continue
		}
		code := a.CodeOrEmpty()
		for _, prefix := range s.cfg.CashAccountPrefixes {
			if code != "" && strings.HasPrefix(code, prefix) {
				cash[a.GUID] = true
				break
			}
		}
	}
	return cash
}

// classify assigns a transaction to an activity by the account of its
// largest non-cash split.
func classify(b *books, t *models.Transaction, cash map[string]bool) activity {
	var (
		largest *models.Account
		size    decimal.Decimal
	)
	for _, sp := range t.Splits {
		if cash[sp.AccountGUID] {
			continue
		}
		if a, ok := b.byGUID[sp.AccountGUID]; ok && (largest == nil || sp.Amount.Abs().GreaterThan(size)) {
			largest, size = a, sp.Amount.Abs()
		}
	}
	if largest == nil {
		return operating
	}

	code := largest.CodeOrEmpty()
	switch largest.AccountType {
	case models.AccountTypeEquity:
		return financing
	case models.AccountTypeLiability:
		if code == "2001" || strings.HasPrefix(code, "25") {
			return financing
		}
	case models.AccountTypeAsset:
		if strings.HasPrefix(code, "15") || strings.HasPrefix(code, "16") || strings.HasPrefix(code, "17") {
			return investing
		}
	}
	return operating
}

// CashFlow reports the movement of cash in [start, end] by activity.
func (s *Service) CashFlow(start, end string) (*models.CashFlowStatement, error) {
	if err := period(start, end); err != nil {
		return nil, err
	}

	b, err := s.loadBooks()
	if err != nil {
		return nil, err
	}
	return s.cashFlow(b, start, end), nil
}

func (s *Service) cashFlow(b *books, start, end string) *models.CashFlowStatement {
	cash := s.cashAccounts(b)
	stmt := &models.CashFlowStatement{
		StartDate:    start,
		EndDate:      end,
		Operating:    emptySection(),
		Investing:    emptySection(),
		Financing:    emptySection(),
		StartBalance: decimal.Zero,
		NetIncrease:  decimal.Zero,
	}

	for _, t := range b.txns {
		delta := splitSum(t, cash)
		if t.PostDate < start {
			stmt.StartBalance = stmt.StartBalance.Add(delta)
			continue
		}
		if t.PostDate > end || delta.IsZero() {
			continue
		}

		section := &stmt.Operating
		switch classify(b, t, cash) {
		case investing:
			section = &stmt.Investing
		case financing:
			section = &stmt.Financing
		}
		if delta.IsPositive() {
			section.Inflows = section.Inflows.Add(delta)
		} else {
			section.Outflows = section.Outflows.Add(delta.Neg())
		}
	}

	for _, sec := range []*models.CashFlowSection{&stmt.Operating, &stmt.Investing, &stmt.Financing} {
		sec.Net = sec.Inflows.Sub(sec.Outflows)
		stmt.NetIncrease = stmt.NetIncrease.Add(sec.Net)
	}
	stmt.EndBalance = stmt.StartBalance.Add(stmt.NetIncrease)
	return stmt
}

func emptySection() models.CashFlowSection {
	return models.CashFlowSection{Inflows: decimal.Zero, Outflows: decimal.Zero, Net: decimal.Zero}
}

// monthStart returns the first day of the month of d.
func monthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
