package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
	"github.com/pigeonworks-llc/gnucash-lite/internal/store"
)

const (
	cashFlowMonths = 6

	// urgentAfter is the age at which an open purchase order becomes urgent.
	urgentAfter = 7 * 24 * time.Hour
)

// Dashboard computes the headline figures at date (today when empty),
// each compared with the previous month.
func (s *Service) Dashboard(ctx context.Context, date string) (*models.Dashboard, error) {
	date, err := s.dateOrToday("date", date)
	if err != nil {
		return nil, err
	}
	day, _ := time.Parse(DateLayout, date)
	curStart := monthStart(day)
	prevEnd := curStart.AddDate(0, 0, -1)
	prevStart := monthStart(prevEnd)

	var (
		b       *books
		orders  []*models.PurchaseOrder
		vendors map[string]string
		load    errgroup.Group
	)
	load.Go(func() error {
		var err error
		b, err = s.loadBooks()
		return err
	})
	load.Go(func() error {
		return s.store.View(func(tx *store.Tx) error {
			var err error
			if orders, err = tx.PurchaseOrders(); err != nil {
				return err
			}
			vendors, err = vendorNames(tx)
			return err
		})
	})
	if err := load.Wait(); err != nil {
		return nil, err
	}

	d := &models.Dashboard{Date: date}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cur := s.cashBalance(b, date)
		prev := s.cashBalance(b, format(prevEnd))
		d.CashAndEquivalents, d.CashGrowthRate = cur, growthRate(cur, prev)
		return ctx.Err()
	})
	g.Go(func() error {
		cur := b.netIncome(format(curStart), date)
		prev := b.netIncome(format(prevStart), format(prevEnd))
		d.NetIncome, d.NetIncomeGrowthRate = cur, growthRate(cur, prev)
		return ctx.Err()
	})
	g.Go(func() error {
		cur := s.payableBalance(b, date)
		prev := s.payableBalance(b, format(prevEnd))
		d.AccountsPayable, d.AccountsPayableGrowthRate = cur, growthRate(cur, prev)
		return ctx.Err()
	})
	g.Go(func() error {
		d.CashFlowData = s.monthlyCashFlow(b, day)
		return ctx.Err()
	})
	g.Go(func() error {
		d.TodoItems = todoItems(orders, vendors, day)
		return ctx.Err()
	})
	g.Go(func() error {
		d.AccountingEquation = b.equation(date)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

func format(t time.Time) string {
	return t.Format(DateLayout)
}

// cashBalance sums the cash accounts at date.
func (s *Service) cashBalance(b *books, date string) decimal.Decimal {
	own := b.ownBalances("", date)
	sum := decimal.Zero
	for guid := range s.cashAccounts(b) {
		sum = sum.Add(own[guid])
	}
	return sum
}

// payableBalance returns the natural-sign balance of the payable account
// subtree at date.
func (s *Service) payableBalance(b *books, date string) decimal.Decimal {
	own := b.ownBalances("", date)
	sum := decimal.Zero
	for _, a := range b.accounts {
		if a.CodeOrEmpty() != s.cfg.PayableAccountCode {
			continue
		}
		for guid := range b.subtree(a.GUID) {
			sum = sum.Add(own[guid])
		}
	}
	return natural(models.AccountTypeLiability, sum)
}

// monthlyCashFlow returns the net cash movement of the six months ending
// with the month of day. The current month runs to day.
func (s *Service) monthlyCashFlow(b *books, day time.Time) []models.MonthlyCashFlow {
	data := make([]models.MonthlyCashFlow, 0, cashFlowMonths)
	first := monthStart(day)
	for i := cashFlowMonths - 1; i >= 0; i-- {
		start := first.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, -1)
		if i == 0 {
			end = day
		}
		stmt := s.cashFlow(b, format(start), format(end))
		data = append(data, models.MonthlyCashFlow{
			Month:  start.Format("2006-01"),
			Amount: stmt.NetIncrease,
		})
	}
	return data
}

// todoItems lists the open purchase orders awaiting approval, oldest first.
func todoItems(orders []*models.PurchaseOrder, vendors map[string]string, day time.Time) []models.TodoItem {
	open := make([]*models.PurchaseOrder, 0)
	for _, o := range orders {
		if o.Status == models.OrderOpen {
			open = append(open, o)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return open[i].DateOpened < open[j].DateOpened
	})

	items := make([]models.TodoItem, 0, len(open))
	for i, o := range open {
		opened, err := time.Parse(DateLayout, o.DateOpened)
		if err != nil {
			continue
		}
		title := fmt.Sprintf("Approve purchase order %s", o.ID)
		if name := vendors[o.VendorGUID]; name != "" {
			title += " (" + name + ")"
		}
		items = append(items, models.TodoItem{
			ID:       i + 1,
			Type:     "purchase_approval",
			Title:    title,
			Deadline: format(opened.Add(urgentAfter)),
			Urgent:   day.Sub(opened) > urgentAfter,
			Ref:      o.GUID,
		})
	}
	return items
}

// equation evaluates Assets = Liabilities + Equity + Net Income at date.
func (b *books) equation(date string) models.AccountingEquation {
	own := b.ownBalances("", date)
	assets := b.typeTotal(models.AccountTypeAsset, own)
	liabilities := b.typeTotal(models.AccountTypeLiability, own)
	equity := b.typeTotal(models.AccountTypeEquity, own)
	income := b.typeTotal(models.AccountTypeIncome, own).Sub(b.typeTotal(models.AccountTypeExpense, own))

	withIncome := equity.Add(income)
	right := liabilities.Add(withIncome)
	return models.AccountingEquation{
		TotalAssets:           assets,
		TotalLiabilities:      liabilities,
		TotalEquity:           equity,
		NetIncome:             income,
		TotalEquityWithIncome: withIncome,
		RightSide:             right,
		IsBalanced:            balanced(assets, right),
	}
}
