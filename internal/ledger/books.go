package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
	"github.com/pigeonworks-llc/gnucash-lite/internal/store"
)

// books is a read-only snapshot of the accounts and transactions.
type books struct {
	accounts []*models.Account
	byGUID   map[string]*models.Account
	children map[string][]*models.Account
	txns     []*models.Transaction
}

func (s *Service) loadBooks() (*books, error) {
	var b *books
	err := s.store.View(func(tx *store.Tx) error {
		var err error
		b, err = readBooks(tx)
		return err
	})
	return b, err
}

func readBooks(tx *store.Tx) (*books, error) {
	accounts, err := tx.Accounts()
	if err != nil {
		return nil, err
	}
	txns, err := tx.Transactions(nil)
	if err != nil {
		return nil, err
	}
	return newBooks(accounts, txns), nil
}

func newBooks(accounts []*models.Account, txns []*models.Transaction) *books {
	sortAccounts(accounts)

	b := &books{
		accounts: accounts,
		byGUID:   make(map[string]*models.Account, len(accounts)),
		children: make(map[string][]*models.Account),
		txns:     txns,
	}
	for _, a := range accounts {
		b.byGUID[a.GUID] = a
		parent := ""
		if a.ParentGUID != nil {
			parent = *a.ParentGUID
		}
		b.children[parent] = append(b.children[parent], a)
	}
	return b
}

// sortAccounts orders accounts by code, then name.
func sortAccounts(accounts []*models.Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		ci, cj := accounts[i].CodeOrEmpty(), accounts[j].CodeOrEmpty()
		if ci != cj {
			return ci < cj
		}
		return accounts[i].Name < accounts[j].Name
	})
}

// sortTransactions orders transactions newest first.
func sortTransactions(txns []*models.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if txns[i].PostDate != txns[j].PostDate {
			return txns[i].PostDate > txns[j].PostDate
		}
		return txns[i].EnterDate.After(txns[j].EnterDate)
	})
}

// roots returns the top-level accounts.
func (b *books) roots() []*models.Account {
	return b.children[""]
}

// subtree returns the GUIDs of an account and all its descendants.
func (b *books) subtree(guid string) map[string]bool {
	set := map[string]bool{guid: true}
	var walk func(string)
	walk = func(parent string) {
		for _, c := range b.children[parent] {
			if !set[c.GUID] {
				set[c.GUID] = true
				walk(c.GUID)
			}
		}
	}
	walk(guid)
	return set
}

// ownBalances sums split amounts per account over transactions posted in
// [from, to]. Empty bounds are open.
func (b *books) ownBalances(from, to string) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	for _, t := range b.txns {
		if !inPeriod(t.PostDate, from, to) {
			continue
		}
		for _, sp := range t.Splits {
			balances[sp.AccountGUID] = balances[sp.AccountGUID].Add(sp.Amount)
		}
	}
	return balances
}

func inPeriod(date, from, to string) bool {
	return (from == "" || date >= from) && (to == "" || date <= to)
}

// rolledUp returns the raw balance of every account including its
// descendants.
func (b *books) rolledUp(own map[string]decimal.Decimal) map[string]decimal.Decimal {
	total := make(map[string]decimal.Decimal, len(b.accounts))
	var sum func(a *models.Account) decimal.Decimal
	sum = func(a *models.Account) decimal.Decimal {
		if v, ok := total[a.GUID]; ok {
			return v
		}
		v := own[a.GUID]
		for _, c := range b.children[a.GUID] {
			v = v.Add(sum(c))
		}
		total[a.GUID] = v
		return v
	}
	for _, a := range b.accounts {
		sum(a)
	}
	return total
}

// tree builds the account tree with raw rolled-up balances.
func (b *books) tree(own map[string]decimal.Decimal) []*models.AccountNode {
	total := b.rolledUp(own)
	var build func(parent string) []*models.AccountNode
	build = func(parent string) []*models.AccountNode {
		nodes := make([]*models.AccountNode, 0, len(b.children[parent]))
		for _, a := range b.children[parent] {
			nodes = append(nodes, &models.AccountNode{
				GUID:        a.GUID,
				Name:        a.Name,
				AccountType: a.AccountType,
				ParentGUID:  a.ParentGUID,
				Placeholder: a.Placeholder,
				Code:        a.Code,
				Balance:     total[a.GUID],
				Children:    build(a.GUID),
			})
		}
		return nodes
	}
	return build("")
}

// statement builds the report trees of one account type with natural-sign
// balances and returns them with their total.
func (b *books) statement(t models.AccountType, own map[string]decimal.Decimal) ([]*models.ReportNode, decimal.Decimal) {
	total := b.rolledUp(own)
	var build func(parent string) []*models.ReportNode
	build = func(parent string) []*models.ReportNode {
		nodes := make([]*models.ReportNode, 0)
		for _, a := range b.children[parent] {
			if a.AccountType != t {
				continue
			}
			nodes = append(nodes, &models.ReportNode{
				GUID:        a.GUID,
				Name:        a.Name,
				Code:        a.Code,
				AccountType: a.AccountType,
				Balance:     natural(t, total[a.GUID]),
				Children:    build(a.GUID),
			})
		}
		return nodes
	}

	nodes := build("")
	sum := decimal.Zero
	for _, n := range nodes {
		sum = sum.Add(n.Balance)
	}
	return nodes, sum
}

// typeTotal returns the natural-sign total of every account of type t.
func (b *books) typeTotal(t models.AccountType, own map[string]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range b.accounts {
		if a.AccountType == t {
			sum = sum.Add(own[a.GUID])
		}
	}
	return natural(t, sum)
}

// netIncome returns income minus expenses over [from, to].
func (b *books) netIncome(from, to string) decimal.Decimal {
	own := b.ownBalances(from, to)
	return b.typeTotal(models.AccountTypeIncome, own).Sub(b.typeTotal(models.AccountTypeExpense, own))
}
