package ledger

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
	"github.com/pigeonworks-llc/gnucash-lite/internal/store"
)

const maxAccountName = 100

func checkAccountName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidf("account name is required")
	}
	if utf8.RuneCountInString(name) > maxAccountName {
		return "", invalidf("account name must be at most %d characters", maxAccountName)
	}
	return name, nil
}

// CreateAccount adds an account to the chart of accounts.
func (s *Service) CreateAccount(req models.CreateAccountRequest) (*models.Account, error) {
	name, err := checkAccountName(req.Name)
	if err != nil {
		return nil, err
	}
	if !req.AccountType.Valid() {
		return nil, invalidf("invalid account type %q", req.AccountType)
	}

	var code *string
	if req.Code != nil {
		if c := strings.TrimSpace(*req.Code); c != "" {
			code = &c
		}
	}

	now := s.now()
	account := &models.Account{
		GUID:        store.NewGUID(),
		Name:        name,
		AccountType: req.AccountType,
		Placeholder: req.Placeholder,
		Code:        code,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.store.Update(func(tx *store.Tx) error {
		if req.ParentGUID != nil && *req.ParentGUID != "" {
			parent, err := tx.Account(*req.ParentGUID)
			if err != nil {
				return lookup(err, "parent account", *req.ParentGUID)
			}
			if parent.AccountType != req.AccountType {
				return invalidf("account type %s does not match parent type %s", req.AccountType, parent.AccountType)
			}
			account.ParentGUID = &parent.GUID
		}

		if code != nil {
			existing, err := tx.AccountByCode(*code)
			switch {
			case err == nil:
				return conflictf("account code %s is already used by %s", *code, existing.Name)
			case !errors.Is(err, store.ErrNotFound):
				return err
			}
		}

		return tx.PutAccount(account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount retrieves an account.
func (s *Service) GetAccount(guid string) (*models.Account, error) {
	account, err := s.store.GetAccount(guid)
	if err != nil {
		return nil, lookup(err, "account", guid)
	}
	return account, nil
}

// ListAccounts returns every account ordered by code, then name.
func (s *Service) ListAccounts() ([]*models.Account, error) {
	accounts, err := s.store.ListAccounts()
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []*models.Account{}
	}
	sortAccounts(accounts)
	return accounts, nil
}

// RenameAccount changes the name of an account. Nothing else may change.
func (s *Service) RenameAccount(guid string, req models.UpdateAccountRequest) (*models.Account, error) {
	if req.Name == nil {
		return nil, invalidf("account name is required")
	}
	name, err := checkAccountName(*req.Name)
	if err != nil {
		return nil, err
	}

	var account *models.Account
	err = s.store.Update(func(tx *store.Tx) error {
		var err error
		account, err = tx.Account(guid)
		if err != nil {
			return lookup(err, "account", guid)
		}
		account.Name = name
		account.UpdatedAt = s.now()
		return tx.PutAccount(account)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes an account that has no children and no splits.
func (s *Service) DeleteAccount(guid string) error {
	return s.store.Update(func(tx *store.Tx) error {
		account, err := tx.Account(guid)
		if err != nil {
			return lookup(err, "account", guid)
		}

		accounts, err := tx.Accounts()
		if err != nil {
			return err
		}
		for _, a := range accounts {
			if a.ParentGUID != nil && *a.ParentGUID == guid {
				return conflictf("account %s has child accounts", account.Name)
			}
		}

		self := map[string]bool{guid: true}
		used, err := tx.Transactions(func(t *models.Transaction) bool {
			return t.Touches(self)
		})
		if err != nil {
			return err
		}
		if len(used) > 0 {
			return conflictf("account %s has %d transactions", account.Name, len(used))
		}

		return tx.DeleteAccount(guid)
	})
}

// AccountTree returns the chart of accounts as a tree whose balances are
// rolled up from splits posted on or before asOf (all when empty).
// Balances keep the raw sign: debits positive, credits negative.
func (s *Service) AccountTree(asOf string) ([]*models.AccountNode, error) {
	if asOf != "" {
		if err := checkDate("date", asOf); err != nil {
			return nil, err
		}
	}

	b, err := s.loadBooks()
	if err != nil {
		return nil, err
	}
	return b.tree(b.ownBalances("", asOf)), nil
}

// AccountBalance returns the raw balance of an account and its
// descendants at asOf (today when empty).
func (s *Service) AccountBalance(guid, asOf string) (*models.AccountBalance, error) {
	date, err := s.dateOrToday("date", asOf)
	if err != nil {
		return nil, err
	}

	b, err := s.loadBooks()
	if err != nil {
		return nil, err
	}
	if _, ok := b.byGUID[guid]; !ok {
		return nil, notFound("account", guid)
	}

	own := b.ownBalances("", date)
	balance := decimal.Zero
	for g := range b.subtree(guid) {
		balance = balance.Add(own[g])
	}
	return &models.AccountBalance{AccountGUID: guid, Date: date, Balance: balance}, nil
}

// TransactionCount returns the number of transactions posting to the
// account itself.
func (s *Service) TransactionCount(guid string) (int, error) {
	var count int
	err := s.store.View(func(tx *store.Tx) error {
		if _, err := tx.Account(guid); err != nil {
			return lookup(err, "account", guid)
		}
		self := map[string]bool{guid: true}
		txns, err := tx.Transactions(func(t *models.Transaction) bool {
			return t.Touches(self)
		})
		count = len(txns)
		return err
	})
	return count, err
}

// AccountTransactions returns the transactions posting to the account or
// any of its descendants, newest first.
func (s *Service) AccountTransactions(guid string) ([]*models.Transaction, error) {
	b, err := s.loadBooks()
	if err != nil {
		return nil, err
	}
	if _, ok := b.byGUID[guid]; !ok {
		return nil, notFound("account", guid)
	}

	set := b.subtree(guid)
	txns := make([]*models.Transaction, 0)
	for _, t := range b.txns {
		if t.Touches(set) {
			txns = append(txns, t)
		}
	}
	sortTransactions(txns)
	return txns, nil
}

// QuickEntry posts a two-split transaction between an account and an
// opposite account. A positive amount increases the account, a negative
// one decreases it.
func (s *Service) QuickEntry(guid string, req models.QuickEntryRequest) (*models.Transaction, error) {
	account, err := s.GetAccount(guid)
	if err != nil {
		return nil, err
	}
	if req.OppositeAccountGUID == "" {
		return nil, invalidf("opposite_account_guid is required")
	}
	if req.OppositeAccountGUID == guid {
		return nil, invalidf("opposite account must differ from the account")
	}

	amount := natural(account.AccountType, req.Amount)
	postDate := req.PostDate
	if strings.TrimSpace(postDate) == "" {
		postDate = s.today()
	}

	return s.CreateTransaction(models.CreateTransactionRequest{
		PostDate:    postDate,
		Description: req.Description,
		Splits: []models.CreateSplitRequest{
			{AccountGUID: guid, Memo: req.Memo, Amount: amount},
			{AccountGUID: req.OppositeAccountGUID, Memo: req.Memo, Amount: amount.Neg()},
		},
	})
}
