package ledger

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
	"github.com/pigeonworks-llc/gnucash-lite/internal/store"
)

const maxDescription = 255

// checkTransaction validates everything that does not need the store.
func checkTransaction(req models.CreateTransactionRequest) (models.CreateTransactionRequest, error) {
	req.PostDate = strings.TrimSpace(req.PostDate)
	if req.PostDate == "" {
		return req, invalidf("post_date is required")
	}
	if err := checkDate("post_date", req.PostDate); err != nil {
		return req, err
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return req, invalidf("description is required")
	}
	if utf8.RuneCountInString(req.Description) > maxDescription {
		return req, invalidf("description must be at most %d characters", maxDescription)
	}

	if len(req.Splits) < 2 {
		return req, invalidf("a transaction needs at least two splits")
	}
	splits := make([]models.CreateSplitRequest, len(req.Splits))
	for i, sp := range req.Splits {
		sp.Amount = storedAmount(sp.Amount)
		splits[i] = sp
		if sp.AccountGUID == "" {
			return req, invalidf("split %d: account_guid is required", i+1)
		}
		if sp.Amount.IsZero() {
			return req, invalidf("split %d: amount must not be zero at %d decimal places", i+1, maxScale)
		}
		if sp.Amount.Abs().GreaterThanOrEqual(maxAmount) {
			return req, invalidf("split %d: amount %s exceeds the limit of %s", i+1, sp.Amount, maxAmount)
		}
	}

	req.Splits = splits

	if check := CheckBalance(req.Splits); !check.IsBalanced {
		return req, imbalanced(check)
	}
	return req, nil
}

// buildTransaction checks the split accounts inside tx and returns the
// transaction to store.
func (s *Service) buildTransaction(tx *store.Tx, req models.CreateTransactionRequest) (*models.Transaction, error) {
	txn := &models.Transaction{
		GUID:        store.NewGUID(),
		PostDate:    req.PostDate,
		EnterDate:   s.now(),
		Description: req.Description,
		Splits:      make([]models.Split, 0, len(req.Splits)),
	}

	for _, sp := range req.Splits {
		account, err := tx.Account(sp.AccountGUID)
		if err != nil {
			return nil, lookup(err, "account", sp.AccountGUID)
		}
		if account.Placeholder {
			return nil, invalidf("account %s is a placeholder and cannot be posted to", account.Name)
		}

		amount := storedAmount(sp.Amount)
		num, denom := fraction(amount)
		txn.Splits = append(txn.Splits, models.Split{
			GUID:           store.NewGUID(),
			AccountGUID:    sp.AccountGUID,
			Memo:           strings.TrimSpace(sp.Memo),
			Amount:         amount,
			ValueNum:       num,
			ValueDenom:     denom,
			ReconcileState: models.ReconcileNo,
		})
	}
	return txn, nil
}

// CreateTransaction posts a balanced journal entry.
func (s *Service) CreateTransaction(req models.CreateTransactionRequest) (*models.Transaction, error) {
	req, err := checkTransaction(req)
	if err != nil {
		return nil, err
	}

	var txn *models.Transaction
	err = s.store.Update(func(tx *store.Tx) error {
		var err error
		txn, err = s.buildTransaction(tx, req)
		if err != nil {
			return err
		}
		return tx.PutTransaction(txn)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions returns the transactions posted in [start, end],
// newest first. Empty bounds are open.
func (s *Service) ListTransactions(start, end string) ([]*models.Transaction, error) {
	if start != "" {
		if err := checkDate("start_date", start); err != nil {
			return nil, err
		}
	}
	if end != "" {
		if err := checkDate("end_date", end); err != nil {
			return nil, err
		}
	}

	txns, err := s.store.ListTransactions(func(t *models.Transaction) bool {
		return inPeriod(t.PostDate, start, end)
	})
	if err != nil {
		return nil, err
	}
	if txns == nil {
		txns = []*models.Transaction{}
	}
	sortTransactions(txns)
	return txns, nil
}

// GetTransaction retrieves a transaction with its splits.
func (s *Service) GetTransaction(guid string) (*models.Transaction, error) {
	txn, err := s.store.GetTransaction(guid)
	if err != nil {
		return nil, lookup(err, "transaction", guid)
	}
	return txn, nil
}

// SetReconcileState marks a split reconciled ("y") or not ("n").
func (s *Service) SetReconcileState(txGUID, splitGUID, state string) (*models.Transaction, error) {
	if state != models.ReconcileNo && state != models.ReconcileYes {
		return nil, invalidf("reconcile state must be %q or %q", models.ReconcileNo, models.ReconcileYes)
	}

	var txn *models.Transaction
	err := s.store.Update(func(tx *store.Tx) error {
		if _, err := tx.Transaction(txGUID); err != nil {
			return lookup(err, "transaction", txGUID)
		}
		var err error
		txn, err = tx.SetReconcileState(txGUID, splitGUID, state)
		if errors.Is(err, store.ErrNotFound) {
			return notFound("split", splitGUID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// splitSum returns the sum of split amounts of t on the given accounts.
func splitSum(t *models.Transaction, accounts map[string]bool) decimal.Decimal {
	sum := decimal.Zero
	for _, sp := range t.Splits {
		if accounts[sp.AccountGUID] {
			sum = sum.Add(sp.Amount)
		}
	}
	return sum
}
