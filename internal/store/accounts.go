package store

import (
	"fmt"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// Account retrieves an account by GUID.
func (t *Tx) Account(guid string) (*models.Account, error) {
	var account models.Account
	if err := t.get(BucketAccounts, guid, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Accounts retrieves every account.
func (t *Tx) Accounts() ([]*models.Account, error) {
	return list[models.Account](t, BucketAccounts)
}

// PutAccount creates or replaces an account.
func (t *Tx) PutAccount(account *models.Account) error {
	if account.GUID == "" {
		return fmt.Errorf("account has no GUID")
	}
	if err := t.put(BucketAccounts, account.GUID, account); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// DeleteAccount removes an account.
func (t *Tx) DeleteAccount(guid string) error {
	return t.delete(BucketAccounts, guid)
}

// AccountByCode finds the account with the given code.
func (t *Tx) AccountByCode(code string) (*models.Account, error) {
	accounts, err := t.Accounts()
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Code != nil && *a.Code == code {
			return a, nil
		}
	}
	return nil, ErrNotFound
}

// GetAccount retrieves an account by GUID.
func (s *Store) GetAccount(guid string) (*models.Account, error) {
	var account *models.Account
	err := s.View(func(tx *Tx) error {
		var err error
		account, err = tx.Account(guid)
		return err
	})
	return account, err
}

// ListAccounts retrieves every account.
func (s *Store) ListAccounts() ([]*models.Account, error) {
	var accounts []*models.Account
	err := s.View(func(tx *Tx) error {
		var err error
		accounts, err = tx.Accounts()
		return err
	})
	return accounts, err
}
