package store

import (
	"encoding/json"
	"fmt"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// Transaction retrieves a transaction with its splits.
func (t *Tx) Transaction(guid string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := t.get(BucketTransactions, guid, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// Transactions retrieves the transactions accepted by filter, or all of
// them when filter is nil.
func (t *Tx) Transactions(filter func(*models.Transaction) bool) ([]*models.Transaction, error) {
	var results []*models.Transaction
	err := t.each(BucketTransactions, func(data []byte) error {
		var txn models.Transaction
		if err := json.Unmarshal(data, &txn); err != nil {
			return fmt.Errorf("failed to unmarshal transaction: %w", err)
		}
		if filter == nil || filter(&txn) {
			results = append(results, &txn)
		}
		return nil
	})
	return results, err
}

// PutTransaction creates or replaces a transaction together with its splits.
func (t *Tx) PutTransaction(txn *models.Transaction) error {
	if txn.GUID == "" {
		return fmt.Errorf("transaction has no GUID")
	}
	if err := t.put(BucketTransactions, txn.GUID, txn); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// SetReconcileState updates the reconcile state of one split.
func (t *Tx) SetReconcileState(txGUID, splitGUID, state string) (*models.Transaction, error) {
	txn, err := t.Transaction(txGUID)
	if err != nil {
		return nil, err
	}

	for i := range txn.Splits {
		if txn.Splits[i].GUID == splitGUID {
			txn.Splits[i].ReconcileState = state
			if err := t.PutTransaction(txn); err != nil {
				return nil, err
			}
			return txn, nil
		}
	}
	return nil, ErrNotFound
}

// GetTransaction retrieves a transaction by GUID.
func (s *Store) GetTransaction(guid string) (*models.Transaction, error) {
	var txn *models.Transaction
	err := s.View(func(tx *Tx) error {
		var err error
		txn, err = tx.Transaction(guid)
		return err
	})
	return txn, err
}

// ListTransactions retrieves the transactions accepted by filter.
func (s *Store) ListTransactions(filter func(*models.Transaction) bool) ([]*models.Transaction, error) {
	var txns []*models.Transaction
	err := s.View(func(tx *Tx) error {
		var err error
		txns, err = tx.Transactions(filter)
		return err
	})
	return txns, err
}
