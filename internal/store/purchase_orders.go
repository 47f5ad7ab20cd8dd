package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// PurchaseOrder retrieves a purchase order by GUID.
func (t *Tx) PurchaseOrder(guid string) (*models.PurchaseOrder, error) {
	var order models.PurchaseOrder
	if err := t.get(BucketPurchaseOrders, guid, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// PurchaseOrders retrieves every purchase order.
func (t *Tx) PurchaseOrders() ([]*models.PurchaseOrder, error) {
	return list[models.PurchaseOrder](t, BucketPurchaseOrders)
}

// PutPurchaseOrder creates or replaces a purchase order.
func (t *Tx) PutPurchaseOrder(order *models.PurchaseOrder) error {
	if order.GUID == "" {
		return fmt.Errorf("purchase order has no GUID")
	}
	if err := t.put(BucketPurchaseOrders, order.GUID, order); err != nil {
		return fmt.Errorf("failed to save purchase order: %w", err)
	}
	return nil
}

// CreatePurchaseOrder assigns a GUID and an order number, then stores the
// order.
func (t *Tx) CreatePurchaseOrder(order *models.PurchaseOrder) error {
	number, err := t.NextOrderNumber(order.DateOpened)
	if err != nil {
		return err
	}
	order.GUID = NewGUID()
	order.ID = number
	return t.PutPurchaseOrder(order)
}

// ApprovePurchaseOrder marks an open order approved and stores the
// transaction it posted. It fails with ErrConflict when the order is no
// longer open.
func (t *Tx) ApprovePurchaseOrder(guid string, txn *models.Transaction, now time.Time) (*models.PurchaseOrder, error) {
	order, err := t.PurchaseOrder(guid)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderOpen {
		return nil, fmt.Errorf("%w: purchase order %s is %s", ErrConflict, order.ID, order.Status)
	}

	if err := t.PutTransaction(txn); err != nil {
		return nil, err
	}

	order.Status = models.OrderApproved
	order.TransactionGUID = &txn.GUID
	order.UpdatedAt = now
	if err := t.PutPurchaseOrder(order); err != nil {
		return nil, err
	}
	return order, nil
}

// NextOrderNumber assigns the next order number for an order opened on
// date (YYYY-MM-DD), e.g. PO-20250115-0007.
func (t *Tx) NextOrderNumber(date string) (string, error) {
	seq, err := t.NextSequence(BucketPurchaseOrders)
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return fmt.Sprintf("PO-%s-%04d", strings.ReplaceAll(date, "-", ""), seq), nil
}

// ListPurchaseOrders retrieves every purchase order.
func (s *Store) ListPurchaseOrders() ([]*models.PurchaseOrder, error) {
	var orders []*models.PurchaseOrder
	err := s.View(func(tx *Tx) error {
		var err error
		orders, err = tx.PurchaseOrders()
		return err
	})
	return orders, err
}
