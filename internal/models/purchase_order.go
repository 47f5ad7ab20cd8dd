package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the approval state of a purchase order.
type OrderStatus string

const (
	OrderOpen     OrderStatus = "OPEN"
	OrderApproved OrderStatus = "APPROVED"
)

// PurchaseOrder represents an order placed with a vendor.
type PurchaseOrder struct {
	GUID              string       `json:"guid"`
	ID                string       `json:"id"` // PO-20250101-0001
	VendorGUID        string       `json:"vendor_guid"`
	Status            OrderStatus  `json:"status"`
	DateOpened        string       `json:"date_opened"` // YYYY-MM-DD
	Entries           []OrderEntry `json:"entries"`
	CreditAccountGUID *string      `json:"credit_account_guid,omitempty"`
	TransactionGUID   *string      `json:"transaction_guid,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// Total returns the sum of quantity × price over all entries.
func (o *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range o.Entries {
		total = total.Add(e.Total())
	}
	return total
}

// OrderEntry is a line item of a purchase order.
type OrderEntry struct {
	GUID        string          `json:"guid"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	AccountGUID string          `json:"account_guid"` // expense or inventory account debited on approval
}

// Total returns quantity × price.
func (e OrderEntry) Total() decimal.Decimal {
	return e.Quantity.Mul(e.Price)
}

// CreatePurchaseOrderRequest represents the request to open a purchase order.
type CreatePurchaseOrderRequest struct {
	VendorGUID        string                    `json:"vendor_guid"`
	DateOpened        string                    `json:"date_opened,omitempty"`
	CreditAccountGUID *string                   `json:"credit_account_guid,omitempty"`
	Entries           []CreateOrderEntryRequest `json:"entries"`
}

// CreateOrderEntryRequest represents a line in a create-order request.
type CreateOrderEntryRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	AccountGUID string          `json:"account_guid"`
}

// PurchaseOrderView is the purchase-order list shape of an order.
type PurchaseOrderView struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Supplier        string          `json:"supplier"`
	VendorGUID      string          `json:"vendor_guid"`
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date"`
	Status          string          `json:"status"` // pending or completed
	Items           []OrderItemView `json:"items"`
	TransactionGUID *string         `json:"transaction_guid,omitempty"`
}

// OrderItemView is one line of a PurchaseOrderView.
type OrderItemView struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// ApprovalResult is returned when a purchase order is approved.
type ApprovalResult struct {
	Message     string             `json:"message"`
	Order       *PurchaseOrderView `json:"order"`
	Transaction *Transaction       `json:"transaction"`
}
