package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor statuses.
const (
	VendorActive   = "active"
	VendorInactive = "inactive"
)

// Vendor represents a supplier.
type Vendor struct {
	GUID        string    `json:"guid"`
	Code        string    `json:"code"` // SUP-001
	Name        string    `json:"name"`
	Contact     string    `json:"contact"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Category    string    `json:"category"`
	Rating      int       `json:"rating"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// VendorView is the supplier-directory shape of a vendor.
type VendorView struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	Contact           string          `json:"contact"`
	Phone             string          `json:"phone"`
	Email             string          `json:"email"`
	Address           string          `json:"address"`
	Category          string          `json:"category"`
	Rating            int             `json:"rating"`
	TotalTransactions int             `json:"totalTransactions"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Status            string          `json:"status"`
	Description       string          `json:"description"`
}

// VendorRequest creates or partially updates a vendor.
// Nil fields are left unchanged on update.
type VendorRequest struct {
	Name        *string `json:"name"`
	Contact     *string `json:"contact"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	Category    *string `json:"category"`
	Rating      *int    `json:"rating"`
	Status      *string `json:"status"`
	Description *string `json:"description"`
}

// VendorHistoryItem summarizes one purchase order of a vendor.
type VendorHistoryItem struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	OrderNumber string          `json:"orderNumber"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Items       string          `json:"items"`
}
