package ledger

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
	"github.com/pigeonworks-llc/gnucash-lite/internal/store"
)

const (
	maxVendorName = 100
	maxRating     = 5

	// historyItemCount is how many entry descriptions a history line shows.
	historyItemCount = 3
)

// applyVendor copies the set fields of req onto v and validates the result.
func applyVendor(v *models.Vendor, req models.VendorRequest) error {
	if req.Name != nil {
		v.Name = strings.TrimSpace(*req.Name)
	}
	if v.Name == "" {
		return invalidf("vendor name is required")
	}
	if utf8.RuneCountInString(v.Name) > maxVendorName {
		return invalidf("vendor name must be at most %d characters", maxVendorName)
	}

	setField(&v.Contact, req.Contact)
	setField(&v.Phone, req.Phone)
	setField(&v.Email, req.Email)
	setField(&v.Address, req.Address)
	setField(&v.Category, req.Category)
	setField(&v.Description, req.Description)

	if req.Rating != nil {
		v.Rating = *req.Rating
	}
	if v.Rating < 0 || v.Rating > maxRating {
		return invalidf("rating must be between 0 and %d", maxRating)
	}

	if req.Status != nil {
		v.Status = strings.TrimSpace(*req.Status)
	}
	if v.Status == "" {
		v.Status = models.VendorActive
	}
	if v.Status != models.VendorActive && v.Status != models.VendorInactive {
		return invalidf("status must be %q or %q", models.VendorActive, models.VendorInactive)
	}
	return nil
}

func setField(dst, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// CreateVendor adds a vendor and assigns its supplier code.
func (s *Service) CreateVendor(req models.VendorRequest) (*models.VendorView, error) {
	now := s.now()
	vendor := &models.Vendor{CreatedAt: now, UpdatedAt: now}
	if err := applyVendor(vendor, req); err != nil {
		return nil, err
	}

	err := s.store.Update(func(tx *store.Tx) error {
		return tx.CreateVendor(vendor)
	})
	if err != nil {
		return nil, err
	}
	return vendorView(vendor, 0, decimal.Zero), nil
}

// UpdateVendor changes the fields set in req.
func (s *Service) UpdateVendor(guid string, req models.VendorRequest) (*models.VendorView, error) {
	var view *models.VendorView
	err := s.store.Update(func(tx *store.Tx) error {
		vendor, err := tx.Vendor(guid)
		if err != nil {
			return lookup(err, "vendor", guid)
		}
		if err := applyVendor(vendor, req); err != nil {
			return err
		}
		vendor.UpdatedAt = s.now()
		if err := tx.PutVendor(vendor); err != nil {
			return err
		}

		orders, err := tx.PurchaseOrders()
		if err != nil {
			return err
		}
		counts, totals := orderTotals(orders)
		view = vendorView(vendor, counts[guid], totals[guid])
		return nil
	})
	return view, err
}

// GetVendor retrieves a vendor with its order totals.
func (s *Service) GetVendor(guid string) (*models.VendorView, error) {
	var view *models.VendorView
	err := s.store.View(func(tx *store.Tx) error {
		vendor, err := tx.Vendor(guid)
		if err != nil {
			return lookup(err, "vendor", guid)
		}
		orders, err := tx.PurchaseOrders()
		if err != nil {
			return err
		}
		counts, totals := orderTotals(orders)
		view = vendorView(vendor, counts[guid], totals[guid])
		return nil
	})
	return view, err
}

// ListVendors returns every vendor ordered by supplier code.
func (s *Service) ListVendors() ([]*models.VendorView, error) {
	views := make([]*models.VendorView, 0)
	err := s.store.View(func(tx *store.Tx) error {
		vendors, err := tx.Vendors()
		if err != nil {
			return err
		}
		orders, err := tx.PurchaseOrders()
		if err != nil {
			return err
		}

		sort.SliceStable(vendors, func(i, j int) bool {
			return vendors[i].Code < vendors[j].Code
		})
		counts, totals := orderTotals(orders)
		for _, v := range vendors {
			views = append(views, vendorView(v, counts[v.GUID], totals[v.GUID]))
		}
		return nil
	})
	return views, err
}

// VendorHistory summarizes the purchase orders placed with a vendor,
// newest first.
func (s *Service) VendorHistory(guid string) ([]*models.VendorHistoryItem, error) {
	history := make([]*models.VendorHistoryItem, 0)
	err := s.store.View(func(tx *store.Tx) error {
		if _, err := tx.Vendor(guid); err != nil {
			return lookup(err, "vendor", guid)
		}
		orders, err := tx.PurchaseOrders()
		if err != nil {
			return err
		}

		sortOrders(orders)
		for _, o := range orders {
			if o.VendorGUID != guid {
				continue
			}
			history = append(history, &models.VendorHistoryItem{
				ID:          o.GUID,
				Date:        o.DateOpened,
				OrderNumber: o.ID,
				Amount:      o.Total(),
				Status:      viewStatus(o.Status),
				Items:       itemSummary(o.Entries),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

// itemSummary joins the first entry descriptions, e.g. "Paper, Toner, Pens and 2 more".
func itemSummary(entries []models.OrderEntry) string {
	names := make([]string, 0, historyItemCount)
	for i, e := range entries {
		if i == historyItemCount {
			break
		}
		names = append(names, e.Description)
	}

	summary := strings.Join(names, ", ")
	if extra := len(entries) - historyItemCount; extra > 0 {
		summary += fmt.Sprintf(" and %d more", extra)
	}
	return summary
}

func vendorView(v *models.Vendor, orders int, total decimal.Decimal) *models.VendorView {
	return &models.VendorView{
		ID:                v.GUID,
		Name:              v.Name,
		Code:              v.Code,
		Contact:           v.Contact,
		Phone:             v.Phone,
		Email:             v.Email,
		Address:           v.Address,
		Category:          v.Category,
		Rating:            v.Rating,
		TotalTransactions: orders,
		TotalAmount:       total,
		Status:            v.Status,
		Description:       v.Description,
	}
}
