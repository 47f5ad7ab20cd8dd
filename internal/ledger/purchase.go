package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
	"github.com/pigeonworks-llc/gnucash-lite/internal/store"
)

// Purchase order list paging.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// payableAccountName names the payable account created on first approval.
const payableAccountName = "应付账款"

// CreatePurchaseOrder opens a purchase order with a vendor.
func (s *Service) CreatePurchaseOrder(req models.CreatePurchaseOrderRequest) (*models.PurchaseOrderView, error) {
	if req.VendorGUID == "" {
		return nil, invalidf("vendor_guid is required")
	}
	if len(req.Entries) == 0 {
		return nil, invalidf("a purchase order needs at least one entry")
	}
	dateOpened, err := s.dateOrToday("date_opened", req.DateOpened)
	if err != nil {
		return nil, err
	}

	entries := make([]models.OrderEntry, 0, len(req.Entries))
	for i, e := range req.Entries {
		desc := strings.TrimSpace(e.Description)
		switch {
		case desc == "":
			return nil, invalidf("entry %d: description is required", i+1)
		case !e.Quantity.IsPositive():
			return nil, invalidf("entry %d: quantity must be greater than zero", i+1)
		case e.Price.IsNegative():
			return nil, invalidf("entry %d: price must not be negative", i+1)
		case e.AccountGUID == "":
			return nil, invalidf("entry %d: account_guid is required", i+1)
		}
		entries = append(entries, models.OrderEntry{
			GUID:        store.NewGUID(),
			Description: desc,
			Quantity:    e.Quantity,
			Price:       e.Price,
			AccountGUID: e.AccountGUID,
		})
	}

	now := s.now()
	order := &models.PurchaseOrder{
		VendorGUID: req.VendorGUID,
		Status:     models.OrderOpen,
		DateOpened: dateOpened,
		Entries:    entries,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var vendor *models.Vendor
	err = s.store.Update(func(tx *store.Tx) error {
		var err error
		vendor, err = tx.Vendor(req.VendorGUID)
		if err != nil {
			return lookup(err, "vendor", req.VendorGUID)
		}

		for _, e := range entries {
			account, err := tx.Account(e.AccountGUID)
			if err != nil {
				return lookup(err, "account", e.AccountGUID)
			}
			if account.Placeholder {
				return invalidf("account %s is a placeholder and cannot be posted to", account.Name)
			}
		}

		if req.CreditAccountGUID != nil && *req.CreditAccountGUID != "" {
			account, err := tx.Account(*req.CreditAccountGUID)
			if err != nil {
				return lookup(err, "credit account", *req.CreditAccountGUID)
			}
			if account.Placeholder {
				return invalidf("account %s is a placeholder and cannot be posted to", account.Name)
			}
			order.CreditAccountGUID = &account.GUID
		}

		return tx.CreatePurchaseOrder(order)
	})
	if err != nil {
		return nil, err
	}
	return orderView(order, vendor.Name), nil
}

// ListPurchaseOrders returns one page of purchase orders, newest first,
// and the total number of orders.
func (s *Service) ListPurchaseOrders(page, perPage int) ([]*models.PurchaseOrderView, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	var (
		orders  []*models.PurchaseOrder
		vendors map[string]string
	)
	err := s.store.View(func(tx *store.Tx) error {
		var err error
		if orders, err = tx.PurchaseOrders(); err != nil {
			return err
		}
		vendors, err = vendorNames(tx)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	sortOrders(orders)
	total := len(orders)
	views := make([]*models.PurchaseOrderView, 0, perPage)
	for i := (page - 1) * perPage; i < total && len(views) < perPage; i++ {
		views = append(views, orderView(orders[i], vendors[orders[i].VendorGUID]))
	}
	return views, total, nil
}

// GetPurchaseOrder retrieves a purchase order.
func (s *Service) GetPurchaseOrder(guid string) (*models.PurchaseOrderView, error) {
	var view *models.PurchaseOrderView
	err := s.store.View(func(tx *store.Tx) error {
		order, err := tx.PurchaseOrder(guid)
		if err != nil {
			return lookup(err, "purchase order", guid)
		}
		name := ""
		if vendor, err := tx.Vendor(order.VendorGUID); err == nil {
			name = vendor.Name
		}
		view = orderView(order, name)
		return nil
	})
	return view, err
}

// ApprovePurchaseOrder approves an open order and posts its journal entry:
// a debit per entry and one credit of the order total to the order's
// credit account, or to the payable account when none is set.
func (s *Service) ApprovePurchaseOrder(guid string) (*models.ApprovalResult, error) {
	var result *models.ApprovalResult
	err := s.store.Update(func(tx *store.Tx) error {
		order, err := tx.PurchaseOrder(guid)
		if err != nil {
			return lookup(err, "purchase order", guid)
		}
		if order.Status != models.OrderOpen {
			return conflictf("purchase order %s is already %s", order.ID, strings.ToLower(string(order.Status)))
		}

		vendorName := ""
		if vendor, err := tx.Vendor(order.VendorGUID); err == nil {
			vendorName = vendor.Name
		}

		credit, err := s.creditAccount(tx, order)
		if err != nil {
			return err
		}

		req, err := approvalEntry(order, vendorName, credit)
		if err != nil {
			return err
		}
		req, err = checkTransaction(req)
		if err != nil {
			return err
		}
		txn, err := s.buildTransaction(tx, req)
		if err != nil {
			return err
		}
		txn.Source = &order.GUID

		order, err = tx.ApprovePurchaseOrder(guid, txn, s.now())
		if errors.Is(err, store.ErrConflict) {
			return conflictf("purchase order %s is no longer open", guid)
		}
		if err != nil {
			return err
		}

		result = &models.ApprovalResult{
			Message:     fmt.Sprintf("purchase order %s approved", order.ID),
			Order:       orderView(order, vendorName),
			Transaction: txn,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// creditAccount returns the account an approval credits, creating the
// payable account when it does not exist yet.
func (s *Service) creditAccount(tx *store.Tx, order *models.PurchaseOrder) (*models.Account, error) {
	if order.CreditAccountGUID != nil {
		account, err := tx.Account(*order.CreditAccountGUID)
		if err != nil {
			return nil, lookup(err, "credit account", *order.CreditAccountGUID)
		}
		return account, nil
	}

	account, err := tx.AccountByCode(s.cfg.PayableAccountCode)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	code := s.cfg.PayableAccountCode
	now := s.now()
	account = &models.Account{
		GUID:        store.NewGUID(),
		Name:        payableAccountName,
		AccountType: models.AccountTypeLiability,
		Code:        &code,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.PutAccount(account); err != nil {
		return nil, err
	}
	return account, nil
}

func approvalEntry(order *models.PurchaseOrder, vendorName string, credit *models.Account) (models.CreateTransactionRequest, error) {
	total := order.Total()
	if !total.IsPositive() {
		return models.CreateTransactionRequest{}, invalidf("purchase order %s has a zero total", order.ID)
	}

	desc := "Purchase order " + order.ID
	if vendorName != "" {
		desc += " - " + vendorName
	}

	splits := make([]models.CreateSplitRequest, 0, len(order.Entries)+1)
	for _, e := range order.Entries {
		amount := e.Total()
		if amount.IsZero() {
			continue
		}
		splits = append(splits, models.CreateSplitRequest{
			AccountGUID: e.AccountGUID,
			Memo:        "Purchase " + e.Description,
			Amount:      amount,
		})
	}
	splits = append(splits, models.CreateSplitRequest{
		AccountGUID: credit.GUID,
		Memo:        desc,
		Amount:      total.Neg(),
	})

	return models.CreateTransactionRequest{
		PostDate:    order.DateOpened,
		Description: desc,
		Splits:      splits,
	}, nil
}

func vendorNames(tx *store.Tx) (map[string]string, error) {
	vendors, err := tx.Vendors()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(vendors))
	for _, v := range vendors {
		names[v.GUID] = v.Name
	}
	return names, nil
}

// sortOrders orders purchase orders newest first.
func sortOrders(orders []*models.PurchaseOrder) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].DateOpened != orders[j].DateOpened {
			return orders[i].DateOpened > orders[j].DateOpened
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}

// viewStatus maps an order status to the list status.
func viewStatus(status models.OrderStatus) string {
	if status == models.OrderApproved {
		return "completed"
	}
	return "pending"
}

func orderView(order *models.PurchaseOrder, vendorName string) *models.PurchaseOrderView {
	items := make([]models.OrderItemView, 0, len(order.Entries))
	for _, e := range order.Entries {
		items = append(items, models.OrderItemView{
			Name:     e.Description,
			Quantity: e.Quantity,
			Price:    e.Price,
			Total:    e.Total(),
		})
	}

	return &models.PurchaseOrderView{
		ID:              order.GUID,
		OrderNumber:     order.ID,
		Supplier:        vendorName,
		VendorGUID:      order.VendorGUID,
		Amount:          order.Total(),
		Date:            order.DateOpened,
		Status:          viewStatus(order.Status),
		Items:           items,
		TransactionGUID: order.TransactionGUID,
	}
}

// orderTotals returns the number of orders and their summed totals per
// vendor GUID.
func orderTotals(orders []*models.PurchaseOrder) (map[string]int, map[string]decimal.Decimal) {
	counts := make(map[string]int)
	totals := make(map[string]decimal.Decimal)
	for _, o := range orders {
		counts[o.VendorGUID]++
		totals[o.VendorGUID] = totals[o.VendorGUID].Add(o.Total())
	}
	return counts, totals
}
