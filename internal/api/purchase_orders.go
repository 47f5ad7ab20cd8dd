package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pigeonworks-llc/gnucash-lite/internal/ledger"
	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// PurchaseOrdersHandler handles purchase-order endpoints.
type PurchaseOrdersHandler struct {
	svc *ledger.Service
}

// NewPurchaseOrdersHandler creates a new PurchaseOrdersHandler.
func NewPurchaseOrdersHandler(svc *ledger.Service) *PurchaseOrdersHandler {
	return &PurchaseOrdersHandler{svc: svc}
}

// queryInt parses an optional positive integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// List handles GET /api/purchase-orders. The total number of orders is
// returned in the X-Total-Count header.
// @Summary List purchase orders
// @Tags purchase-orders
// @Produce json
// @Param page query int false "Page number, from 1"
// @Param per_page query int false "Orders per page"
// @Success 200 {array} models.PurchaseOrderView
// @Header 200 {int} X-Total-Count "Total number of orders"
// @Failure 400 {object} ErrorResponse
// @Router /purchase-orders [get]
// @Security BearerAuth
func (h *PurchaseOrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(r, "page", 1)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Invalid page")
		return
	}
	perPage, ok := queryInt(r, "per_page", ledger.DefaultPerPage)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "Invalid per_page")
		return
	}

	orders, total, err := h.svc.ListPurchaseOrders(page, perPage)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	writeJSON(w, http.StatusOK, orders)
}

// Create handles POST /api/purchase-orders.
// @Summary Create a purchase order
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param order body models.CreatePurchaseOrderRequest true "Order to create"
// @Success 201 {object} models.PurchaseOrderView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /purchase-orders [post]
// @Security BearerAuth
func (h *PurchaseOrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePurchaseOrderRequest
	if !decode(w, r, &req) {
		return
	}

	order, err := h.svc.CreatePurchaseOrder(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// Get handles GET /api/purchase-orders/{guid}.
func (h *PurchaseOrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.GetPurchaseOrder(chi.URLParam(r, "guid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Approve handles POST /api/purchase-orders/{guid}/approve.
// @Summary Approve a purchase order
// @Description Approve an open order and post its payable transaction
// @Tags purchase-orders
// @Produce json
// @Param guid path string true "Order GUID"
// @Success 200 {object} models.ApprovalResult
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /purchase-orders/{guid}/approve [post]
// @Security BearerAuth
func (h *PurchaseOrdersHandler) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ApprovePurchaseOrder(chi.URLParam(r, "guid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
