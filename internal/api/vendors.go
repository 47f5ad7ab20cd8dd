package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pigeonworks-llc/gnucash-lite/internal/ledger"
	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// VendorsHandler handles supplier-directory endpoints.
type VendorsHandler struct {
	svc *ledger.Service
}

// NewVendorsHandler creates a new VendorsHandler.
func NewVendorsHandler(svc *ledger.Service) *VendorsHandler {
	return &VendorsHandler{svc: svc}
}

// List handles GET /api/vendors.
// @Summary List vendors
// @Tags vendors
// @Produce json
// @Success 200 {array} models.VendorView
// @Router /vendors [get]
// @Security BearerAuth
func (h *VendorsHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.svc.ListVendors()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vendors)
}

// Create handles POST /api/vendors.
// @Summary Create a vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Param vendor body models.VendorRequest true "Vendor to create"
// @Success 201 {object} models.VendorView
// @Failure 400 {object} ErrorResponse
// @Router /vendors [post]
// @Security BearerAuth
func (h *VendorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.VendorRequest
	if !decode(w, r, &req) {
		return
	}

	vendor, err := h.svc.CreateVendor(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, vendor)
}

// Get handles GET /api/vendors/{guid}.
func (h *VendorsHandler) Get(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.svc.GetVendor(chi.URLParam(r, "guid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vendor)
}

// Update handles PUT /api/vendors/{guid}.
// @Summary Update a vendor
// @Tags vendors
// @Accept json
// @Produce json
// @Param guid path string true "Vendor GUID"
// @Param vendor body models.VendorRequest true "Fields to change"
// @Success 200 {object} models.VendorView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /vendors/{guid} [put]
// @Security BearerAuth
func (h *VendorsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.VendorRequest
	if !decode(w, r, &req) {
		return
	}

	vendor, err := h.svc.UpdateVendor(chi.URLParam(r, "guid"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vendor)
}

// History handles GET /api/vendors/{guid}/transactions.
func (h *VendorsHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.svc.VendorHistory(chi.URLParam(r, "guid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
