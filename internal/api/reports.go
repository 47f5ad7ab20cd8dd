package api

import (
	"net/http"

	"github.com/pigeonworks-llc/gnucash-lite/internal/ledger"
)

// ReportsHandler handles financial-statement endpoints.
type ReportsHandler struct {
	svc *ledger.Service
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(svc *ledger.Service) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// BalanceSheet handles GET /api/reports/balance-sheet.
// @Summary Get the balance sheet
// @Tags reports
// @Produce json
// @Param date query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} models.BalanceSheet
// @Failure 400 {object} ErrorResponse
// @Router /reports/balance-sheet [get]
// @Security BearerAuth
func (h *ReportsHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.BalanceSheet(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// IncomeStatement handles GET /api/reports/income-statement.
// @Summary Get the income statement
// @Tags reports
// @Produce json
// @Param start_date query string true "Period start (YYYY-MM-DD)"
// @Param end_date query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} models.IncomeStatement
// @Failure 400 {object} ErrorResponse
// @Router /reports/income-statement [get]
// @Security BearerAuth
func (h *ReportsHandler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.svc.IncomeStatement(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// CashFlow handles GET /api/reports/cash-flow.
// @Summary Get the cash-flow statement
// @Tags reports
// @Produce json
// @Param start_date query string true "Period start (YYYY-MM-DD)"
// @Param end_date query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} models.CashFlowStatement
// @Failure 400 {object} ErrorResponse
// @Router /reports/cash-flow [get]
// @Security BearerAuth
func (h *ReportsHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.svc.CashFlow(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Dashboard handles GET /api/reports/dashboard.
// @Summary Get the dashboard
// @Tags reports
// @Produce json
// @Param date query string false "Dashboard date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} models.Dashboard
// @Failure 400 {object} ErrorResponse
// @Router /reports/dashboard [get]
// @Security BearerAuth
func (h *ReportsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Dashboard(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
