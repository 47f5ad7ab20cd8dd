package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pigeonworks-llc/gnucash-lite/internal/ledger"
	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// TransactionsHandler handles journal-entry endpoints.
type TransactionsHandler struct {
	svc *ledger.Service
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(svc *ledger.Service) *TransactionsHandler {
	return &TransactionsHandler{svc: svc}
}

// List handles GET /api/transactions.
// @Summary List transactions
// @Description Get transactions posted within an optional date range, newest first
// @Tags transactions
// @Produce json
// @Param start_date query string false "First post date (YYYY-MM-DD)"
// @Param end_date query string false "Last post date (YYYY-MM-DD)"
// @Success 200 {array} models.Transaction
// @Failure 400 {object} ErrorResponse
// @Router /transactions [get]
// @Security BearerAuth
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	txns, err := h.svc.ListTransactions(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

// Create handles POST /api/transactions.
// @Summary Post a transaction
// @Description Post a balanced journal entry of at least two splits
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body models.CreateTransactionRequest true "Transaction to post"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /transactions [post]
// @Security BearerAuth
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if !decode(w, r, &req) {
		return
	}

	txn, err := h.svc.CreateTransaction(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

// Validate handles POST /api/transactions/validate.
// @Summary Check whether splits balance
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body models.CreateTransactionRequest true "Splits to check"
// @Success 200 {object} models.BalanceCheck
// @Router /transactions/validate [post]
// @Security BearerAuth
func (h *TransactionsHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, ledger.CheckBalance(req.Splits))
}

// Get handles GET /api/transactions/{guid}.
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	txn, err := h.svc.GetTransaction(chi.URLParam(r, "guid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

// Reconcile handles PUT /api/transactions/{guid}/splits/{split}/reconcile.
func (h *TransactionsHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req models.ReconcileRequest
	if !decode(w, r, &req) {
		return
	}

	txn, err := h.svc.SetReconcileState(chi.URLParam(r, "guid"), chi.URLParam(r, "split"), req.State)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}
