package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pigeonworks-llc/gnucash-lite/internal/ledger"
	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// AccountsHandler handles chart-of-accounts endpoints.
type AccountsHandler struct {
	svc *ledger.Service
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(svc *ledger.Service) *AccountsHandler {
	return &AccountsHandler{svc: svc}
}

// List handles GET /api/accounts.
// @Summary List accounts
// @Description Get every account of the books ordered by code
// @Tags accounts
// @Produce json
// @Success 200 {array} models.Account
// @Failure 500 {object} ErrorResponse
// @Router /accounts [get]
// @Security BearerAuth
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// Create handles POST /api/accounts.
// @Summary Create an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body models.CreateAccountRequest true "Account to create"
// @Success 201 {object} models.Account
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /accounts [post]
// @Security BearerAuth
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if !decode(w, r, &req) {
		return
	}

	account, err := h.svc.CreateAccount(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// Tree handles GET /api/accounts/tree.
// @Summary Get the account tree
// @Description Get the accounts as a forest with raw-sign balances rolled up to parents
// @Tags accounts
// @Produce json
// @Success 200 {array} models.AccountNode
// @Router /accounts/tree [get]
// @Security BearerAuth
func (h *AccountsHandler) Tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.svc.AccountTree(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// Get handles GET /api/accounts/{guid}.
func (h *AccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.svc.GetAccount(chi.URLParam(r, "guid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// Update handles PUT /api/accounts/{guid}.
func (h *AccountsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAccountRequest
	if !decode(w, r, &req) {
		return
	}

	account, err := h.svc.RenameAccount(chi.URLParam(r, "guid"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// Delete handles DELETE /api/accounts/{guid}.
func (h *AccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAccount(chi.URLParam(r, "guid")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TransactionCount handles GET /api/accounts/{guid}/transaction-count.
func (h *AccountsHandler) TransactionCount(w http.ResponseWriter, r *http.Request) {
	guid := chi.URLParam(r, "guid")
	count, err := h.svc.TransactionCount(guid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"account_guid": guid,
		"count":        count,
	})
}

// Balance handles GET /api/accounts/{guid}/balance.
// @Summary Get an account balance
// @Tags accounts
// @Produce json
// @Param guid path string true "Account GUID"
// @Param date query string false "Balance date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} models.AccountBalance
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{guid}/balance [get]
// @Security BearerAuth
func (h *AccountsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.svc.AccountBalance(chi.URLParam(r, "guid"), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// Transactions handles GET /api/accounts/{guid}/transactions.
func (h *AccountsHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.svc.AccountTransactions(chi.URLParam(r, "guid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

// QuickEntry handles POST /api/accounts/{guid}/quick-entry.
// @Summary Post a two-split entry from an account register
// @Tags accounts
// @Accept json
// @Produce json
// @Param guid path string true "Account GUID"
// @Param entry body models.QuickEntryRequest true "Entry to post"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{guid}/quick-entry [post]
// @Security BearerAuth
func (h *AccountsHandler) QuickEntry(w http.ResponseWriter, r *http.Request) {
	var req models.QuickEntryRequest
	if !decode(w, r, &req) {
		return
	}

	txn, err := h.svc.QuickEntry(chi.URLParam(r, "guid"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}
