// Package api serves the ledger over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pigeonworks-llc/gnucash-lite/internal/ledger"
)

// RouterConfig configures the HTTP router.
type RouterConfig struct {
	// Token is the bearer token required on /api. Empty disables auth.
	Token string

	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string

	// Quiet disables request logging.
	Quiet bool
}

// health handles GET /health and GET /api/health. It needs no token.
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NewRouter builds the chi router with every API route mounted.
func NewRouter(svc *ledger.Service, cfg RouterConfig) http.Handler {
	accountsHandler := NewAccountsHandler(svc)
	transactionsHandler := NewTransactionsHandler(svc)
	purchaseOrdersHandler := NewPurchaseOrdersHandler(svc)
	vendorsHandler := NewVendorsHandler(svc)
	reportsHandler := NewReportsHandler(svc)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if !cfg.Quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Total-Count"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.Token))

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", accountsHandler.List)
				r.Post("/", accountsHandler.Create)
				r.Get("/tree", accountsHandler.Tree)
				r.Get("/{guid}", accountsHandler.Get)
				r.Put("/{guid}", accountsHandler.Update)
				r.Delete("/{guid}", accountsHandler.Delete)
				r.Get("/{guid}/transaction-count", accountsHandler.TransactionCount)
				r.Get("/{guid}/balance", accountsHandler.Balance)
				r.Get("/{guid}/transactions", accountsHandler.Transactions)
				r.Post("/{guid}/quick-entry", accountsHandler.QuickEntry)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", transactionsHandler.List)
				r.Post("/", transactionsHandler.Create)
				r.Post("/validate", transactionsHandler.Validate)
				r.Get("/{guid}", transactionsHandler.Get)
				r.Put("/{guid}/splits/{split}/reconcile", transactionsHandler.Reconcile)
			})

			r.Route("/purchase-orders", func(r chi.Router) {
				r.Get("/", purchaseOrdersHandler.List)
				r.Post("/", purchaseOrdersHandler.Create)
				r.Get("/{guid}", purchaseOrdersHandler.Get)
				r.Post("/{guid}/approve", purchaseOrdersHandler.Approve)
			})

			r.Route("/vendors", func(r chi.Router) {
				r.Get("/", vendorsHandler.List)
				r.Post("/", vendorsHandler.Create)
				r.Get("/{guid}", vendorsHandler.Get)
				r.Put("/{guid}", vendorsHandler.Update)
				r.Get("/{guid}/transactions", vendorsHandler.History)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/balance-sheet", reportsHandler.BalanceSheet)
				r.Get("/income-statement", reportsHandler.IncomeStatement)
				r.Get("/cash-flow", reportsHandler.CashFlow)
				r.Get("/dashboard", reportsHandler.Dashboard)
			})
		})
	})

	r.Get("/health", health)

	return r
}
