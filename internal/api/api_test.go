package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pigeonworks-llc/gnucash-lite/internal/ledger"
	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
	"github.com/pigeonworks-llc/gnucash-lite/internal/store"
)

type testClient struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func setupTestServer(t *testing.T, token string) *testClient {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})

	now := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	svc := ledger.NewService(st, ledger.DefaultConfig(), ledger.WithClock(func() time.Time { return now }))
	_, err = svc.Seed(ledger.DefaultChart())
	require.NoError(t, err)

	server := httptest.NewServer(NewRouter(svc, RouterConfig{Token: token, Quiet: true}))
	t.Cleanup(server.Close)

	return &testClient{t: t, server: server, token: token}
}

// do sends body as JSON and decodes the response into out when it is not nil.
func (c *testClient) do(method, path string, body, out any) *http.Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out), "%s %s", method, path)
	}
	return resp
}

func (c *testClient) accountByCode(code string) string {
	c.t.Helper()

	var accounts []models.Account
	resp := c.do(http.MethodGet, "/api/accounts", nil, &accounts)
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
	for _, a := range accounts {
		if a.CodeOrEmpty() == code {
			return a.GUID
		}
	}
	c.t.Fatalf("no account with code %s", code)
	return ""
}

func (c *testClient) transfer(date, debit, credit string, value float64) *http.Response {
	c.t.Helper()

	return c.do(http.MethodPost, "/api/transactions", map[string]any{
		"post_date":   date,
		"description": "Transfer",
		"splits": []map[string]any{
			{"account_guid": c.accountByCode(debit), "amount": value},
			{"account_guid": c.accountByCode(credit), "amount": -value},
		},
	}, nil)
}

func TestHealth(t *testing.T) {
	c := setupTestServer(t, "")

	var body map[string]string
	resp := c.do(http.MethodGet, "/health", nil, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthMiddleware(t *testing.T) {
	c := setupTestServer(t, "secret")

	var errResp ErrorResponse
	c.token = ""
	resp := c.do(http.MethodGet, "/api/accounts", nil, &errResp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, errResp.Code)
	assert.NotEmpty(t, errResp.Message)

	c.token = "wrong"
	resp = c.do(http.MethodGet, "/api/accounts", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	c.token = "secret"
	resp = c.do(http.MethodGet, "/api/accounts", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	c.token = ""
	for _, path := range []string{"/health", "/api/health"} {
		var body map[string]string
		resp = c.do(http.MethodGet, path, nil, &body)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "ok", body["status"], path)
	}
}

func TestCORSPreflight(t *testing.T) {
	c := setupTestServer(t, "")

	req, err := http.NewRequest(http.MethodOptions, c.server.URL+"/api/accounts", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAccountEndpoints(t *testing.T) {
	c := setupTestServer(t, "")

	var tree []models.AccountNode
	resp := c.do(http.MethodGet, "/api/accounts/tree", nil, &tree)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, tree, 5)

	var created models.Account
	resp = c.do(http.MethodPost, "/api/accounts", map[string]any{
		"name":         "Petty cash",
		"account_type": "ASSET",
		"code":         "1009",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Petty cash", created.Name)

	var errResp ErrorResponse
	resp = c.do(http.MethodPost, "/api/accounts", map[string]any{
		"name":         "Duplicate",
		"account_type": "ASSET",
		"code":         "1009",
	}, &errResp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, http.StatusConflict, errResp.Code)

	var renamed models.Account
	resp = c.do(http.MethodPut, "/api/accounts/"+created.GUID, map[string]any{"name": "Till"}, &renamed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Till", renamed.Name)

	resp = c.do(http.MethodGet, "/api/accounts/does-not-exist", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, errResp.Message, "not found")

	require.Equal(t, http.StatusCreated, c.transfer("2025-03-01", "1009", "4001", 250).StatusCode)

	var count map[string]any
	resp = c.do(http.MethodGet, "/api/accounts/"+created.GUID+"/transaction-count", nil, &count)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, count["count"])

	var balance models.AccountBalance
	resp = c.do(http.MethodGet, "/api/accounts/"+created.GUID+"/balance?date=2025-03-01", nil, &balance)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decimal.NewFromInt(250).Equal(balance.Balance))

	resp = c.do(http.MethodGet, "/api/accounts/"+created.GUID+"/balance?date=03-01", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var txns []models.Transaction
	resp = c.do(http.MethodGet, "/api/accounts/"+created.GUID+"/transactions", nil, &txns)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, txns, 1)

	resp = c.do(http.MethodDelete, "/api/accounts/"+created.GUID, nil, &errResp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var quick models.Transaction
	resp = c.do(http.MethodPost, "/api/accounts/"+created.GUID+"/quick-entry", map[string]any{
		"post_date":             "2025-03-02",
		"description":           "Spend",
		"amount":                -50,
		"opposite_account_guid": c.accountByCode("6602"),
	}, &quick)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, quick.Splits, 2)
	assert.True(t, decimal.NewFromInt(-50).Equal(quick.Splits[0].Amount))

	var empty models.Account
	resp = c.do(http.MethodPost, "/api/accounts", map[string]any{"name": "Unused", "account_type": "INCOME"}, &empty)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = c.do(http.MethodDelete, "/api/accounts/"+empty.GUID, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestTransactionEndpoints(t *testing.T) {
	c := setupTestServer(t, "")
	cash := c.accountByCode("1001")
	sales := c.accountByCode("6001")

	var errResp ErrorResponse
	resp := c.do(http.MethodPost, "/api/transactions", map[string]any{
		"post_date":   "2025-03-02",
		"description": "Broken",
		"splits": []map[string]any{
			{"account_guid": cash, "amount": 100},
			{"account_guid": sales, "amount": -90},
		},
	}, &errResp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errResp.Message, "not balanced")

	var check models.BalanceCheck
	resp = c.do(http.MethodPost, "/api/transactions/validate", map[string]any{
		"splits": []map[string]any{
			{"account_guid": cash, "amount": 100},
			{"account_guid": sales, "amount": -90},
		},
	}, &check)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, check.IsBalanced)
	assert.True(t, decimal.NewFromInt(10).Equal(check.Difference))

	resp = c.do(http.MethodPost, "/api/transactions", map[string]any{
		"post_date":   "2025-03-02",
		"description": "Cash sale",
		"splits": []map[string]any{
			{"account_guid": cash, "amount": 100.5},
			{"account_guid": sales, "amount": -100.5},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Amounts travel as JSON numbers.
	raw, err := http.Get(c.server.URL + "/api/transactions?start_date=2025-03-01&end_date=2025-03-31")
	require.NoError(t, err)
	defer raw.Body.Close()
	data, err := io.ReadAll(raw.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":100.5`)
	assert.Contains(t, string(data), `"value_num":1005,"value_denom":10,`)

	var txns []models.Transaction
	require.NoError(t, json.Unmarshal(data, &txns))
	require.Len(t, txns, 1)

	var reconciled models.Transaction
	resp = c.do(http.MethodPut, "/api/transactions/"+txns[0].GUID+"/splits/"+txns[0].Splits[0].GUID+"/reconcile",
		map[string]string{"state": "y"}, &reconciled)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.ReconcileYes, reconciled.Splits[0].ReconcileState)

	var got models.Transaction
	resp = c.do(http.MethodGet, "/api/transactions/"+txns[0].GUID, nil, &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.ReconcileYes, got.Splits[0].ReconcileState)

	resp = c.do(http.MethodGet, "/api/transactions?start_date=yesterday", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, c.server.URL+"/api/transactions", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	bad, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestPurchaseOrderEndpoints(t *testing.T) {
	c := setupTestServer(t, "")
	stock := c.accountByCode("1405")

	var vendor models.VendorView
	resp := c.do(http.MethodPost, "/api/vendors", map[string]any{"name": "Acme", "rating": 4}, &vendor)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "SUP-001", vendor.Code)

	for _, date := range []string{"2025-03-01", "2025-03-02", "2025-03-03"} {
		resp = c.do(http.MethodPost, "/api/purchase-orders", map[string]any{
			"vendor_guid": vendor.ID,
			"date_opened": date,
			"entries": []map[string]any{
				{"description": "Widgets", "quantity": 4, "price": 2.5, "account_guid": stock},
			},
		}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var orders []models.PurchaseOrderView
	resp = c.do(http.MethodGet, "/api/purchase-orders?page=1&per_page=2", nil, &orders)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "3", resp.Header.Get("X-Total-Count"))
	require.Len(t, orders, 2)
	assert.Equal(t, "pending", orders[0].Status)
	assert.Equal(t, "Acme", orders[0].Supplier)

	resp = c.do(http.MethodGet, "/api/purchase-orders?page=0", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var result models.ApprovalResult
	resp = c.do(http.MethodPost, "/api/purchase-orders/"+orders[0].ID+"/approve", nil, &result)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", result.Order.Status)
	require.NotNil(t, result.Transaction)
	assert.Len(t, result.Transaction.Splits, 2)

	var errResp ErrorResponse
	resp = c.do(http.MethodPost, "/api/purchase-orders/"+orders[0].ID+"/approve", nil, &errResp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, http.StatusConflict, errResp.Code)

	var order models.PurchaseOrderView
	resp = c.do(http.MethodGet, "/api/purchase-orders/"+orders[0].ID, nil, &order)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", order.Status)

	var history []models.VendorHistoryItem
	resp = c.do(http.MethodGet, "/api/vendors/"+vendor.ID+"/transactions", nil, &history)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, history, 3)

	var vendors []models.VendorView
	resp = c.do(http.MethodGet, "/api/vendors", nil, &vendors)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, vendors, 1)
	assert.Equal(t, 3, vendors[0].TotalTransactions)
	assert.True(t, decimal.NewFromInt(30).Equal(vendors[0].TotalAmount))

	var updated models.VendorView
	resp = c.do(http.MethodPut, "/api/vendors/"+vendor.ID, map[string]any{"phone": "010-1234"}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "010-1234", updated.Phone)
	assert.Equal(t, 4, updated.Rating)

	resp = c.do(http.MethodGet, "/api/vendors/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReportEndpoints(t *testing.T) {
	c := setupTestServer(t, "")
	require.Equal(t, http.StatusCreated, c.transfer("2025-03-01", "1001", "4001", 1000).StatusCode)
	require.Equal(t, http.StatusCreated, c.transfer("2025-03-05", "1002", "6001", 400).StatusCode)

	var bs models.BalanceSheet
	resp := c.do(http.MethodGet, "/api/reports/balance-sheet", nil, &bs)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2025-03-15", bs.Date)
	assert.True(t, decimal.NewFromInt(1400).Equal(bs.TotalAssets))
	assert.True(t, bs.IsBalanced)

	var is models.IncomeStatement
	resp = c.do(http.MethodGet, "/api/reports/income-statement?start_date=2025-03-01&end_date=2025-03-31", nil, &is)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decimal.NewFromInt(400).Equal(is.NetIncome))

	resp = c.do(http.MethodGet, "/api/reports/income-statement?start_date=2025-03-01", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var cf models.CashFlowStatement
	resp = c.do(http.MethodGet, "/api/reports/cash-flow?start_date=2025-03-01&end_date=2025-03-31", nil, &cf)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decimal.NewFromInt(1400).Equal(cf.EndBalance))
	assert.True(t, decimal.NewFromInt(1000).Equal(cf.Financing.Inflows))

	resp = c.do(http.MethodGet, "/api/reports/cash-flow", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var d models.Dashboard
	resp = c.do(http.MethodGet, "/api/reports/dashboard?date=2025-03-15", nil, &d)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decimal.NewFromInt(1400).Equal(d.CashAndEquivalents))
	assert.Len(t, d.CashFlowData, 6)
	assert.True(t, d.AccountingEquation.IsBalanced)
}
