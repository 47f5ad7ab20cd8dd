package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

func TestListTransactionsSendsRangeAndToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transactions", r.URL.Path)
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2025-01-31", r.URL.Query().Get("end_date"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"guid":"t1","post_date":"2025-01-15","description":"Sale","splits":[
			{"guid":"s1","account_guid":"a1","amount":12.5,"value_num":1250,"value_denom":100,"reconcile_state":"n"},
			{"guid":"s2","account_guid":"a2","amount":-12.5,"value_num":-1250,"value_denom":100,"reconcile_state":"n"}]}]`))
	}))
	defer server.Close()

	c := NewClient(ClientConfig{APIURL: server.URL, APIToken: "secret"})
	txns, err := c.ListTransactions("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	require.Len(t, txns[0].Splits, 2)
	assert.True(t, decimal.RequireFromString("12.5").Equal(txns[0].Splits[0].Amount))
}

func TestCreateAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req models.CreateAccountRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.AccountTypeAsset, req.AccountType)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Account{GUID: "new", Name: req.Name, AccountType: req.AccountType})
	}))
	defer server.Close()

	c := NewClient(ClientConfig{APIURL: server.URL})
	account, err := c.CreateAccount(models.CreateAccountRequest{Name: "Cash", AccountType: models.AccountTypeAsset})
	require.NoError(t, err)
	assert.Equal(t, "new", account.GUID)
}

func TestErrorResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/accounts":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"code":409,"message":"account code 1001 is already used"}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down\n"))
		}
	}))
	defer server.Close()

	c := NewClient(ClientConfig{APIURL: server.URL})

	_, err := c.ListAccounts()
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "account code 1001 is already used", apiErr.Message)

	_, err = c.BalanceSheet("2025-01-31")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream down", apiErr.Message)
}
