// Package client provides an HTTP client for the ledger API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// ClientConfig represents the configuration for the ledger API client.
type ClientConfig struct {
	APIURL   string
	APIToken string
	Timeout  time.Duration // Default: 30 seconds
}

// Client is a ledger API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a new ledger API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: config.APIURL,
		token:   config.APIToken,
	}
}

// APIError is an error answered by the ledger API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ledger API error (status %d): %s", e.StatusCode, e.Message)
}

// ListAccounts lists every account.
func (c *Client) ListAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := c.do(http.MethodGet, "/api/accounts", nil, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CreateAccount creates an account.
func (c *Client) CreateAccount(req models.CreateAccountRequest) (*models.Account, error) {
	var account models.Account
	if err := c.do(http.MethodPost, "/api/accounts", nil, req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// ListTransactions lists the transactions posted in [dateFrom, dateTo].
// Empty bounds are open.
func (c *Client) ListTransactions(dateFrom, dateTo string) ([]models.Transaction, error) {
	query := url.Values{}
	if dateFrom != "" {
		query.Set("start_date", dateFrom)
	}
	if dateTo != "" {
		query.Set("end_date", dateTo)
	}

	var txns []models.Transaction
	if err := c.do(http.MethodGet, "/api/transactions", query, nil, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// BalanceSheet fetches the balance sheet at date (today when empty).
func (c *Client) BalanceSheet(date string) (*models.BalanceSheet, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}

	var report models.BalanceSheet
	if err := c.do(http.MethodGet, "/api/reports/balance-sheet", query, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// do sends a request and decodes a JSON response into out.
func (c *Client) do(method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint = fmt.Sprintf("%s?%s", endpoint, query.Encode())
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.parseError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseError parses an error response from the ledger API.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "failed to read error response"}
	}

	var errResp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message == "" {
		return &APIError{StatusCode: resp.StatusCode, Message: string(bytes.TrimSpace(body))}
	}

	return &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
}
