// Package ledger implements the bookkeeping rules on top of the store:
// the chart of accounts, balanced journal entries, purchase approval and
// the financial statements.
package ledger

import (
	"strings"
	"time"

	"github.com/pigeonworks-llc/gnucash-lite/internal/store"
)

// DateLayout is the format of every date the ledger accepts.
const DateLayout = "2006-01-02"

// Config holds the account codes the ledger rules depend on.
type Config struct {
	// PayableAccountCode is the account credited when a purchase order
	// without its own credit account is approved.
	PayableAccountCode string

	// CashAccountPrefixes select the ASSET accounts counted as cash.
	CashAccountPrefixes []string
}

// DefaultConfig returns the codes of the default chart of accounts.
func DefaultConfig() Config {
	return Config{
		PayableAccountCode:  "2202",
		CashAccountPrefixes: []string{"1001", "1002"},
	}
}

// Service applies the ledger rules to the records of a store.
type Service struct {
	store *store.Store
	cfg   Config
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new Service.
func NewService(st *store.Store, cfg Config, opts ...Option) *Service {
	if cfg.PayableAccountCode == "" {
		cfg.PayableAccountCode = DefaultConfig().PayableAccountCode
	}
	if len(cfg.CashAccountPrefixes) == 0 {
		cfg.CashAccountPrefixes = DefaultConfig().CashAccountPrefixes
	}

	s := &Service{store: st, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() string {
	return s.now().Format(DateLayout)
}

// checkDate validates a YYYY-MM-DD date. name labels the field in the
// error message.
func checkDate(name, value string) error {
	if _, err := time.Parse(DateLayout, value); err != nil {
		return invalidf("%s must be a date in YYYY-MM-DD format, got %q", name, value)
	}
	return nil
}

// dateOrToday validates value, or returns today when it is empty.
func (s *Service) dateOrToday(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.today(), nil
	}
	if err := checkDate(name, value); err != nil {
		return "", err
	}
	return value, nil
}

// period validates a required start and end date pair.
func period(start, end string) error {
	if start == "" || end == "" {
		return invalidf("start_date and end_date are required")
	}
	if err := checkDate("start_date", start); err != nil {
		return err
	}
	if err := checkDate("end_date", end); err != nil {
		return err
	}
	if start > end {
		return invalidf("start_date %s is after end_date %s", start, end)
	}
	return nil
}
