package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "DB_PATH", "API_TOKEN", "CORS_ORIGINS", "SEED_CHART",
	"PAYABLE_ACCOUNT_CODE", "CASH_ACCOUNT_PREFIXES", "LEDGER_API_URL",
	"BEANCOUNT_ROOT", "BEANCOUNT_DB_PATH", "BEANCOUNT_CURRENCY", "ACCOUNT_MAPPING_PATH", "DEBUG",
}

// clearEnv unsets every key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "./data/ledger.db", cfg.Server.DBPath)
	assert.Empty(t, cfg.Server.APIToken)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Server.SeedChart)
	assert.Equal(t, "2202", cfg.Ledger.PayableAccountCode)
	assert.Equal(t, []string{"1001", "1002"}, cfg.Ledger.CashAccountPrefixes)
	assert.Equal(t, "http://localhost:5000", cfg.Client.APIURL)
	assert.Equal(t, "./beancount", cfg.Beancount.Root)
	assert.Equal(t, filepath.Join("beancount", ".sync", "export.db"), cfg.Beancount.DBPath)
	assert.Equal(t, "CNY", cfg.Beancount.Currency)
	assert.Equal(t, "config/account-mapping.yaml", cfg.Beancount.MappingPath)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "PORT=8081\nAPI_TOKEN=secret\nCASH_ACCOUNT_PREFIXES=1001, 1012 ,\nLEDGER_API_URL=http://ledger:8081/\nBEANCOUNT_CURRENCY=usd\nDEBUG=true\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Server.APIToken)
	assert.Equal(t, "secret", cfg.Client.APIToken)
	assert.Equal(t, []string{"1001", "1012"}, cfg.Ledger.CashAccountPrefixes)
	assert.Equal(t, "http://ledger:8081", cfg.Client.APIURL)
	assert.Equal(t, "USD", cfg.Beancount.Currency)
	assert.True(t, cfg.Debug)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "http")
	_, err := Load(writeEnv(t, ""))
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("DEBUG", "maybe")
	_, err = Load(writeEnv(t, ""))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateReportsAllMissing(t *testing.T) {
	cfg := &Config{Client: ClientConfig{APIURL: "http://localhost:5000"}}

	err := cfg.Validate(
		[]string{"client", "apiUrl"},
		[]string{"client", "apiToken"},
		[]string{"server", "dbPath"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client.apiToken")
	assert.Contains(t, err.Error(), "server.dbPath")
	assert.NotContains(t, err.Error(), "client.apiUrl")

	assert.NoError(t, cfg.Validate([]string{"client", "apiUrl"}))
}
