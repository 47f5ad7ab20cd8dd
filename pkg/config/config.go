// Package config provides configuration management for the ledger service
// and its CLI. It loads configuration from environment variables and .env
// files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig
	Ledger    LedgerConfig
	Client    ClientConfig
	Beancount BeancountConfig
	Debug     bool
}

// ServerConfig represents the HTTP server configuration.
type ServerConfig struct {
	Port        string
	DBPath      string
	APIToken    string
	CORSOrigins []string
	SeedChart   bool
}

// LedgerConfig holds the account codes the ledger rules depend on.
type LedgerConfig struct {
	PayableAccountCode  string
	CashAccountPrefixes []string
}

// ClientConfig represents how the CLI reaches the ledger API.
type ClientConfig struct {
	APIURL   string
	APIToken string
}

// BeancountConfig represents Beancount export configuration.
type BeancountConfig struct {
	Root        string
	DBPath      string
	Currency    string
	MappingPath string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	// Load .env file
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	port := getEnvOrDefault("PORT", "5000")
	if _, err := strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("invalid PORT: %s", port)
	}

	seed, err := parseBoolEnv("SEED_CHART", false)
	if err != nil {
		return nil, err
	}
	debug, err := parseBoolEnv("DEBUG", false)
	if err != nil {
		return nil, err
	}

	token := os.Getenv("API_TOKEN")
	root := getEnvOrDefault("BEANCOUNT_ROOT", "./beancount")

	config := &Config{
		Server: ServerConfig{
			Port:        port,
			DBPath:      getEnvOrDefault("DB_PATH", "./data/ledger.db"),
			APIToken:    token,
			CORSOrigins: splitList(getEnvOrDefault("CORS_ORIGINS", "*")),
			SeedChart:   seed,
		},
		Ledger: LedgerConfig{
			PayableAccountCode:  getEnvOrDefault("PAYABLE_ACCOUNT_CODE", "2202"),
			CashAccountPrefixes: splitList(getEnvOrDefault("CASH_ACCOUNT_PREFIXES", "1001,1002")),
		},
		Client: ClientConfig{
			APIURL:   strings.TrimRight(getEnvOrDefault("LEDGER_API_URL", "http://localhost:5000"), "/"),
			APIToken: token,
		},
		Beancount: BeancountConfig{
			Root:        root,
			DBPath:      getEnvOrDefault("BEANCOUNT_DB_PATH", filepath.Join(root, ".sync", "export.db")),
			Currency:    strings.ToUpper(getEnvOrDefault("BEANCOUNT_CURRENCY", "CNY")),
			MappingPath: getEnvOrDefault("ACCOUNT_MAPPING_PATH", "config/account-mapping.yaml"),
		},
		Debug: debug,
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set and reports every missing one.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "server":
			switch path[1] {
			case "port":
				value = c.Server.Port
			case "dbPath":
				value = c.Server.DBPath
			case "apiToken":
				value = c.Server.APIToken
			}
		case "ledger":
			switch path[1] {
			case "payableAccountCode":
				value = c.Ledger.PayableAccountCode
			case "cashAccountPrefixes":
				value = strings.Join(c.Ledger.CashAccountPrefixes, ",")
			}
		case "client":
			switch path[1] {
			case "apiUrl":
				value = c.Client.APIURL
			case "apiToken":
				value = c.Client.APIToken
			}
		case "beancount":
			switch path[1] {
			case "root":
				value = c.Beancount.Root
			case "dbPath":
				value = c.Beancount.DBPath
			case "currency":
				value = c.Beancount.Currency
			case "mappingPath":
				value = c.Beancount.MappingPath
			}
		}

		if value == "" {
			missing = append(missing, strings.Join(path, "."))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseBoolEnv parses a bool from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}

	return parsed, nil
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
