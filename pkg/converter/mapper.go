// Package converter provides conversion from ledger transactions to Beancount format.
package converter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// AccountMapping maps one ledger account code to a Beancount account name.
type AccountMapping struct {
	Code      string `yaml:"code"`
	Name      string `yaml:"name"`
	Beancount string `yaml:"beancount"`
}

// AccountMappingConfig represents the complete account mapping configuration.
type AccountMappingConfig struct {
	Assets      []AccountMapping `yaml:"assets"`
	Liabilities []AccountMapping `yaml:"liabilities"`
	Equity      []AccountMapping `yaml:"equity"`
	Income      []AccountMapping `yaml:"income"`
	Expenses    []AccountMapping `yaml:"expenses"`
}

// Mapper maps ledger accounts to Beancount account names.
type Mapper struct {
	codeToBean map[string]string
}

// Beancount root account of each ledger account type.
var rootNames = map[models.AccountType]string{
	models.AccountTypeAsset:     "Assets",
	models.AccountTypeLiability: "Liabilities",
	models.AccountTypeEquity:    "Equity",
	models.AccountTypeIncome:    "Income",
	models.AccountTypeExpense:   "Expenses",
}

// NewMapper creates a new Mapper from a YAML configuration file.
func NewMapper(configPath string) (*Mapper, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseMapper(data)
}

// ParseMapper creates a new Mapper from YAML content.
func ParseMapper(data []byte) (*Mapper, error) {
	var config AccountMappingConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	m := &Mapper{codeToBean: make(map[string]string)}
	for _, group := range [][]AccountMapping{config.Assets, config.Liabilities, config.Equity, config.Income, config.Expenses} {
		for _, mapping := range group {
			if mapping.Code == "" || mapping.Beancount == "" {
				return nil, fmt.Errorf("mapping %q needs both code and beancount", mapping.Name)
			}
			if _, dup := m.codeToBean[mapping.Code]; dup {
				return nil, fmt.Errorf("account code %s is mapped twice", mapping.Code)
			}
			m.codeToBean[mapping.Code] = mapping.Beancount
		}
	}

	return m, nil
}

// BeancountAccount returns the Beancount account name for a ledger account.
// Unmapped accounts fall back to <Root>:<Code>, or <Root>:Unmapped without a code.
func (m *Mapper) BeancountAccount(account models.Account) string {
	code := account.CodeOrEmpty()
	if name, ok := m.codeToBean[code]; ok && code != "" {
		return name
	}

	root := rootNames[account.AccountType]
	if root == "" {
		root = "Equity"
	}
	if code == "" {
		return root + ":Unmapped"
	}
	return root + ":" + code
}

// HasMapping checks if a mapping exists for an account code.
func (m *Mapper) HasMapping(code string) bool {
	_, ok := m.codeToBean[code]
	return ok
}
