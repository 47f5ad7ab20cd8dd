// Package pathutil provides centralized path management for exported Beancount files.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// PathResolver manages paths for Beancount files and the export history database.
type PathResolver struct {
	beancountRoot string
	databasePath  string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// BeancountRoot is the root directory for all exported files (e.g., ./beancount)
	BeancountRoot string
	// DatabasePath is the path to the SQLite export history database
	DatabasePath string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to {BeancountRoot}/.sync/export.db
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(config.BeancountRoot, ".sync", "export.db")
	}

	return &PathResolver{
		beancountRoot: config.BeancountRoot,
		databasePath:  dbPath,
	}
}

// GetBeancountRoot returns the Beancount root directory.
func (p *PathResolver) GetBeancountRoot() string {
	return p.beancountRoot
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetYearDir returns the directory path for a year.
// Example: ./beancount/2025
func (p *PathResolver) GetYearDir(year string) string {
	return filepath.Join(p.beancountRoot, year)
}

// GetMonthFilePath returns the file path for a month.
// yearMonth should be in YYYY-MM format.
// Example: ./beancount/2025/2025-03.beancount
func (p *PathResolver) GetMonthFilePath(yearMonth string) (string, error) {
	if _, err := time.Parse("2006-01", yearMonth); err != nil {
		return "", fmt.Errorf("invalid year-month format: %s. Expected YYYY-MM", yearMonth)
	}

	return filepath.Join(p.GetYearDir(yearMonth[:4]), yearMonth+".beancount"), nil
}

// MonthKey returns the YYYY-MM key of a YYYY-MM-DD date.
func MonthKey(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date format: %s. Expected YYYY-MM-DD", date)
	}
	return t.Format("2006-01"), nil
}

// EnsureParentDir ensures the parent directory of a file exists.
func (p *PathResolver) EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
