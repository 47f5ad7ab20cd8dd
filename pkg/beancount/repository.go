package beancount

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pigeonworks-llc/gnucash-lite/pkg/pathutil"
)

// Repository defines the interface for Beancount file operations.
type Repository interface {
	// AppendTransactions appends formatted transactions to a monthly file
	AppendTransactions(yearMonth string, transactions []string) error

	// ReadMonthFile reads the content of a monthly file
	ReadMonthFile(yearMonth string) (string, error)

	// GetMonthFilesInYear gets all monthly files in a year
	GetMonthFilesInYear(year string) ([]string, error)

	// EnsureMonthFile ensures a monthly file exists with header
	EnsureMonthFile(yearMonth string) error
}

var _ Repository = (*FileSystemRepository)(nil)

// FileSystemRepository is a file system implementation of Repository.
type FileSystemRepository struct {
	pathResolver *pathutil.PathResolver
	now          func() time.Time
}

// NewFileSystemRepository creates a new FileSystemRepository.
func NewFileSystemRepository(pathResolver *pathutil.PathResolver) *FileSystemRepository {
	return &FileSystemRepository{
		pathResolver: pathResolver,
		now:          time.Now,
	}
}

// AppendTransactions appends formatted transactions to a monthly file,
// each followed by a blank line. It creates the file if it doesn't exist.
func (r *FileSystemRepository) AppendTransactions(yearMonth string, transactions []string) error {
	filePath, err := r.pathResolver.GetMonthFilePath(yearMonth)
	if err != nil {
		return fmt.Errorf("failed to get month file path: %w", err)
	}

	if err := r.EnsureMonthFile(yearMonth); err != nil {
		return fmt.Errorf("failed to ensure month file: %w", err)
	}

	var sb strings.Builder
	for _, txn := range transactions {
		sb.WriteString(txn)
		if !strings.HasSuffix(txn, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open file for appending: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	return nil
}

// ReadMonthFile reads the content of a monthly file.
// Returns empty string if file doesn't exist.
func (r *FileSystemRepository) ReadMonthFile(yearMonth string) (string, error) {
	filePath, err := r.pathResolver.GetMonthFilePath(yearMonth)
	if err != nil {
		return "", fmt.Errorf("failed to get month file path: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return string(data), nil
}

// GetMonthFilesInYear gets all monthly files in a year.
// Returns sorted year-month strings (e.g., ["2025-01", "2025-02"]).
func (r *FileSystemRepository) GetMonthFilesInYear(year string) ([]string, error) {
	entries, err := os.ReadDir(r.pathResolver.GetYearDir(year))
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read year directory: %w", err)
	}

	monthFiles := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if monthKey, ok := strings.CutSuffix(entry.Name(), ".beancount"); ok {
			monthFiles = append(monthFiles, monthKey)
		}
	}
	sort.Strings(monthFiles)

	return monthFiles, nil
}

// EnsureMonthFile ensures a monthly file exists with header.
// If the file already exists, this is a no-op.
func (r *FileSystemRepository) EnsureMonthFile(yearMonth string) error {
	filePath, err := r.pathResolver.GetMonthFilePath(yearMonth)
	if err != nil {
		return fmt.Errorf("failed to get month file path: %w", err)
	}

	if r.pathResolver.FileExists(filePath) {
		return nil
	}

	if err := r.pathResolver.EnsureParentDir(filePath); err != nil {
		return fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	header := fmt.Sprintf("; Ledger export for %s\n; Generated at %s\n\n", yearMonth, r.now().Format(time.RFC3339))
	if err := os.WriteFile(filePath, []byte(header), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
