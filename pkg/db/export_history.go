package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ExportRecord represents one exported ledger transaction.
type ExportRecord struct {
	ID              int64
	TransactionGUID string
	PostDate        string
	Amount          string
	BeancountFile   string
	ExportedAt      time.Time
}

// ExportHistory manages export history operations.
type ExportHistory struct {
	conn *Connection
}

// NewExportHistory creates a new ExportHistory instance.
func NewExportHistory(conn *Connection) *ExportHistory {
	return &ExportHistory{conn: conn}
}

const upsertExport = `
	INSERT INTO export_history (transaction_guid, post_date, amount, beancount_file)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(transaction_guid) DO UPDATE SET
		post_date = excluded.post_date,
		amount = excluded.amount,
		beancount_file = excluded.beancount_file,
		exported_at = CURRENT_TIMESTAMP
`

// RecordExports records a batch of exports in one database transaction.
// A record for an already exported transaction replaces the old one.
func (h *ExportHistory) RecordExports(records []ExportRecord) error {
	return h.conn.withTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(upsertExport)
		if err != nil {
			return fmt.Errorf("failed to prepare export insert: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			if _, err := stmt.Exec(r.TransactionGUID, r.PostDate, r.Amount, r.BeancountFile); err != nil {
				return fmt.Errorf("failed to record export of %s: %w", r.TransactionGUID, err)
			}
		}
		return nil
	})
}

// IsExported checks if a transaction has been exported.
func (h *ExportHistory) IsExported(transactionGUID string) (bool, error) {
	var count int
	err := h.conn.db.QueryRow(`SELECT COUNT(*) FROM export_history WHERE transaction_guid = ?`, transactionGUID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check if exported: %w", err)
	}

	return count > 0, nil
}

// GetExportRecord retrieves the export record of a transaction.
// Returns nil when the transaction has not been exported.
func (h *ExportHistory) GetExportRecord(transactionGUID string) (*ExportRecord, error) {
	query := `
		SELECT id, transaction_guid, post_date, amount, beancount_file, exported_at
		FROM export_history
		WHERE transaction_guid = ?
	`

	var r ExportRecord
	err := h.conn.db.QueryRow(query, transactionGUID).Scan(
		&r.ID,
		&r.TransactionGUID,
		&r.PostDate,
		&r.Amount,
		&r.BeancountFile,
		&r.ExportedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export record: %w", err)
	}

	return &r, nil
}

// ExportedGUIDs returns the set of exported transaction GUIDs.
// This is useful for bulk filtering.
func (h *ExportHistory) ExportedGUIDs() (map[string]bool, error) {
	rows, err := h.conn.db.Query(`SELECT transaction_guid FROM export_history`)
	if err != nil {
		return nil, fmt.Errorf("failed to get exported GUIDs: %w", err)
	}
	defer rows.Close()

	guids := make(map[string]bool)
	for rows.Next() {
		var guid string
		if err := rows.Scan(&guid); err != nil {
			return nil, fmt.Errorf("failed to scan transaction GUID: %w", err)
		}
		guids[guid] = true
	}

	return guids, rows.Err()
}

// DeleteExport forgets an export so the next run writes the transaction again.
func (h *ExportHistory) DeleteExport(transactionGUID string) (bool, error) {
	result, err := h.conn.db.Exec(`DELETE FROM export_history WHERE transaction_guid = ?`, transactionGUID)
	if err != nil {
		return false, fmt.Errorf("failed to delete export record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// Stats represents export statistics.
type Stats struct {
	TotalTransactions int
	TotalFiles        int
	FirstDate         sql.NullString
	LastDate          sql.NullString
	LastExport        sql.NullString
}

// GetStats retrieves export statistics.
func (h *ExportHistory) GetStats() (*Stats, error) {
	var stats Stats

	err := h.conn.db.QueryRow(`
		SELECT COUNT(*), COUNT(DISTINCT beancount_file), MIN(post_date), MAX(post_date), MAX(exported_at)
		FROM export_history
	`).Scan(&stats.TotalTransactions, &stats.TotalFiles, &stats.FirstDate, &stats.LastDate, &stats.LastExport)
	if err != nil {
		return nil, fmt.Errorf("failed to get export statistics: %w", err)
	}

	return &stats, nil
}
