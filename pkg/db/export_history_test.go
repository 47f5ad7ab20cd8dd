package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistory(t *testing.T) *ExportHistory {
	t.Helper()
	conn, err := Open(filepath.Join(t.TempDir(), "nested", "export.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewExportHistory(conn)
}

func TestRecordAndQueryExports(t *testing.T) {
	h := newTestHistory(t)

	ok, err := h.IsExported("t1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, h.RecordExports([]ExportRecord{
		{TransactionGUID: "t1", PostDate: "2025-01-05", Amount: "10000.00", BeancountFile: "2025/2025-01.beancount"},
		{TransactionGUID: "t2", PostDate: "2025-03-03", Amount: "3000.00", BeancountFile: "2025/2025-03.beancount"},
	}))

	ok, err = h.IsExported("t1")
	require.NoError(t, err)
	assert.True(t, ok)

	guids, err := h.ExportedGUIDs()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"t1": true, "t2": true}, guids)

	record, err := h.GetExportRecord("t2")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "3000.00", record.Amount)
	assert.False(t, record.ExportedAt.IsZero())

	missing, err := h.GetExportRecord("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRecordExportsUpserts(t *testing.T) {
	h := newTestHistory(t)

	require.NoError(t, h.RecordExports([]ExportRecord{{TransactionGUID: "t1", PostDate: "2025-01-05", Amount: "1.00", BeancountFile: "a"}}))
	require.NoError(t, h.RecordExports([]ExportRecord{{TransactionGUID: "t1", PostDate: "2025-01-06", Amount: "2.00", BeancountFile: "b"}}))

	record, err := h.GetExportRecord("t1")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", record.PostDate)
	assert.Equal(t, "b", record.BeancountFile)

	stats, err := h.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalTransactions)
}

func TestDeleteExport(t *testing.T) {
	h := newTestHistory(t)
	require.NoError(t, h.RecordExports([]ExportRecord{{TransactionGUID: "t1", PostDate: "2025-01-05", Amount: "1.00", BeancountFile: "a"}}))

	deleted, err := h.DeleteExport("t1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = h.DeleteExport("t1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetStats(t *testing.T) {
	h := newTestHistory(t)

	stats, err := h.GetStats()
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTransactions)
	assert.False(t, stats.LastExport.Valid)

	require.NoError(t, h.RecordExports([]ExportRecord{
		{TransactionGUID: "t1", PostDate: "2025-03-03", Amount: "1.00", BeancountFile: "2025/2025-03.beancount"},
		{TransactionGUID: "t2", PostDate: "2025-01-05", Amount: "1.00", BeancountFile: "2025/2025-01.beancount"},
		{TransactionGUID: "t3", PostDate: "2025-03-10", Amount: "1.00", BeancountFile: "2025/2025-03.beancount"},
	}))

	stats, err = h.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTransactions)
	assert.Equal(t, 2, stats.TotalFiles)
	assert.Equal(t, "2025-01-05", stats.FirstDate.String)
	assert.Equal(t, "2025-03-10", stats.LastDate.String)
	assert.True(t, stats.LastExport.Valid)
}
