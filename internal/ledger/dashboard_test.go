package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

func TestDashboard(t *testing.T) {
	svc := newTestService(t, true)
	seedActivity(t, svc)

	vendor := createVendor(t, svc, "Acme")
	stock := accountGUID(t, svc, "1405")
	for _, date := range []string{"2025-03-14", "2025-03-01"} {
		_, err := svc.CreatePurchaseOrder(models.CreatePurchaseOrderRequest{
			VendorGUID: vendor.ID,
			DateOpened: date,
			Entries: []models.CreateOrderEntryRequest{
				{Description: "Stock", Quantity: amount("3"), Price: amount("100"), AccountGUID: stock},
			},
		})
		require.NoError(t, err)
	}

	d, err := svc.Dashboard(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", d.Date)

	assertAmount(t, "14800", d.CashAndEquivalents)
	assertAmount(t, "48", d.CashGrowthRate)
	assertAmount(t, "1800", d.NetIncome)
	assertAmount(t, "0", d.NetIncomeGrowthRate)
	assertAmount(t, "0", d.AccountsPayable)

	require.Len(t, d.CashFlowData, 6)
	assert.Equal(t, "2024-10", d.CashFlowData[0].Month)
	assert.Equal(t, "2025-01", d.CashFlowData[3].Month)
	assertAmount(t, "10000", d.CashFlowData[3].Amount)
	assertAmount(t, "0", d.CashFlowData[4].Amount)
	assert.Equal(t, "2025-03", d.CashFlowData[5].Month)
	assertAmount(t, "4800", d.CashFlowData[5].Amount)

	require.Len(t, d.TodoItems, 2)
	assert.Equal(t, 1, d.TodoItems[0].ID)
	assert.Equal(t, "2025-03-08", d.TodoItems[0].Deadline)
	assert.True(t, d.TodoItems[0].Urgent)
	assert.Contains(t, d.TodoItems[0].Title, "PO-20250301-0002")
	assert.Contains(t, d.TodoItems[0].Title, "Acme")
	assert.False(t, d.TodoItems[1].Urgent)

	eq := d.AccountingEquation
	assertAmount(t, "16800", eq.TotalAssets)
	assertAmount(t, "5000", eq.TotalLiabilities)
	assertAmount(t, "10000", eq.TotalEquity)
	assertAmount(t, "1800", eq.NetIncome)
	assertAmount(t, "11800", eq.TotalEquityWithIncome)
	assertAmount(t, "16800", eq.RightSide)
	assert.True(t, eq.IsBalanced)
}

func TestDashboardPayableGrowth(t *testing.T) {
	svc := newTestService(t, true)
	post(t, svc, "2025-02-10", "Stock on credit", "1405", "2202", "200")
	post(t, svc, "2025-03-10", "More stock on credit", "1405", "2202", "100")

	d, err := svc.Dashboard(context.Background(), "2025-03-15")
	require.NoError(t, err)
	assertAmount(t, "300", d.AccountsPayable)
	assertAmount(t, "50", d.AccountsPayableGrowthRate)
	assert.Empty(t, d.TodoItems)
}

func TestDashboardRejectsBadDate(t *testing.T) {
	svc := newTestService(t, false)

	_, err := svc.Dashboard(context.Background(), "15/03/2025")
	assertCode(t, 400, err)
}

func TestGrowthRate(t *testing.T) {
	assertAmount(t, "0", growthRate(amount("10"), amount("0")))
	assertAmount(t, "-25", growthRate(amount("75"), amount("100")))
	assertAmount(t, "200", growthRate(amount("100"), amount("-100")))
	assertAmount(t, "33.33", growthRate(amount("4"), amount("3")))
}

func TestFraction(t *testing.T) {
	num, denom := fraction(amount("12.345"))
	assert.Equal(t, int64(12345), num)
	assert.Equal(t, int64(1000), denom)

	num, denom = fraction(amount("500"))
	assert.Equal(t, int64(500), num)
	assert.Equal(t, int64(1), denom)

	num, denom = fraction(amount("-0.5"))
	assert.Equal(t, int64(-5), num)
	assert.Equal(t, int64(10), denom)
}

func TestItemSummary(t *testing.T) {
	entries := []models.OrderEntry{{Description: "A"}, {Description: "B"}, {Description: "C"}, {Description: "D"}}
	assert.Equal(t, "A, B, C and 1 more", itemSummary(entries))
	assert.Equal(t, "A, B, C", itemSummary(entries[:3]))
	assert.Equal(t, "", itemSummary(nil))
}
