package service

import (
	"bytes"
	"testing"
	"time"
	_ "time/tzdata"

	"payexsync/dto/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateAuthorizationReport(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "UTC")
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	rows := []model.PendingAuthorization{
		{
			OrderID:           42,
			PaymentMethod:     "payex_factoring",
			Total:             decimal.RequireFromString("99.95"),
			Currency:          "SEK",
			OrderStatus:       model.OrderStatusOnHold,
			TransactionNumber: "TX-100",
			AuthorizedAt:      now.Add(-72 * time.Hour),
		},
	}

	data, err := GenerateAuthorizationReport(rows, now)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{authorizationSheet}, f.GetSheetList())

	cells := map[string]string{
		"A1": "Order ID",
		"H1": "Age (days)",
		"A2": "42",
		"B2": "payex_factoring",
		"C2": "TX-100",
		"D2": "99.95",
		"E2": "SEK",
		"F2": "on-hold",
		"G2": "2024-03-07 12:00:00",
		"H2": "3",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue(authorizationSheet, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}
}

func TestAuthorizationReportName(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "Europe/Stockholm")

	// 23:30 UTC is already the next day in Stockholm.
	now := time.Date(2024, 1, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "payex-authorizations-2024-02-01.xlsx", AuthorizationReportName(now))
}

func TestGetColumnName(t *testing.T) {
	assert.Equal(t, "A", getColumnName(1))
	assert.Equal(t, "H", getColumnName(8))
	assert.Equal(t, "Z", getColumnName(26))
	assert.Equal(t, "AA", getColumnName(27))
	assert.Equal(t, "AZ", getColumnName(52))
}
