package handler

import (
	"encoding/json"
	"testing"
	"time"

	"payexsync/dto/http"
	"payexsync/dto/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutes_RequireToken(t *testing.T) {
	app := newTestApp(&Handler{Notices: &stubNotices{}})

	status, _ := doRequest(t, app, fiber.MethodGet, "/api/admin/notices", "", "", nil)
	assert.Equal(t, 401, status)

	status, _ = doRequest(t, app, fiber.MethodGet, "/api/admin/notices", "", "", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, 401, status)

	status, _ = doRequest(t, app, fiber.MethodGet, "/api/admin/notices", "", "", adminToken(t, "viewer"))
	assert.Equal(t, 403, status)
}

func TestGetNotices(t *testing.T) {
	notices := &stubNotices{notices: []model.AdminNotice{{ID: "n1", Level: "error", Message: "PayEx error: X (Y)"}}}
	app := newTestApp(&Handler{Notices: notices})

	status, raw := doRequest(t, app, fiber.MethodGet, "/api/admin/notices", "", "", adminToken(t, "admin"))
	require.Equal(t, 200, status)

	var got []model.AdminNotice
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "PayEx error: X (Y)", got[0].Message)

	status, raw = doRequest(t, app, fiber.MethodGet, "/api/admin/notices", "", "", adminToken(t, "superadmin"))
	require.Equal(t, 200, status)
	assert.True(t, decodeEnvelope(t, raw).Success)
}

func TestGetTransaction(t *testing.T) {
	updated := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	transactions := &stubTransactions{record: &model.TransactionRecord{
		OrderID:           42,
		TransactionStatus: model.TransactionStatusCapture,
		TransactionNumber: "TX-200",
		UpdatedAt:         updated,
	}}
	app := newTestApp(&Handler{Transactions: transactions})

	status, raw := doRequest(t, app, fiber.MethodGet, "/api/admin/transactions/42", "", "", adminToken(t, "admin"))
	require.Equal(t, 200, status)

	var got http.TransactionStatus
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, raw).Data, &got))
	assert.Equal(t, uint(42), got.OrderID)
	assert.Equal(t, "Capture", got.StatusName)
	assert.Equal(t, "TX-200", got.TransactionNumber)
	assert.True(t, updated.Equal(got.UpdatedAt))
}

func TestGetTransaction_NotFound(t *testing.T) {
	app := newTestApp(&Handler{Transactions: &stubTransactions{}})

	status, raw := doRequest(t, app, fiber.MethodGet, "/api/admin/transactions/42", "", "", adminToken(t, "admin"))
	assert.Equal(t, 404, status)
	assert.Equal(t, "Transaction not found", decodeEnvelope(t, raw).message(t))
}

func TestAuthorizationReport(t *testing.T) {
	app := newTestApp(&Handler{Transactions: &stubTransactions{rows: []model.PendingAuthorization{{OrderID: 1}}}})

	req := adminToken(t, "admin")
	status, raw := doRequest(t, app, fiber.MethodGet, "/api/admin/reports/authorizations?days=3", "", "", req)
	require.Equal(t, 200, status)
	// XLSX files are zip archives.
	assert.Equal(t, "PK", string(raw[:2]))

	status, _ = doRequest(t, app, fiber.MethodGet, "/api/admin/reports/authorizations?days=-1", "", "", req)
	assert.Equal(t, 400, status)
}
