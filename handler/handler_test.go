package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"payexsync/dto/model"
	"payexsync/middleware"
	"payexsync/repository"
	"payexsync/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type stubLookup struct {
	in     service.AddressLookupInput
	result *model.AddressLookupResult
	err    error
}

func (s *stubLookup) Lookup(ctx context.Context, in service.AddressLookupInput) (*model.AddressLookupResult, error) {
	s.in = in
	return s.result, s.err
}

type stubDispatcher struct {
	orderID  uint
	from, to model.OrderStatus
	action   string
	err      error
}

func (s *stubDispatcher) OnTransition(ctx context.Context, orderID uint, from, to model.OrderStatus) (string, error) {
	s.orderID, s.from, s.to = orderID, from, to
	return s.action, s.err
}

type stubTransactions struct {
	record *model.TransactionRecord
	rows   []model.PendingAuthorization
	err    error
}

func (s *stubTransactions) Get(ctx context.Context, orderID uint) (*model.TransactionRecord, error) {
	return s.record, s.err
}

func (s *stubTransactions) ListPendingAuthorizations(ctx context.Context, olderThan time.Time) ([]model.PendingAuthorization, error) {
	return s.rows, s.err
}

type stubNotices struct {
	notices []model.AdminNotice
}

func (s *stubNotices) TakePending(ctx context.Context) ([]model.AdminNotice, error) {
	taken := s.notices
	s.notices = nil
	return taken, nil
}

type stubUsers struct {
	users map[string]string
}

func (s *stubUsers) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	if pw, ok := s.users[username]; ok && pw == password {
		return &model.User{ID: 1, Username: username, Role: "admin"}, nil
	}
	return nil, repository.ErrInvalidCredentials
}

func newTestApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Post("/api/payex/ssn", h.ProcessSSN)
	app.Post("/api/orders/:id/transition", middleware.WebhookAuth(), h.OrderTransition)
	app.Post("/api/user/login", h.Login)

	admin := app.Group("/api/admin", middleware.Protected(), middleware.AdminOnly(false))
	admin.Get("/notices", h.GetNotices)
	admin.Get("/transactions/:orderId", h.GetTransaction)
	admin.Get("/reports/authorizations", h.AuthorizationReport)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) message(t *testing.T) string {
	t.Helper()
	var data struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(e.Data, &data))
	return data.Message
}

func doRequest(t *testing.T, app *fiber.App, method, target, contentType, body string, headers map[string]string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decodeEnvelope(t *testing.T, raw []byte) envelope {
	t.Helper()
	var e envelope
	require.NoError(t, json.Unmarshal(raw, &e), string(raw))
	return e
}

func postForm(t *testing.T, app *fiber.App, target string, form url.Values) (int, envelope) {
	t.Helper()
	status, raw := doRequest(t, app, fiber.MethodPost, target, fiber.MIMEApplicationForm, form.Encode(), nil)
	return status, decodeEnvelope(t, raw)
}

func postJSON(t *testing.T, app *fiber.App, target, body string, headers map[string]string) (int, []byte) {
	t.Helper()
	return doRequest(t, app, fiber.MethodPost, target, fiber.MIMEApplicationJSON, body, headers)
}

func adminToken(t *testing.T, role string) map[string]string {
	t.Helper()
	token, err := GenerateToken(1, "admin", role, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

var errBoom = errors.New("boom")
