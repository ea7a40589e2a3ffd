package router

import (
	"context"
	"net/http/httptest"
	"testing"

	"payexsync/dto/model"
	"payexsync/handler"
	"payexsync/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLookup struct{}

func (noopLookup) Lookup(ctx context.Context, in service.AddressLookupInput) (*model.AddressLookupResult, error) {
	return &model.AddressLookupResult{}, nil
}

func TestSetupRoutes(t *testing.T) {
	t.Setenv("SSN_RATE_LIMIT", "1")
	app := fiber.New()
	SetupRoutes(app, &handler.Handler{Lookup: noopLookup{}})

	cases := []struct {
		method string
		target string
		want   int
	}{
		{fiber.MethodGet, "/api/health", 200},
		{fiber.MethodGet, "/metrics", 200},
		{fiber.MethodGet, "/api/admin/notices", 401},
		{fiber.MethodPost, "/api/payex/ssn", 200},
		{fiber.MethodPost, "/api/payex/ssn", 429},
	}

	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(tc.method, tc.target, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, "%s %s", tc.method, tc.target)
	}
}
