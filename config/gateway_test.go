package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvGatewayConfig(t *testing.T) {
	t.Setenv("PAYEX_ACCOUNT_NO", "1000")
	t.Setenv("PAYEX_ENCRYPTED_KEY", "shared-key")
	t.Setenv("PAYEX_ENABLED", "yes")
	t.Setenv("PAYEX_FACTORING_ACCOUNT_NO", "2000")
	t.Setenv("PAYEX_FACTORING_TESTMODE", "no")

	factoring, err := EnvGatewayConfig{}.GatewaySettings(context.Background(), GatewayFactoring)
	require.NoError(t, err)
	assert.Equal(t, GatewayFactoring, factoring.ID)
	assert.Equal(t, "PayEx Financing Invoice", factoring.Title)
	assert.Equal(t, "2000", factoring.AccountNumber)
	assert.Equal(t, "shared-key", factoring.EncryptedKey)
	assert.True(t, factoring.Enabled)
	assert.False(t, factoring.TestMode)

	invoice, err := EnvGatewayConfig{}.GatewaySettings(context.Background(), GatewayInvoice)
	require.NoError(t, err)
	assert.Equal(t, "1000", invoice.AccountNumber)
	assert.True(t, invoice.TestMode)
}

func TestEnvGatewayConfig_ReadsOnEveryCall(t *testing.T) {
	t.Setenv("PAYEX_SWISH_ENABLED", "no")
	settings, err := EnvGatewayConfig{}.GatewaySettings(context.Background(), GatewaySwish)
	require.NoError(t, err)
	assert.False(t, settings.Enabled)

	t.Setenv("PAYEX_SWISH_ENABLED", "yes")
	settings, err = EnvGatewayConfig{}.GatewaySettings(context.Background(), GatewaySwish)
	require.NoError(t, err)
	assert.True(t, settings.Enabled)
}

func TestEnvGatewayConfig_UnknownGateway(t *testing.T) {
	_, err := EnvGatewayConfig{}.GatewaySettings(context.Background(), "bacs")
	assert.Error(t, err)
}

func TestIsPayExGateway(t *testing.T) {
	for _, id := range Gateways() {
		assert.True(t, IsPayExGateway(id), id)
	}
	assert.False(t, IsPayExGateway("cod"))
}

func TestConfigHelpers(t *testing.T) {
	t.Setenv("PAYEXSYNC_TEST_INT", "12")
	t.Setenv("PAYEXSYNC_TEST_BOOL", "true")
	t.Setenv("PAYEXSYNC_TEST_DURATION", "90s")
	t.Setenv("PAYEXSYNC_TEST_BAD", "nope")

	assert.Equal(t, "fallback", Config("PAYEXSYNC_TEST_MISSING", "fallback"))
	assert.Equal(t, 12, ConfigInt("PAYEXSYNC_TEST_INT", 1))
	assert.Equal(t, 1, ConfigInt("PAYEXSYNC_TEST_BAD", 1))
	assert.True(t, ConfigBool("PAYEXSYNC_TEST_BOOL", false))
	assert.False(t, ConfigBool("PAYEXSYNC_TEST_BAD", false))
	assert.Equal(t, 90*time.Second, ConfigDuration("PAYEXSYNC_TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, ConfigDuration("PAYEXSYNC_TEST_BAD", time.Second))
}

func TestWeeklyLogName(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "payex-2024-03-week10-payex_swish.log", weeklyLogName("payex", GatewaySwish, now))
	assert.Equal(t, "payexsync-2024-03-week10.log", weeklyLogName("payexsync", "", now))
}
