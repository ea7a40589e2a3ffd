package config

import (
	"context"
	"fmt"
	"strings"

	"payexsync/dto/model"
)

// PayEx payment method ids as stored on orders.
const (
	GatewayPayment    = "payex"
	GatewayBankDebit  = "payex_bankdebit"
	GatewayInvoice    = "payex_invoice"
	GatewayFactoring  = "payex_factoring"
	GatewayWyWallet   = "payex_wywallet"
	GatewayMasterPass = "payex_masterpass"
	GatewaySwish      = "payex_swish"
)

var gatewayTitles = map[string]string{
	GatewayPayment:    "PayEx Payments",
	GatewayBankDebit:  "PayEx Bank Debit",
	GatewayInvoice:    "PayEx Invoice",
	GatewayFactoring:  "PayEx Financing Invoice",
	GatewayWyWallet:   "PayEx WyWallet",
	GatewayMasterPass: "PayEx MasterPass",
	GatewaySwish:      "PayEx Swish",
}

// Gateways lists every known PayEx payment method id.
func Gateways() []string {
	return []string{
		GatewayPayment, GatewayBankDebit, GatewayInvoice, GatewayFactoring,
		GatewayWyWallet, GatewayMasterPass, GatewaySwish,
	}
}

func IsPayExGateway(id string) bool {
	_, ok := gatewayTitles[id]
	return ok
}

// EnvGatewayConfig reads gateway settings from the environment on every
// call, e.g. PAYEX_FACTORING_ACCOUNT_NO for payex_factoring. Variables
// without a gateway suffix (PAYEX_ACCOUNT_NO) are shared defaults.
type EnvGatewayConfig struct{}

func (EnvGatewayConfig) GatewaySettings(ctx context.Context, gatewayID string) (*model.GatewaySettings, error) {
	title, ok := gatewayTitles[gatewayID]
	if !ok {
		return nil, fmt.Errorf("unknown payment gateway: %s", gatewayID)
	}

	prefix := strings.ToUpper(gatewayID) + "_"
	lookup := func(name, def string) string {
		return Config(prefix+name, Config("PAYEX_"+name, def))
	}

	settings := &model.GatewaySettings{
		ID:            gatewayID,
		Title:         title,
		Enabled:       lookup("ENABLED", "no") == "yes",
		AccountNumber: lookup("ACCOUNT_NO", ""),
		EncryptedKey:  lookup("ENCRYPTED_KEY", ""),
		TestMode:      lookup("TESTMODE", "yes") == "yes",
	}
	return settings, nil
}
