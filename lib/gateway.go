package lib

import (
	"context"
	"fmt"
	"strconv"

	"payexsync/config"
	"payexsync/dto/model"
	"payexsync/service"
)

// Gateway is one PayEx payment method bound to its current settings.
type Gateway struct {
	settings *model.GatewaySettings
	px       *PxOrderClient
}

func NewGateway(settings *model.GatewaySettings, px *PxOrderClient) *Gateway {
	return &Gateway{settings: settings, px: px}
}

func (g *Gateway) Settings() *model.GatewaySettings {
	return g.settings
}

func (g *Gateway) account(requested string) string {
	if requested != "" {
		return requested
	}
	return g.settings.AccountNumber
}

// Capture calls PxOrder.Capture5.
func (g *Gateway) Capture(ctx context.Context, req model.CaptureRequest) (*model.GatewayOperationResult, error) {
	return g.px.call(ctx, g.settings, "Capture5", []param{
		{"accountNumber", g.account(req.AccountNumber)},
		{"transactionNumber", req.TransactionNumber},
		{"amount", strconv.FormatInt(req.Amount, 10)},
		{"orderId", strconv.FormatUint(uint64(req.OrderID), 10)},
		{"vatAmount", strconv.FormatInt(req.VatAmount, 10)},
		{"additionalValues", req.AdditionalValues},
	})
}

// Cancel calls PxOrder.Cancel2.
func (g *Gateway) Cancel(ctx context.Context, req model.CancelRequest) (*model.GatewayOperationResult, error) {
	return g.px.call(ctx, g.settings, "Cancel2", []param{
		{"accountNumber", g.account(req.AccountNumber)},
		{"transactionNumber", req.TransactionNumber},
	})
}

// LookupAddress calls PxOrder.GetAddressByPaymentMethod.
func (g *Gateway) LookupAddress(ctx context.Context, req model.AddressLookupRequest) (*model.GatewayOperationResult, error) {
	return g.px.call(ctx, g.settings, "GetAddressByPaymentMethod", []param{
		{"accountNumber", g.account(req.AccountNumber)},
		{"paymentMethod", req.PaymentMethod},
		{"ssn", req.SSN},
		{"zipcode", req.ZipCode},
		{"countryCode", req.CountryCode},
		{"ipAddress", req.IPAddress},
	}, "ssn")
}

// Registry resolves payment method ids to gateways. Settings are loaded
// from the provider on every Resolve.
type Registry struct {
	provider service.GatewayConfigProvider
	px       *PxOrderClient
}

func NewRegistry(provider service.GatewayConfigProvider, px *PxOrderClient) *Registry {
	return &Registry{provider: provider, px: px}
}

func (r *Registry) Resolve(ctx context.Context, paymentMethod string) (service.PaymentGatewayClient, error) {
	if !config.IsPayExGateway(paymentMethod) {
		return nil, fmt.Errorf("%q is not a PayEx payment method", paymentMethod)
	}

	settings, err := r.provider.GatewaySettings(ctx, paymentMethod)
	if err != nil {
		return nil, fmt.Errorf("load settings of %s: %w", paymentMethod, err)
	}
	if settings.AccountNumber == "" || settings.EncryptedKey == "" {
		return nil, fmt.Errorf("%s has no account number or encryption key", paymentMethod)
	}

	gateway := NewGateway(settings, r.px)
	if paymentMethod == config.GatewayFactoring {
		return &FactoringGateway{Gateway: gateway}, nil
	}
	return gateway, nil
}
