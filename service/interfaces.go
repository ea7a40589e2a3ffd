package service

import (
	"context"
	"time"

	"payexsync/dto/model"
)

// OrderRepository is the host shop's order storage.
type OrderRepository interface {
	Load(ctx context.Context, orderID uint) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status model.OrderStatus, message string) error
	AppendNote(ctx context.Context, orderID uint, note string) error
	MarkPaid(ctx context.Context, orderID uint, transactionRef string) error
}

// AdminNotifier surfaces errors to shop operators. ReportError must not block.
type AdminNotifier interface {
	ReportError(message string)
}

// PaymentGatewayClient executes PxOrder operations for one PayEx payment
// method. Implementations return a non-nil error only for transport
// failures; gateway rejections come back as a result that is not OK.
type PaymentGatewayClient interface {
	Settings() *model.GatewaySettings
	Capture(ctx context.Context, req model.CaptureRequest) (*model.GatewayOperationResult, error)
	Cancel(ctx context.Context, req model.CancelRequest) (*model.GatewayOperationResult, error)
	LookupAddress(ctx context.Context, req model.AddressLookupRequest) (*model.GatewayOperationResult, error)
}

// SupportsExtraLineItems is implemented by gateways that print the order
// lines on the invoice they send to the customer.
type SupportsExtraLineItems interface {
	OrderLines(order *model.Order) (string, error)
}

// GatewayResolver returns the gateway bound to a payment method id. Settings
// are read on every call.
type GatewayResolver interface {
	Resolve(ctx context.Context, paymentMethod string) (PaymentGatewayClient, error)
}

// GatewayConfigProvider loads credentials and enablement of a gateway.
type GatewayConfigProvider interface {
	GatewaySettings(ctx context.Context, gatewayID string) (*model.GatewaySettings, error)
}

// TransactionStateStore keeps the last known PayEx status per order. Get
// returns a nil record and a nil error when the order has none.
type TransactionStateStore interface {
	Get(ctx context.Context, orderID uint) (*model.TransactionRecord, error)
	Set(ctx context.Context, orderID uint, statusCode, transactionRef string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, subject string, event model.TransactionEvent) error
}

// OrderLocker serializes workflows of the same order across processes.
// Lock returns ErrOrderLocked when another holder owns the key.
type OrderLocker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}
