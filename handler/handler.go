package handler

import (
	"context"
	"time"

	"payexsync/dto/model"
	"payexsync/service"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

type AddressLookuper interface {
	Lookup(ctx context.Context, in service.AddressLookupInput) (*model.AddressLookupResult, error)
}

type TransitionDispatcher interface {
	OnTransition(ctx context.Context, orderID uint, from, to model.OrderStatus) (string, error)
}

type TransactionReader interface {
	Get(ctx context.Context, orderID uint) (*model.TransactionRecord, error)
	ListPendingAuthorizations(ctx context.Context, olderThan time.Time) ([]model.PendingAuthorization, error)
}

type NoticeReader interface {
	TakePending(ctx context.Context) ([]model.AdminNotice, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

// Handler serves the HTTP API.
type Handler struct {
	Lookup       AddressLookuper
	Dispatcher   TransitionDispatcher
	Transactions TransactionReader
	Notices      NoticeReader
	Users        Authenticator
	Logger       *zap.Logger
}

func (h *Handler) log() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}
