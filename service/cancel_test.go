package service

import (
	"context"
	"errors"
	"testing"

	"payexsync/dto/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCancelFixture(records ...model.TransactionRecord) (*CancelWorkflow, *fakeOrders, *fakeStore, *fakeGateway, *fakeNotifier, *fakePublisher) {
	orders := newFakeOrders(&model.Order{
		ID:            42,
		PaymentMethod: "payex_invoice",
		Total:         decimal.NewFromInt(500),
		Status:        model.OrderStatusCancelled,
		TransactionID: strPtr("TX-100"),
	})
	store := newFakeStore(records...)
	gateway := newFakeGateway("payex_invoice")
	notifier := &fakeNotifier{}
	publisher := &fakePublisher{}

	workflow := NewCancelWorkflow(Dependencies{
		Orders:       orders,
		Transactions: store,
		Gateways:     &fakeResolver{gateways: map[string]PaymentGatewayClient{"payex_invoice": gateway}},
		Notifier:     notifier,
		Events:       publisher,
	})
	return workflow, orders, store, gateway, notifier, publisher
}

func TestCancelWorkflow_Success(t *testing.T) {
	workflow, orders, store, gateway, notifier, publisher := newCancelFixture(authorized(42))
	gateway.result = okResult(model.TransactionStatusCancel, "TX-101")

	require.NoError(t, workflow.Run(context.Background(), 42))

	require.Len(t, gateway.cancels, 1)
	assert.Equal(t, model.CancelRequest{AccountNumber: "ACC-1", TransactionNumber: "TX-100"}, gateway.cancels[0])

	record, _ := store.Get(context.Background(), 42)
	assert.Equal(t, model.TransactionStatusCancel, record.TransactionStatus)
	assert.Equal(t, "TX-101", record.TransactionNumber)

	assert.Equal(t, []string{"Transaction canceled. Transaction Id: TX-101"}, orders.notes)
	assert.Empty(t, orders.paid)
	assert.Empty(t, notifier.messages)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, SubjectCancelled, publisher.events[0].Subject)
}

func TestCancelWorkflow_NoRecordIsNoop(t *testing.T) {
	workflow, orders, store, gateway, _, _ := newCancelFixture()

	require.NoError(t, workflow.Run(context.Background(), 42))
	assert.Equal(t, 0, gateway.calls())
	assert.Equal(t, 0, orders.mutations())
	assert.Equal(t, 0, store.sets)
}

func TestCancelWorkflow_ReplayIsNoop(t *testing.T) {
	workflow, _, _, gateway, _, _ := newCancelFixture(authorized(42))
	gateway.result = okResult(model.TransactionStatusCancel, "TX-101")

	require.NoError(t, workflow.Run(context.Background(), 42))
	require.NoError(t, workflow.Run(context.Background(), 42))
	assert.Len(t, gateway.cancels, 1)
}

func TestCancelWorkflow_RevertsOnFailure(t *testing.T) {
	workflow, orders, store, gateway, notifier, publisher := newCancelFixture(authorized(42))
	gateway.result = &model.GatewayOperationResult{Code: "OK", Description: "Operation not allowed", ErrorCode: "OperationNotAllowed"}

	err := workflow.Run(context.Background(), 42)

	var rejection *GatewayRejection
	require.True(t, errors.As(err, &rejection))

	require.Len(t, orders.updates, 1)
	assert.Equal(t, model.OrderStatusOnHold, orders.updates[0].Status)
	assert.Equal(t, "PayEx error: OperationNotAllowed (Operation not allowed)", orders.updates[0].Message)
	assert.Len(t, notifier.messages, 1)
	assert.Equal(t, 0, store.sets)
	assert.Empty(t, orders.notes)
	assert.Empty(t, publisher.events)
}
