package service

import (
	"context"
	"fmt"

	"payexsync/dto/model"
	"payexsync/helper"

	"go.uber.org/zap"
)

const workflowCancel = "cancel"

// CancelWorkflow voids an authorized PayEx transaction when the order
// moves from on-hold to cancelled. The order is not marked paid.
type CancelWorkflow struct {
	Dependencies
}

func NewCancelWorkflow(deps Dependencies) *CancelWorkflow {
	return &CancelWorkflow{Dependencies: deps}
}

func (w *CancelWorkflow) Run(ctx context.Context, orderID uint) error {
	order, record, err := w.authorizedTransaction(ctx, workflowCancel, orderID)
	if err != nil || record == nil {
		return err
	}

	gateway, err := w.resolveGateway(ctx, workflowCancel, order)
	if err != nil {
		return err
	}

	req := model.CancelRequest{
		AccountNumber:     gateway.Settings().AccountNumber,
		TransactionNumber: transactionNumber(order, record),
	}

	result, err := gateway.Cancel(ctx, req)
	if err := checkResult("Cancel2", result, err); err != nil {
		return w.fail(ctx, workflowCancel, order, req.TransactionNumber, err)
	}

	number := result.TransactionNumber
	if number == "" {
		number = req.TransactionNumber
		result.TransactionNumber = number
	}

	w.log().Info("transaction canceled",
		zap.Uint("order_id", order.ID),
		zap.String("transaction_number", number))
	helper.LoggerFor(order.PaymentMethod).LogTransactionSuccess(order.ID, number, result.TransactionStatus, 0)

	errs := w.confirm(ctx, order, result, fmt.Sprintf("Transaction canceled. Transaction Id: %s", number))

	w.publish(ctx, SubjectCancelled, model.TransactionEvent{
		OrderID:           order.ID,
		PaymentMethod:     order.PaymentMethod,
		TransactionNumber: number,
		TransactionStatus: result.TransactionStatus,
	})

	return w.finish(workflowCancel, order, errs)
}
