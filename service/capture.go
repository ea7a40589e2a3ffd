package service

import (
	"context"
	"fmt"
	"net/url"

	"payexsync/dto/model"
	"payexsync/helper"

	"go.uber.org/zap"
)

const workflowCapture = "capture"

// CaptureWorkflow settles an authorized PayEx transaction when the order
// leaves on-hold for processing or completed.
type CaptureWorkflow struct {
	Dependencies
}

func NewCaptureWorkflow(deps Dependencies) *CaptureWorkflow {
	return &CaptureWorkflow{Dependencies: deps}
}

// Run captures the order's authorization. Orders without an authorized
// transaction are skipped and nil is returned, which makes replays safe.
func (w *CaptureWorkflow) Run(ctx context.Context, orderID uint) error {
	order, record, err := w.authorizedTransaction(ctx, workflowCapture, orderID)
	if err != nil || record == nil {
		return err
	}

	gateway, err := w.resolveGateway(ctx, workflowCapture, order)
	if err != nil {
		return err
	}

	req := model.CaptureRequest{
		AccountNumber:     gateway.Settings().AccountNumber,
		TransactionNumber: transactionNumber(order, record),
		Amount:            helper.ToMinorUnits(order.Total),
		OrderID:           order.ID,
		VatAmount:         0,
	}

	if lineItems, ok := gateway.(SupportsExtraLineItems); ok {
		lines, err := lineItems.OrderLines(order)
		if err != nil {
			return fmt.Errorf("build order lines of order %d: %w", order.ID, err)
		}
		req.AdditionalValues = "FINANCINGINVOICE_ORDERLINES=" + url.QueryEscape(lines)
	}

	result, err := gateway.Capture(ctx, req)
	if err := checkResult("Capture5", result, err); err != nil {
		return w.fail(ctx, workflowCapture, order, req.TransactionNumber, err)
	}

	number := result.TransactionNumber
	if number == "" {
		number = req.TransactionNumber
		result.TransactionNumber = number
	}

	w.log().Info("transaction captured",
		zap.Uint("order_id", order.ID),
		zap.String("transaction_number", number),
		zap.Int64("amount", req.Amount))
	helper.LoggerFor(order.PaymentMethod).LogTransactionSuccess(order.ID, number, result.TransactionStatus, req.Amount)

	errs := w.confirm(ctx, order, result, fmt.Sprintf("Transaction captured. Transaction Id: %s", number))
	if err := w.Orders.MarkPaid(ctx, order.ID, number); err != nil {
		errs = append(errs, fmt.Errorf("mark order paid: %w", err))
	}

	w.publish(ctx, SubjectCaptured, model.TransactionEvent{
		OrderID:           order.ID,
		PaymentMethod:     order.PaymentMethod,
		TransactionNumber: number,
		TransactionStatus: result.TransactionStatus,
		Amount:            req.Amount,
	})

	return w.finish(workflowCapture, order, errs)
}
