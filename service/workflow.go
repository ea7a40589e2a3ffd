package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payexsync/dto/model"
	"payexsync/helper"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Event subjects published after a confirmed PayEx response.
const (
	SubjectCaptured  = "payex.transaction.captured"
	SubjectCancelled = "payex.transaction.cancelled"
)

var WorkflowOutcomes = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "payex_workflow_outcomes_total",
		Help: "Outcomes of capture, cancel and address lookup workflows.",
	},
	[]string{"workflow", "outcome"},
)

// Dependencies are shared by the capture and cancel workflows. Events is
// optional.
type Dependencies struct {
	Orders       OrderRepository
	Transactions TransactionStateStore
	Gateways     GatewayResolver
	Notifier     AdminNotifier
	Events       EventPublisher
	Logger       *zap.Logger
}

func (d *Dependencies) log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// authorizedTransaction loads the order and its transaction record. A nil
// record means there is nothing to capture or cancel.
func (d *Dependencies) authorizedTransaction(ctx context.Context, workflow string, orderID uint) (*model.Order, *model.TransactionRecord, error) {
	order, err := d.Orders.Load(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("load order %d: %w", orderID, err)
	}

	record, err := d.Transactions.Get(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("load transaction of order %d: %w", orderID, err)
	}

	if record == nil || record.TransactionStatus != model.TransactionStatusAuthorize {
		status := ""
		if record != nil {
			status = record.TransactionStatus
		}
		d.log().Debug("no authorized transaction, skipping",
			zap.String("workflow", workflow),
			zap.Uint("order_id", orderID),
			zap.String("transaction_status", status))
		WorkflowOutcomes.WithLabelValues(workflow, "noop").Inc()
		return order, nil, nil
	}

	return order, record, nil
}

// resolveGateway returns the enabled gateway of the order's payment method.
func (d *Dependencies) resolveGateway(ctx context.Context, workflow string, order *model.Order) (PaymentGatewayClient, error) {
	gateway, err := d.Gateways.Resolve(ctx, order.PaymentMethod)
	if err == nil && !gateway.Settings().Enabled {
		err = errors.New("gateway is disabled")
	}
	if err != nil {
		cfgErr := &ConfigurationError{PaymentMethod: order.PaymentMethod, Err: err}
		d.log().Error("cannot resolve payment gateway",
			zap.String("workflow", workflow),
			zap.Uint("order_id", order.ID),
			zap.Error(cfgErr))
		WorkflowOutcomes.WithLabelValues(workflow, "config_error").Inc()
		return nil, cfgErr
	}
	return gateway, nil
}

// checkResult turns a PxOrder call outcome into a typed error.
func checkResult(operation string, result *model.GatewayOperationResult, err error) error {
	if err != nil {
		return &GatewayUnavailable{Operation: operation, Err: err}
	}
	if result == nil {
		result = &model.GatewayOperationResult{}
	}
	if !result.IsOK() {
		return &GatewayRejection{Operation: operation, Result: result}
	}
	return nil
}

// fail puts the order back on hold with the gateway error and tells the
// admins. The transaction record is left as it was.
func (d *Dependencies) fail(ctx context.Context, workflow string, order *model.Order, transactionNumber string, cause error) error {
	code, description := failureDetails(cause)
	message := fmt.Sprintf("PayEx error: %s (%s)", code, description)

	d.log().Error("PayEx operation failed",
		zap.String("workflow", workflow),
		zap.Uint("order_id", order.ID),
		zap.String("error_code", code),
		zap.String("description", description))
	helper.LoggerFor(order.PaymentMethod).LogTransactionError(order.ID, transactionNumber, message, map[string]interface{}{
		"workflow": workflow,
	})

	if err := d.Orders.UpdateStatus(ctx, order.ID, model.OrderStatusOnHold, message); err != nil {
		d.log().Error("failed to put order on hold", zap.Uint("order_id", order.ID), zap.Error(err))
	}
	d.Notifier.ReportError(message)

	outcome := "rejected"
	var unavailable *GatewayUnavailable
	if errors.As(cause, &unavailable) {
		outcome = "unavailable"
	}
	WorkflowOutcomes.WithLabelValues(workflow, outcome).Inc()

	return fmt.Errorf("%s order %d: %w", workflow, order.ID, cause)
}

// confirm stores the new remote state. Mutation errors are reported but do
// not stop the remaining steps since PayEx already applied the operation.
func (d *Dependencies) confirm(ctx context.Context, order *model.Order, result *model.GatewayOperationResult, note string) []error {
	var errs []error

	if err := d.Transactions.Set(ctx, order.ID, result.TransactionStatus, result.TransactionNumber); err != nil {
		errs = append(errs, fmt.Errorf("store transaction status: %w", err))
	}
	if err := d.Orders.AppendNote(ctx, order.ID, note); err != nil {
		errs = append(errs, fmt.Errorf("append order note: %w", err))
	}

	return errs
}

func (d *Dependencies) publish(ctx context.Context, subject string, event model.TransactionEvent) {
	if d.Events == nil {
		return
	}
	event.OccurredAt = time.Now()
	if err := d.Events.Publish(ctx, subject, event); err != nil {
		d.log().Warn("failed to publish transaction event",
			zap.String("subject", subject),
			zap.Uint("order_id", event.OrderID),
			zap.Error(err))
	}
}

// finish logs mutation errors after a confirmed operation and notifies the
// admins, since the order and PayEx now disagree.
func (d *Dependencies) finish(workflow string, order *model.Order, errs []error) error {
	if len(errs) == 0 {
		WorkflowOutcomes.WithLabelValues(workflow, "success").Inc()
		return nil
	}
	err := errors.Join(errs...)
	d.log().Error("PayEx operation succeeded but order update failed",
		zap.String("workflow", workflow),
		zap.Uint("order_id", order.ID),
		zap.Error(err))
	d.Notifier.ReportError(fmt.Sprintf("PayEx %s of order %d succeeded but the order could not be updated: %v", workflow, order.ID, err))
	WorkflowOutcomes.WithLabelValues(workflow, "partial").Inc()
	return fmt.Errorf("%s order %d: %w", workflow, order.ID, err)
}

// transactionNumber prefers the order's reference over the stored one.
func transactionNumber(order *model.Order, record *model.TransactionRecord) string {
	if ref := order.TransactionReference(); ref != "" {
		return ref
	}
	return record.TransactionNumber
}
