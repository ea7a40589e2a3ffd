package service

import (
	"context"
	"fmt"
	"time"

	"payexsync/dto/model"

	"go.uber.org/zap"
)

const DefaultLockTTL = 30 * time.Second

// Workflow is a capture or cancel run for one order.
type Workflow interface {
	Run(ctx context.Context, orderID uint) error
}

type transition struct {
	from model.OrderStatus
	to   model.OrderStatus
}

type route struct {
	action   string
	workflow Workflow
}

// OrderStatusDispatcher routes order status transitions to the matching
// workflow. Transitions missing from the table are ignored.
type OrderStatusDispatcher struct {
	routes  map[transition]route
	locker  OrderLocker
	lockTTL time.Duration
	logger  *zap.Logger
}

// NewOrderStatusDispatcher builds the transition table. locker may be nil,
// in which case concurrent transitions of one order are not serialized.
func NewOrderStatusDispatcher(capture, cancel Workflow, locker OrderLocker, logger *zap.Logger) *OrderStatusDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderStatusDispatcher{
		routes: map[transition]route{
			{model.OrderStatusOnHold, model.OrderStatusProcessing}: {workflowCapture, capture},
			{model.OrderStatusOnHold, model.OrderStatusCompleted}:  {workflowCapture, capture},
			{model.OrderStatusOnHold, model.OrderStatusCancelled}:  {workflowCancel, cancel},
		},
		locker:  locker,
		lockTTL: DefaultLockTTL,
		logger:  logger,
	}
}

// SetLockTTL overrides how long an order lock is held at most.
func (d *OrderStatusDispatcher) SetLockTTL(ttl time.Duration) {
	if ttl > 0 {
		d.lockTTL = ttl
	}
}

// Action returns the workflow name bound to a transition, or "" if none.
func (d *OrderStatusDispatcher) Action(from, to model.OrderStatus) string {
	return d.routes[transition{from, to}].action
}

// OnTransition runs the workflow bound to from->to and returns its name.
func (d *OrderStatusDispatcher) OnTransition(ctx context.Context, orderID uint, from, to model.OrderStatus) (string, error) {
	r, ok := d.routes[transition{from, to}]
	if !ok {
		d.logger.Debug("transition ignored",
			zap.Uint("order_id", orderID),
			zap.String("from", string(from)),
			zap.String("to", string(to)))
		return "", nil
	}

	if d.locker != nil {
		unlock, err := d.locker.Lock(ctx, fmt.Sprintf("payex:order:%d", orderID), d.lockTTL)
		if err != nil {
			return r.action, fmt.Errorf("lock order %d: %w", orderID, err)
		}
		defer unlock()
	}

	d.logger.Info("dispatching order transition",
		zap.Uint("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("action", r.action))

	return r.action, r.workflow.Run(ctx, orderID)
}
