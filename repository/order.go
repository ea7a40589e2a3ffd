package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payexsync/dto/model"
	"payexsync/service"

	"go.elastic.co/apm"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// Load returns the order with its items. Missing orders yield
// service.ErrOrderNotFound.
func (r *OrderRepository) Load(ctx context.Context, orderID uint) (*model.Order, error) {
	span, ctx := apm.StartSpan(ctx, "OrderRepository.Load", "repository")
	defer span.End()

	var order model.Order
	err := r.DB.WithContext(ctx).Preload("Items").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, service.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("error fetching order: %w", err)
	}
	return &order, nil
}

// UpdateStatus sets the status and records message as an order note.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uint, status model.OrderStatus, message string) error {
	span, ctx := apm.StartSpan(ctx, "OrderRepository.UpdateStatus", "repository")
	defer span.End()

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).Where("id = ?", orderID).Update("status", status)
		if result.Error != nil {
			return fmt.Errorf("failed to update order status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("order %d: %w", orderID, service.ErrOrderNotFound)
		}
		if message == "" {
			return nil
		}
		return tx.Create(&model.OrderNote{OrderID: orderID, Note: message}).Error
	})
}

func (r *OrderRepository) AppendNote(ctx context.Context, orderID uint, note string) error {
	span, ctx := apm.StartSpan(ctx, "OrderRepository.AppendNote", "repository")
	defer span.End()

	if err := r.DB.WithContext(ctx).Create(&model.OrderNote{OrderID: orderID, Note: note}).Error; err != nil {
		return fmt.Errorf("failed to append order note: %w", err)
	}
	return nil
}

// MarkPaid stores the transaction reference and payment date. Orders still
// waiting for payment move on to processing.
func (r *OrderRepository) MarkPaid(ctx context.Context, orderID uint, transactionRef string) error {
	span, ctx := apm.StartSpan(ctx, "OrderRepository.MarkPaid", "repository")
	defer span.End()

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		result := tx.Model(&model.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
			"transaction_id": transactionRef,
			"paid_at":        now,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to mark order paid: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("order %d: %w", orderID, service.ErrOrderNotFound)
		}

		return tx.Model(&model.Order{}).
			Where("id = ? AND status IN ?", orderID, []model.OrderStatus{
				model.OrderStatusPending, model.OrderStatusOnHold, model.OrderStatusFailed,
			}).
			Update("status", model.OrderStatusProcessing).Error
	})
}

// Notes returns the notes of an order, oldest first.
func (r *OrderRepository) Notes(ctx context.Context, orderID uint) ([]model.OrderNote, error) {
	var notes []model.OrderNote
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&notes).Error
	return notes, err
}
