package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payexsync/dto/model"

	"go.elastic.co/apm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionRepository stores the PayEx state of each order in
// payex_transactions.
type TransactionRepository struct {
	DB *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

// Get returns nil, nil when the order has no transaction record.
func (r *TransactionRepository) Get(ctx context.Context, orderID uint) (*model.TransactionRecord, error) {
	span, ctx := apm.StartSpan(ctx, "TransactionRepository.Get", "repository")
	defer span.End()

	var record model.TransactionRecord
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching transaction record: %w", err)
	}
	return &record, nil
}

// Set creates or overwrites the record of orderID.
func (r *TransactionRepository) Set(ctx context.Context, orderID uint, statusCode, transactionRef string) error {
	span, ctx := apm.StartSpan(ctx, "TransactionRepository.Set", "repository")
	defer span.End()

	record := model.TransactionRecord{
		OrderID:           orderID,
		TransactionStatus: statusCode,
		TransactionNumber: transactionRef,
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"transaction_status", "transaction_number", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to store transaction record: %w", err)
	}
	return nil
}

// ListPendingAuthorizations returns orders whose transaction is still
// authorized and was last updated before olderThan, oldest first.
func (r *TransactionRepository) ListPendingAuthorizations(ctx context.Context, olderThan time.Time) ([]model.PendingAuthorization, error) {
	span, ctx := apm.StartSpan(ctx, "TransactionRepository.ListPendingAuthorizations", "repository")
	defer span.End()

	var rows []model.PendingAuthorization
	err := r.DB.WithContext(ctx).
		Table("payex_transactions AS t").
		Select(`
			t.order_id,
			o.payment_method,
			o.total,
			o.currency,
			o.status AS order_status,
			t.transaction_number,
			t.updated_at AS authorized_at
		`).
		Joins("JOIN orders o ON o.id = t.order_id").
		Where("t.transaction_status = ? AND t.updated_at <= ?", model.TransactionStatusAuthorize, olderThan).
		Order("t.updated_at").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending authorizations: %w", err)
	}
	return rows, nil
}
