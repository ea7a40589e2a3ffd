package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayEx PxOrder transaction status codes.
const (
	TransactionStatusSale       = "0"
	TransactionStatusInitialize = "1"
	TransactionStatusCredit     = "2"
	TransactionStatusAuthorize  = "3"
	TransactionStatusCancel     = "4"
	TransactionStatusFailure    = "5"
	TransactionStatusCapture    = "6"
)

// TransactionRecord is the last known remote state of an order's payment.
// Rows are written once authorization succeeds and are never deleted.
type TransactionRecord struct {
	OrderID           uint      `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	TransactionStatus string    `gorm:"type:VARCHAR(10);not null" json:"transaction_status"`
	TransactionNumber string    `gorm:"type:VARCHAR(64);not null" json:"transaction_number"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TransactionRecord) TableName() string {
	return "payex_transactions"
}

// PendingAuthorization is an order whose PayEx transaction is still only
// authorized.
type PendingAuthorization struct {
	OrderID           uint            `json:"order_id"`
	PaymentMethod     string          `json:"payment_method"`
	Total             decimal.Decimal `json:"total"`
	Currency          string          `json:"currency"`
	OrderStatus       OrderStatus     `json:"order_status"`
	TransactionNumber string          `json:"transaction_number"`
	AuthorizedAt      time.Time       `json:"authorized_at"`
}
