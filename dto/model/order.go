package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusOnHold     OrderStatus = "on-hold"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusFailed     OrderStatus = "failed"
)

// Order mirrors the host shop's order row. This service never creates orders.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	PaymentMethod string          `gorm:"type:VARCHAR(64);not null" json:"payment_method"`
	Total         decimal.Decimal `gorm:"type:NUMERIC(12,3);not null" json:"total"`
	Currency      string          `gorm:"type:VARCHAR(3)" json:"currency"`
	Status        OrderStatus     `gorm:"type:VARCHAR(20);not null" json:"status"`
	TransactionID *string         `gorm:"type:VARCHAR(64)" json:"transaction_id"`
	PaidAt        *time.Time      `json:"paid_at"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	Notes         []OrderNote     `gorm:"foreignKey:OrderID" json:"notes,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionReference returns the stored PayEx transaction number or "".
func (o *Order) TransactionReference() string {
	if o.TransactionID == nil {
		return ""
	}
	return *o.TransactionID
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index;not null" json:"order_id"`
	Name      string          `gorm:"type:VARCHAR(255);not null" json:"name"`
	Qty       int             `gorm:"not null" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:NUMERIC(12,3);not null" json:"unit_price"`
	VatRate   decimal.Decimal `gorm:"type:NUMERIC(5,2);not null" json:"vat_rate"`
	VatAmount decimal.Decimal `gorm:"type:NUMERIC(12,3);not null" json:"vat_amount"`
	Total     decimal.Decimal `gorm:"type:NUMERIC(12,3);not null" json:"total"`
}

type OrderNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	Note      string    `gorm:"type:TEXT;not null" json:"note"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
