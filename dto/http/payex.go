package http

import "time"

// AddressLookupForm is the checkout "Get Profile" form post.
type AddressLookupForm struct {
	BillingCountry       string `form:"billing_country" json:"billing_country"`
	BillingPostcode      string `form:"billing_postcode" json:"billing_postcode"`
	SocialSecurityNumber string `form:"social_security_number" json:"social_security_number"`
}

// TransitionRequest is sent by the shop whenever an order changes status.
type TransitionRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required,nefield=From"`
}

type TransactionStatus struct {
	OrderID           uint      `json:"order_id"`
	TransactionStatus string    `json:"transaction_status"`
	StatusName        string    `json:"status_name"`
	TransactionNumber string    `json:"transaction_number"`
	UpdatedAt         time.Time `json:"updated_at"`
}
