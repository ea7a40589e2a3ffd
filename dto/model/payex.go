package model

import "time"

const StatusOK = "OK"

// GatewaySettings holds the credentials and enablement flag of one PayEx
// payment method. Loaded on every invocation.
type GatewaySettings struct {
	ID            string `bson:"slug" json:"id"`
	Title         string `bson:"title" json:"title"`
	Enabled       bool   `bson:"enabled" json:"enabled"`
	AccountNumber string `bson:"account_no" json:"account_no"`
	EncryptedKey  string `bson:"encrypted_key" json:"-"`
	TestMode      bool   `bson:"testmode" json:"testmode"`
}

type CaptureRequest struct {
	AccountNumber     string
	TransactionNumber string
	Amount            int64
	OrderID           uint
	VatAmount         int64
	AdditionalValues  string
}

type CancelRequest struct {
	AccountNumber     string
	TransactionNumber string
}

type AddressLookupRequest struct {
	AccountNumber string
	PaymentMethod string
	SSN           string
	ZipCode       string
	CountryCode   string
	IPAddress     string
}

// GatewayOperationResult is the decoded PxOrder response. Only the fields
// relevant to the operation are populated.
type GatewayOperationResult struct {
	Code        string `xml:"status>code" json:"code"`
	Description string `xml:"status>description" json:"description"`
	ErrorCode   string `xml:"status>errorCode" json:"errorCode"`

	TransactionStatus string `xml:"transactionStatus" json:"transactionStatus,omitempty"`
	TransactionNumber string `xml:"transactionNumber" json:"transactionNumber,omitempty"`

	Name          string `xml:"name" json:"name,omitempty"`
	StreetAddress string `xml:"streetAddress" json:"streetAddress,omitempty"`
	CoAddress     string `xml:"coAddress" json:"coAddress,omitempty"`
	ZipCode       string `xml:"zipCode" json:"zipCode,omitempty"`
	City          string `xml:"city" json:"city,omitempty"`
	CountryCode   string `xml:"countryCode" json:"countryCode,omitempty"`
}

// IsOK reports success. All three status fields must read "OK"; any
// disagreement counts as a failure.
func (r *GatewayOperationResult) IsOK() bool {
	return r.Code == StatusOK && r.Description == StatusOK && r.ErrorCode == StatusOK
}

type AddressLookupResult struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	Postcode  string `json:"postcode"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// TransactionEvent is published after PayEx confirmed a capture or cancel.
type TransactionEvent struct {
	OrderID           uint      `json:"order_id"`
	PaymentMethod     string    `json:"payment_method"`
	TransactionNumber string    `json:"transaction_number"`
	TransactionStatus string    `json:"transaction_status"`
	Amount            int64     `json:"amount,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}
