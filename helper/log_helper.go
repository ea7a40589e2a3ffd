package helper

import (
	"time"

	"payexsync/config"
)

// PaymentHelpers provides logging helpers for one PayEx gateway.
type PaymentHelpers struct {
	PaymentMethod string
}

func NewPaymentHelpers(paymentMethod string) *PaymentHelpers {
	return &PaymentHelpers{
		PaymentMethod: paymentMethod,
	}
}

// LogTransactionError logs a rejected or failed gateway operation.
func (ph *PaymentHelpers) LogTransactionError(orderID uint, transactionID, errorMsg string, data map[string]interface{}) {
	entry := config.LogEntry{
		TransactionID: transactionID,
		OrderID:       orderID,
		Status:        "error",
		Error:         errorMsg,
		Data:          data,
	}
	config.LogManager.LogPayment(ph.PaymentMethod, "ERROR", "Transaction failed", entry)
}

// LogTransactionSuccess logs a confirmed capture or cancel.
func (ph *PaymentHelpers) LogTransactionSuccess(orderID uint, transactionID, status string, amount int64) {
	entry := config.LogEntry{
		TransactionID: transactionID,
		OrderID:       orderID,
		Amount:        amount,
		Status:        status,
	}
	config.LogManager.LogPayment(ph.PaymentMethod, "INFO", "Transaction updated", entry)
}

// LogAPICall logs one PxOrder round trip. Request data must not contain the
// encryption key.
func (ph *PaymentHelpers) LogAPICall(endpoint, method string, duration time.Duration, statusCode int, requestData, responseData map[string]interface{}) {
	data := map[string]interface{}{
		"endpoint":    endpoint,
		"method":      method,
		"status_code": statusCode,
	}
	if requestData != nil {
		data["request"] = requestData
	}
	if responseData != nil {
		data["response"] = responseData
	}

	level := "INFO"
	if statusCode >= 400 || statusCode == 0 {
		level = "WARN"
	}
	config.LogManager.LogPayment(ph.PaymentMethod, level, "PxOrder API call", config.LogEntry{
		Duration: duration,
		Data:     data,
	})
}

// LogValidation logs rejected lookup input. Valid input is not logged.
func (ph *PaymentHelpers) LogValidation(isValid bool, validationErrors []string, data map[string]interface{}) {
	if isValid {
		return
	}

	logData := map[string]interface{}{
		"validation_status": "invalid",
		"validation_errors": validationErrors,
	}
	for k, v := range data {
		logData[k] = v
	}
	config.LogManager.LogPayment(ph.PaymentMethod, "WARN", "Validation failed", config.LogEntry{
		Status: "invalid",
		Data:   logData,
	})
}

var (
	PaymentLogger    = NewPaymentHelpers(config.GatewayPayment)
	BankDebitLogger  = NewPaymentHelpers(config.GatewayBankDebit)
	InvoiceLogger    = NewPaymentHelpers(config.GatewayInvoice)
	FactoringLogger  = NewPaymentHelpers(config.GatewayFactoring)
	WyWalletLogger   = NewPaymentHelpers(config.GatewayWyWallet)
	MasterPassLogger = NewPaymentHelpers(config.GatewayMasterPass)
	SwishLogger      = NewPaymentHelpers(config.GatewaySwish)
	AdminLogger      = NewPaymentHelpers(config.PAYMENT_ADMIN)
)

// LoggerFor returns the helper of gatewayID, creating one for unknown ids.
func LoggerFor(gatewayID string) *PaymentHelpers {
	switch gatewayID {
	case config.GatewayPayment:
		return PaymentLogger
	case config.GatewayBankDebit:
		return BankDebitLogger
	case config.GatewayInvoice:
		return InvoiceLogger
	case config.GatewayFactoring:
		return FactoringLogger
	case config.GatewayWyWallet:
		return WyWalletLogger
	case config.GatewayMasterPass:
		return MasterPassLogger
	case config.GatewaySwish:
		return SwishLogger
	}
	return NewPaymentHelpers(gatewayID)
}
