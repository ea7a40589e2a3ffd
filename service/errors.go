package service

import (
	"errors"
	"fmt"

	"payexsync/dto/model"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderLocked   = errors.New("order is locked by another operation")
)

// Lookup validation codes.
const (
	CodeServiceUnavailable = "service_unavailable"
	CodeCountryMissing     = "country_missing"
	CodePostcodeMissing    = "postcode_missing"
	CodeInvalidSSN         = "invalid_ssn"
	CodeGatewayError       = "gateway_error"
)

// ValidationError is a user facing lookup error. Message is safe to show
// to the customer.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GatewayRejection is a response whose status triple is not all "OK".
type GatewayRejection struct {
	Operation string
	Result    *model.GatewayOperationResult
}

func (e *GatewayRejection) Error() string {
	return fmt.Sprintf("PxOrder.%s rejected: %s (%s)", e.Operation, e.Result.ErrorCode, e.Result.Description)
}

// GatewayUnavailable wraps a transport failure or timeout.
type GatewayUnavailable struct {
	Operation string
	Err       error
}

func (e *GatewayUnavailable) Error() string {
	return fmt.Sprintf("PxOrder.%s unavailable: %v", e.Operation, e.Err)
}

func (e *GatewayUnavailable) Unwrap() error {
	return e.Err
}

// ConfigurationError means no usable gateway is bound to the payment method.
type ConfigurationError struct {
	PaymentMethod string
	Err           error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("payment gateway %q is not configured: %v", e.PaymentMethod, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// failureDetails returns the error code and description reported to the
// shop for a failed gateway call.
func failureDetails(err error) (code, description string) {
	var rejection *GatewayRejection
	if errors.As(err, &rejection) {
		return rejection.Result.ErrorCode, rejection.Result.Description
	}
	var unavailable *GatewayUnavailable
	if errors.As(err, &unavailable) {
		return "UNAVAILABLE", unavailable.Err.Error()
	}
	return "ERROR", err.Error()
}
