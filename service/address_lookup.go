package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"payexsync/config"
	"payexsync/dto/model"
	"payexsync/helper"

	"go.uber.org/zap"
)

const workflowLookup = "address_lookup"

// PxOrder payment method codes for GetAddressByPaymentMethod.
const (
	LookupMethodSweden = "PXFINANCINGINVOICESE"
	LookupMethodNorway = "PXFINANCINGINVOICENO"
)

var invalidSSNPattern = regexp.MustCompile(`(?i)\bInvalid parameter:SocialSecurityNumber\b`)

type AddressLookupInput struct {
	Country   string
	Postcode  string
	SSN       string
	IPAddress string
}

// AddressLookupWorkflow fetches a customer's billing address from PayEx
// given a social security number and postcode.
type AddressLookupWorkflow struct {
	Gateways GatewayResolver
	Logger   *zap.Logger
}

func NewAddressLookupWorkflow(gateways GatewayResolver, logger *zap.Logger) *AddressLookupWorkflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressLookupWorkflow{Gateways: gateways, Logger: logger}
}

// Lookup validates the input, calls PxOrder.GetAddressByPaymentMethod and
// normalizes the answer. Input problems and rejections are returned as
// *ValidationError; transport failures as *GatewayUnavailable.
func (w *AddressLookupWorkflow) Lookup(ctx context.Context, in AddressLookupInput) (*model.AddressLookupResult, error) {
	in.Country = strings.TrimSpace(in.Country)
	in.Postcode = strings.TrimSpace(in.Postcode)
	in.SSN = strings.TrimSpace(in.SSN)
	in.IPAddress = strings.TrimSpace(in.IPAddress)

	gateway, err := w.Gateways.Resolve(ctx, config.GatewayFactoring)
	if err != nil || !gateway.Settings().Enabled {
		w.Logger.Warn("financing invoice gateway unavailable for address lookup", zap.Error(err))
		return nil, w.invalid(in, CodeServiceUnavailable, "Financing Invoice method is inactive")
	}
	if in.Country == "" {
		return nil, w.invalid(in, CodeCountryMissing, "Please select country")
	}
	if in.Postcode == "" {
		return nil, w.invalid(in, CodePostcodeMissing, "Please enter postcode")
	}

	req := model.AddressLookupRequest{
		AccountNumber: gateway.Settings().AccountNumber,
		PaymentMethod: LookupMethodFor(in.Country),
		SSN:           in.SSN,
		ZipCode:       in.Postcode,
		CountryCode:   in.Country,
		IPAddress:     in.IPAddress,
	}

	result, err := gateway.LookupAddress(ctx, req)
	if err := checkResult("GetAddressByPaymentMethod", result, err); err != nil {
		var rejection *GatewayRejection
		if errors.As(err, &rejection) {
			if invalidSSNPattern.MatchString(rejection.Result.Description) {
				return nil, w.invalid(in, CodeInvalidSSN, "Invalid Social Security Number")
			}
			return nil, w.invalid(in, CodeGatewayError, rejection.Result.ErrorCode+"("+rejection.Result.Description+")")
		}
		w.Logger.Error("address lookup failed", zap.Error(err))
		WorkflowOutcomes.WithLabelValues(workflowLookup, "unavailable").Inc()
		return nil, err
	}

	firstName, lastName := helper.ParseFullName(result.Name)
	WorkflowOutcomes.WithLabelValues(workflowLookup, "success").Inc()

	return &model.AddressLookupResult{
		FirstName: firstName,
		LastName:  lastName,
		Address1:  result.StreetAddress,
		Address2:  CareOf(result.CoAddress),
		Postcode:  result.ZipCode,
		City:      result.City,
		Country:   result.CountryCode,
	}, nil
}

func (w *AddressLookupWorkflow) invalid(in AddressLookupInput, code, message string) error {
	helper.FactoringLogger.LogValidation(false, []string{message}, map[string]interface{}{
		"code":     code,
		"country":  in.Country,
		"postcode": in.Postcode,
	})
	WorkflowOutcomes.WithLabelValues(workflowLookup, code).Inc()
	return &ValidationError{Code: code, Message: message}
}

// LookupMethodFor returns the PxOrder method code for a billing country.
func LookupMethodFor(country string) string {
	if country == "SE" {
		return LookupMethodSweden
	}
	return LookupMethodNorway
}

// CareOf formats a co-address as address line 2. The "c/o" prefix is added
// only when missing.
func CareOf(coAddress string) string {
	coAddress = strings.TrimSpace(coAddress)
	if coAddress == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(coAddress), "c/o ") {
		return coAddress
	}
	return "c/o " + coAddress
}
