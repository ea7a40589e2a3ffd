package handler

import (
	"errors"

	"payexsync/dto/http"
	"payexsync/pkg/response"
	"payexsync/service"

	"github.com/gofiber/fiber/v2"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// ProcessSSN looks up the billing address of a social security number. The
// response is always 200 with a success flag, as the checkout script
// expects.
func (h *Handler) ProcessSSN(c *fiber.Ctx) error {
	span, spanCtx := apm.StartSpan(c.UserContext(), "ProcessSSN", "handler")
	defer span.End()

	var form http.AddressLookupForm
	if err := c.BodyParser(&form); err != nil {
		return response.ResponseFailure(c, fiber.StatusOK, "Invalid request")
	}

	result, err := h.Lookup.Lookup(spanCtx, service.AddressLookupInput{
		Country:   form.BillingCountry,
		Postcode:  form.BillingPostcode,
		SSN:       form.SocialSecurityNumber,
		IPAddress: c.IP(),
	})
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			return response.ResponseFailure(c, fiber.StatusOK, validationErr.Message)
		}
		h.log().Error("address lookup failed", zap.Error(err))
		return response.ResponseFailure(c, fiber.StatusOK, "PayEx is not available right now, please try again later")
	}

	return response.ResponseSuccess(c, fiber.StatusOK, result)
}
