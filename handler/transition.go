package handler

import (
	"errors"

	"payexsync/dto/http"
	"payexsync/dto/model"
	"payexsync/pkg/response"
	"payexsync/service"

	"github.com/gofiber/fiber/v2"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// OrderTransition receives a status change of an order from the shop and
// runs the matching PayEx workflow.
func (h *Handler) OrderTransition(c *fiber.Ctx) error {
	span, spanCtx := apm.StartSpan(c.UserContext(), "OrderTransition", "handler")
	defer span.End()

	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return response.ResponseFailure(c, fiber.StatusBadRequest, "Invalid order id")
	}

	var req http.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.ResponseFailure(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return response.ResponseFailure(c, fiber.StatusBadRequest, err.Error())
	}

	action, err := h.Dispatcher.OnTransition(spanCtx, uint(orderID), model.OrderStatus(req.From), model.OrderStatus(req.To))
	if err == nil {
		return response.ResponseSuccess(c, fiber.StatusOK, fiber.Map{"order_id": orderID, "action": action})
	}

	h.log().Warn("order transition failed",
		zap.Int("order_id", orderID),
		zap.String("action", action),
		zap.Error(err))

	var (
		rejection   *service.GatewayRejection
		unavailable *service.GatewayUnavailable
		cfgErr      *service.ConfigurationError
	)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return response.ResponseFailure(c, fiber.StatusNotFound, "Order not found")
	case errors.Is(err, service.ErrOrderLocked):
		return response.ResponseFailure(c, fiber.StatusConflict, "Order is being processed, try again later")
	case errors.As(err, &rejection), errors.As(err, &unavailable):
		// The order was put back on hold and the admins were notified.
		return response.ResponseFailure(c, fiber.StatusOK, err.Error())
	case errors.As(err, &cfgErr):
		return response.ResponseFailure(c, fiber.StatusUnprocessableEntity, cfgErr.Error())
	}
	return response.ResponseFailure(c, fiber.StatusInternalServerError, "Internal Server Error")
}
