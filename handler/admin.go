package handler

import (
	"time"

	"payexsync/dto/http"
	"payexsync/helper"
	"payexsync/pkg/response"
	"payexsync/service"

	"github.com/gofiber/fiber/v2"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// GetNotices returns admin notices not shown yet. Each notice is returned
// once.
func (h *Handler) GetNotices(c *fiber.Ctx) error {
	notices, err := h.Notices.TakePending(c.UserContext())
	if err != nil {
		h.log().Error("failed to fetch admin notices", zap.Error(err))
		return response.ResponseFailure(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	return response.ResponseSuccess(c, fiber.StatusOK, notices)
}

func (h *Handler) GetTransaction(c *fiber.Ctx) error {
	span, spanCtx := apm.StartSpan(c.UserContext(), "GetTransaction", "handler")
	defer span.End()

	orderID, err := c.ParamsInt("orderId")
	if err != nil || orderID <= 0 {
		return response.ResponseFailure(c, fiber.StatusBadRequest, "Invalid order id")
	}

	record, err := h.Transactions.Get(spanCtx, uint(orderID))
	if err != nil {
		h.log().Error("failed to fetch transaction", zap.Int("order_id", orderID), zap.Error(err))
		return response.ResponseFailure(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if record == nil {
		return response.ResponseFailure(c, fiber.StatusNotFound, "Transaction not found")
	}

	return response.ResponseSuccess(c, fiber.StatusOK, http.TransactionStatus{
		OrderID:           record.OrderID,
		TransactionStatus: record.TransactionStatus,
		StatusName:        helper.GetTransactionStatusName(record.TransactionStatus),
		TransactionNumber: record.TransactionNumber,
		UpdatedAt:         record.UpdatedAt,
	})
}

// AuthorizationReport downloads an XLSX of authorizations older than the
// "days" query parameter (default 0, i.e. all of them).
func (h *Handler) AuthorizationReport(c *fiber.Ctx) error {
	span, spanCtx := apm.StartSpan(c.UserContext(), "AuthorizationReport", "handler")
	defer span.End()

	days := c.QueryInt("days", 0)
	if days < 0 {
		return response.ResponseFailure(c, fiber.StatusBadRequest, "days must not be negative")
	}

	now := time.Now()
	rows, err := h.Transactions.ListPendingAuthorizations(spanCtx, now.AddDate(0, 0, -days))
	if err != nil {
		h.log().Error("failed to list authorizations", zap.Error(err))
		return response.ResponseFailure(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	report, err := service.GenerateAuthorizationReport(rows, now)
	if err != nil {
		h.log().Error("failed to generate authorization report", zap.Error(err))
		return response.ResponseFailure(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	c.Attachment(service.AuthorizationReportName(now))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Status(fiber.StatusOK).Send(report)
}
