package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"pixfacil/internal/domain/pix"
	domainErrors "pixfacil/internal/errors"
	"pixfacil/internal/store"
	"pixfacil/internal/utils/pagination"
	"pixfacil/internal/utils/response"
)

const dayLayout = "2006-01-02"

// ListHistory supports ?q=, ?day=YYYY-MM-DD, ?status= and pagination.
func (h *Handler) ListHistory(c *fiber.Ctx) error {
	filter := store.HistoryFilter{
		Query:  c.Query("q"),
		Status: pix.HistoryStatus(c.Query("status")),
	}

	switch filter.Status {
	case "", pix.HistoryAll, pix.HistoryPending, pix.HistoryReceived, pix.HistoryCancelled:
	default:
		return response.BadRequest(c, "status must be one of all, pending, received, cancelled")
	}

	if d := c.Query("day"); d != "" {
		day, err := time.ParseInLocation(dayLayout, d, time.Local)
		if err != nil {
			return response.BadRequest(c, "day must be formatted as YYYY-MM-DD")
		}
		filter.Day = &day
	}

	p := pagination.ParseFromRequest(c)
	page := pagination.Slice(&p, h.store.FilterHistory(filter))
	return c.JSON(pagination.Response(p, page))
}

func (h *Handler) GetHistory(c *fiber.Ctx) error {
	rec, ok := h.store.GetHistoryRecord(c.Params("id"))
	if !ok {
		return handleError(c, domainErrors.ErrCodeNotFound)
	}
	return response.Success(c, "Code retrieved", rec)
}

func (h *Handler) SetReceived(c *fiber.Ctx) error {
	var input struct {
		Received *bool `json:"received"`
	}
	if err := c.BodyParser(&input); err != nil || input.Received == nil {
		return invalidBody(c)
	}

	rec, err := h.payments.MarkReceived(c.Params("id"), *input.Received)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Code updated", rec)
}

func (h *Handler) CancelCode(c *fiber.Ctx) error {
	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	rec, err := h.payments.Cancel(c.Params("id"), input.Reason)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Code cancelled", rec)
}

func (h *Handler) DeleteHistory(c *fiber.Ctx) error {
	if err := h.payments.DeleteCode(c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
