package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pixfacil/internal/domain/pix"
	"pixfacil/internal/utils/response"
)

// ListTransactions supports ?keyId= and ?status=pending.
func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	var txs []pix.Transaction
	switch {
	case c.Query("keyId") != "":
		txs = h.store.TransactionsByKey(c.Query("keyId"))
	case c.Query("status") == string(pix.StatusPending):
		txs = h.store.PendingTransactions()
	default:
		txs = h.store.Transactions()
	}
	return response.Success(c, "Transactions retrieved", txs)
}

func (h *Handler) UpdateTransactionStatus(c *fiber.Ctx) error {
	var input struct {
		Status pix.TransactionStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	tx, err := h.payments.UpdateTransactionStatus(c.Params("id"), input.Status)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Transaction updated", tx)
}
