package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	domainErrors "pixfacil/internal/errors"
	"pixfacil/internal/utils/response"
	"pixfacil/internal/validation"
)

var statusByCode = map[string]int{
	domainErrors.ErrKeyNotFound.Code:          fiber.StatusNotFound,
	domainErrors.ErrNoPrimaryKey.Code:         fiber.StatusNotFound,
	domainErrors.ErrCodeNotFound.Code:         fiber.StatusNotFound,
	domainErrors.ErrTransactionNotFound.Code:  fiber.StatusNotFound,
	domainErrors.ErrKeyLimitReached.Code:      fiber.StatusConflict,
	domainErrors.ErrCodeCancelled.Code:        fiber.StatusConflict,
	domainErrors.ErrTransactionClosed.Code:    fiber.StatusConflict,
	domainErrors.ErrCancelRequiresReason.Code: fiber.StatusConflict,
}

// handleError maps service errors onto responses.
func handleError(c *fiber.Ctx, err error) error {
	var v *validation.Validator
	if errors.As(err, &v) {
		return response.ValidationError(c, v.Errors)
	}

	if de, ok := domainErrors.As(err); ok {
		status, found := statusByCode[de.Code]
		if !found {
			status = fiber.StatusBadRequest
		}
		return response.CodedError(c, status, de.Code, de.Message)
	}

	log.Printf("⚠️ %s %s: %v", c.Method(), c.Path(), err)
	return response.ServerError(c, "Internal server error")
}

func invalidBody(c *fiber.Ctx) error {
	return response.BadRequest(c, "Invalid request body")
}
