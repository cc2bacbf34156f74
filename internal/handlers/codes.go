package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	domainErrors "pixfacil/internal/errors"
	"pixfacil/internal/services/brcode"
	"pixfacil/internal/services/payment"
	"pixfacil/internal/utils/response"
)

const maxImageSize = 1024

func (h *Handler) GenerateCode(c *fiber.Ctx) error {
	var input payment.CodeRequest
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	code, err := h.payments.GenerateCode(input)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Code generated", code)
}

// CodeImage renders a generated code as PNG. ?size= overrides the
// configured size.
func (h *Handler) CodeImage(c *fiber.Ctx) error {
	rec, ok := h.store.GetHistoryRecord(c.Params("id"))
	if !ok {
		return handleError(c, domainErrors.ErrCodeNotFound)
	}

	size := h.qrSize
	if s := c.Query("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > maxImageSize {
			return response.BadRequest(c, "size must be between 1 and 1024")
		}
		size = n
	}

	png, err := brcode.Render(rec.Payload, size)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "private, max-age=86400")
	return c.Send(png)
}

// VerifyCode checks a payload's checksum and returns its decoded fields.
func (h *Handler) VerifyCode(c *fiber.Ctx) error {
	var input struct {
		Payload string `json:"pixCode"`
	}
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	decoded, err := brcode.Decode(input.Payload)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"valid": false,
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"valid": true,
		"data":  decoded,
	})
}

// ScanCode reads a payload out of an uploaded QR image (base64 or data
// URL) and decodes it like VerifyCode.
func (h *Handler) ScanCode(c *fiber.Ctx) error {
	var input struct {
		Image string `json:"image"`
	}
	if err := c.BodyParser(&input); err != nil || input.Image == "" {
		return invalidBody(c)
	}

	text, err := brcode.ScanBase64(input.Image)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"valid": false,
			"error": err.Error(),
		})
	}

	decoded, err := brcode.Decode(text)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"valid":   false,
			"pixCode": text,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"valid":   true,
		"pixCode": text,
		"data":    decoded,
	})
}
