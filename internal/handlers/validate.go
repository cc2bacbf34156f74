package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pixfacil/internal/domain/pix"
	"pixfacil/internal/utils/response"
	"pixfacil/internal/validation"
)

// ValidateKey checks ?value= against ?type= and returns the display form.
func (h *Handler) ValidateKey(c *fiber.Ctx) error {
	t, err := pix.ParseKeyType(c.Query("type"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	value := c.Query("value")

	valid := validation.ValidateKey(t, value)
	out := fiber.Map{"type": t, "valid": valid}
	if valid {
		out["formatted"] = validation.MaskKey(t, value)
	}
	return c.JSON(out)
}
