package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the fiber locals key holding verified token claims.
const ClaimsKey = "claims"

// AnonymousOperator names requests made while auth is disabled.
const AnonymousOperator = "anonymous"

var ErrNoClaims = errors.New("no token claims on request")

// ClaimsFrom returns the verified claims the auth middleware attached.
func ClaimsFrom(c *fiber.Ctx) (*Claims, error) {
	claims, ok := c.Locals(ClaimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}

// Operator is the token subject behind the request, for audit logs.
func Operator(c *fiber.Ctx) string {
	claims, err := ClaimsFrom(c)
	if err != nil || claims.Subject == "" {
		return AnonymousOperator
	}
	return claims.Subject
}
