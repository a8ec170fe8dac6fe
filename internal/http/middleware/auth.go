package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"propertyapi/internal/auth"
)

// AccessTokenHeader carries the shared secret on protected routes.
const AccessTokenHeader = "X-Access-Token"

// RequireAccessToken rejects requests without the configured secret.
// A missing token yields 401, a wrong one 403. The response body is rendered by
// the app's ErrorHandler.
func RequireAccessToken(guard *auth.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := auth.TokenFromHeaders(c.Get(AccessTokenHeader), c.Get(fiber.HeaderAuthorization))
		if err := guard.Check(token); err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				return fiber.NewError(fiber.StatusUnauthorized, err.Error())
			}
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return c.Next()
	}
}
