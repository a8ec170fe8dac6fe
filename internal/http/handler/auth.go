package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"propertyapi/internal/auth"
)

type tokenLoginRequest struct {
	Token string `json:"token"`
}

// TokenLogin godoc
// @Summary Exchange the access token for an admin session descriptor
// @Tags auth
// @Accept json
// @Produce json
// @Param body body tokenLoginRequest true "Token"
// @Success 200 {object} auth.LoginResult
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /auth/token-login [post]
func TokenLogin(guard *auth.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req tokenLoginRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
			}
		}
		if strings.TrimSpace(req.Token) == "" {
			return writeError(c, fiber.StatusBadRequest, "TOKEN_REQUIRED", "token is required")
		}

		res, err := guard.Login(req.Token)
		if err != nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
		}
		return c.JSON(res)
	}
}
