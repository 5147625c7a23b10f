package middleware

import (
	"strings"

	"github.com/AnnaHort/phonebook-auth/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware authenticates the bearer token and stashes the resolved
// user id in locals. The service rejects tokens that no longer match the
// record's stored session token.
func AuthMiddleware(svc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := svc.AuthorizeToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized",
			})
		}

		ctx.Locals("userID", user.ID)
		ctx.Locals("userEmail", user.Email)
		return ctx.Next()
	}
}

// IdentityMiddleware authenticates by token signature only, without the
// stored-session match. Used by logout so it stays idempotent after the
// session token has already been cleared.
func IdentityMiddleware(svc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		user, err := svc.IdentifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized",
			})
		}

		ctx.Locals("userID", user.ID)
		ctx.Locals("userEmail", user.Email)
		return ctx.Next()
	}
}
