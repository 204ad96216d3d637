package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/purepath/account-service/internal/helper"
)

func AuthMiddleware(auth helper.Auth) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		// 1) try cookie first
		tokenStr := strings.TrimSpace(ctx.Cookies("access_token"))

		// 2) fallback to Authorization header
		if tokenStr == "" {
			tokenStr = strings.TrimSpace(ctx.Get("Authorization"))
		}

		claims, err := auth.VerifyAccessToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals("userID", claims.UserID)
		ctx.Locals("user", claims)
		return ctx.Next()
	}
}
