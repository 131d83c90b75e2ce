package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"

	"github.com/mqforge/mqforge/internal/core/models"
)

// JwtMiddleware protects a route with bearer token authentication.
func JwtMiddleware(jwtKey string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(jwtKey)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(models.UnauthorizedErrorResponse{
				Error: "missing or malformed JWT",
			})
		},
	})
}
