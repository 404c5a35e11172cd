package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/slicehub/pizza-service/internal/auth"
	"github.com/slicehub/pizza-service/internal/config"
	"github.com/slicehub/pizza-service/internal/dto"
)

// JWTProtected rejects requests without a well-formed, correctly signed
// bearer token.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: "unauthorized",
			})
		},
	})
}

// LoadPrincipal runs after JWTProtected: it re-validates the raw token
// through the token service, which also checks revocation against the
// credential store, and stores the resolved principal in locals. A
// revoked token must never pass, so the check is synchronous on every
// request.
func LoadPrincipal(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: "unauthorized",
			})
		}

		principal, err := tokens.Validate(token.Raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: "unauthorized",
			})
		}

		c.Locals("principal", principal)
		c.Locals("raw_token", token.Raw)
		return c.Next()
	}
}

// GetPrincipal extracts the principal set by LoadPrincipal.
func GetPrincipal(c *fiber.Ctx) (*auth.Principal, bool) {
	p, ok := c.Locals("principal").(*auth.Principal)
	return p, ok
}

// GetRawToken returns the bearer token the request authenticated with.
func GetRawToken(c *fiber.Ctx) string {
	raw, _ := c.Locals("raw_token").(string)
	return raw
}
