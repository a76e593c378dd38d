package middleware

import (
	"context"
	"strings"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	// AccessTokenCookie holds "Bearer <jwt>".
	AccessTokenCookie = "access_token"
	// RefreshTokenCookie holds the opaque refresh token.
	RefreshTokenCookie = "refresh_token"

	userLocalKey = "user"
)

// Authenticator resolves a raw access token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*models.User, error)
}

// AuthRequired is a Fiber middleware that resolves the caller from the
// access token cookie or, failing that, the Authorization header.
func AuthRequired(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(AccessTokenCookie)
		if token == "" {
			if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
				token = header
			}
		}
		if token == "" {
			return unauthorized(c)
		}

		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// AdminOnly rejects authenticated callers without the admin flag. It must
// run after AuthRequired.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c)
		}
		if !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Not enough permissions",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalKey).(*models.User)
	return user
}

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": services.ErrUnauthenticated.Error(),
	})
}
