package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "shopcart/internal/log"
	"shopcart/internal/services"
)

// RequireUser authenticates the bearer token and loads the user into
// request locals. Absent or invalid credentials get the uniform 401 body.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return respondUnauthenticated(c)
		}
		u, claims, err := auth.Authenticate(strings.TrimPrefix(header, prefix))
		if err != nil {
			applog.Security(c, "auth.token.reject", nil)
			return respondUnauthenticated(c)
		}
		c.Locals("user", u)
		c.Locals("user_id", u.ID)
		c.Locals("claims", claims)
		return c.Next()
	}
}
