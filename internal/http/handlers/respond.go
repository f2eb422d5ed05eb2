package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopcart/internal/domain"
	"shopcart/internal/validate"
)

// Response envelope: success {success, message?, data} — failure
// {success:false, message, errors?}.

func respondData(c *fiber.Ctx, status int, message string, data fiber.Map) error {
	body := fiber.Map{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

func respondValidation(c *fiber.Ctx, errs validate.Errors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  errs,
	})
}

func respondUnauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Unauthenticated. Please provide a valid token.",
	})
}

// currentUser returns the user the authz middleware resolved. Routes using
// it are always registered behind RequireUser.
func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
