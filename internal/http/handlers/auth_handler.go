package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	applog "shopcart/internal/log"
	"shopcart/internal/services"
	"shopcart/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func tokenPayload(t services.Token) fiber.Map {
	return fiber.Map{
		"access_token": t.Value,
		"token_type":   "bearer",
		"expires_in":   t.ExpiresIn,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		errs := validate.Errors{}
		errs.Add("body", "The request body is malformed.")
		return respondValidation(c, errs)
	}

	errs := validate.Errors{}
	name, ok := validate.Name(req.Name)
	if !ok {
		errs.Add("name", "The name field is required.")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		errs.Add("email", "The email must be a valid email address.")
	}
	if !validate.Password(req.Password) {
		errs.Add("password", "The password must be at least 8 characters and contain upper case, lower case and numeric characters.")
	}
	if !errs.Empty() {
		return respondValidation(c, errs)
	}

	u, tok, err := h.Auth.Register(name, email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			errs := validate.Errors{}
			errs.Add("email", "The email has already been taken.")
			return respondValidation(c, errs)
		}
		applog.Error(c, "auth.register.fail", err, nil)
		return respondError(c, fiber.StatusInternalServerError, "Failed to register user")
	}

	applog.Audit(c, "auth.register", map[string]any{"email": email})
	data := tokenPayload(tok)
	data["user"] = u
	return respondData(c, fiber.StatusCreated, "User registered successfully", data)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		errs := validate.Errors{}
		errs.Add("body", "The request body is malformed.")
		return respondValidation(c, errs)
	}
	email, ok := validate.Email(req.Email)
	if !ok || req.Password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return respondError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	u, tok, err := h.Auth.Login(email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return respondError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	data := tokenPayload(tok)
	data["user"] = u
	return respondData(c, fiber.StatusOK, "Login successful", data)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, _ := c.Locals("claims").(*jwt.RegisteredClaims)
	if claims == nil {
		return respondUnauthenticated(c)
	}
	if err := h.Auth.Logout(claims); err != nil {
		applog.Error(c, "auth.logout.fail", err, nil)
		return respondError(c, fiber.StatusInternalServerError, "Failed to log out")
	}
	applog.Audit(c, "auth.logout", nil)
	return respondData(c, fiber.StatusOK, "Successfully logged out", fiber.Map{})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	u := currentUser(c)
	claims, _ := c.Locals("claims").(*jwt.RegisteredClaims)
	if u == nil || claims == nil {
		return respondUnauthenticated(c)
	}
	tok, err := h.Auth.Refresh(u.ID, claims)
	if err != nil {
		applog.Error(c, "auth.refresh.fail", err, nil)
		return respondError(c, fiber.StatusInternalServerError, "Failed to refresh token")
	}
	return respondData(c, fiber.StatusOK, "", tokenPayload(tok))
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return respondData(c, fiber.StatusOK, "", fiber.Map{"user": currentUser(c)})
}
