package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopcart/internal/config"
	"shopcart/internal/http/handlers"
	"shopcart/internal/repos"
)

// newTestApp wires the real handlers over an in-memory database, mirroring
// the route table in cmd/shopcart (rate limiters left out unless a test
// adds its own).
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	cfg := config.Config{JWTSecret: "test-secret", JWTTTL: time.Hour}

	app := fiber.New()
	app.Use(requestid.New())

	deps := handlers.NewDeps(db, cfg)
	requireUser := handlers.RequireUser(deps.Auth)

	auth := app.Group("/auth")
	auth.Post("/register", deps.AuthHandler.Register)
	auth.Post("/login", deps.AuthHandler.Login)
	auth.Post("/logout", requireUser, deps.AuthHandler.Logout)
	auth.Post("/refresh", requireUser, deps.AuthHandler.Refresh)
	auth.Get("/me", requireUser, deps.AuthHandler.Me)

	products := app.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Get("/:id", deps.ProductHandler.Detail)
	products.Post("/", requireUser, deps.ProductHandler.Create)

	cart := app.Group("/cart", requireUser)
	cart.Get("/", deps.CartHandler.View)
	cart.Get("/count", deps.CartHandler.Count)
	cart.Post("/add", deps.CartHandler.Add)
	cart.Put("/items/:itemId", deps.CartHandler.Update)
	cart.Patch("/items/:itemId", deps.CartHandler.Update)
	cart.Delete("/items/:itemId", deps.CartHandler.Remove)
	cart.Delete("/clear", deps.CartHandler.Clear)

	return app
}

// doJSON issues a request with an optional bearer token and JSON body and
// decodes the JSON response.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 15000)
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("bad JSON body %q: %v", raw, err)
		}
	}
	return resp, out
}

// registerUser creates a user through the API and returns its bearer token.
func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/auth/register", "", map[string]any{
		"name":     "Test User",
		"email":    email,
		"password": "Passw0rd!",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: want 201, got %d (%v)", resp.StatusCode, body)
	}
	data := body["data"].(map[string]any)
	tok, _ := data["access_token"].(string)
	if tok == "" {
		t.Fatal("register returned no token")
	}
	return tok
}

func dataOf(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", body)
	}
	return d
}
