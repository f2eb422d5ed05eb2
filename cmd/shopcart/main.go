package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopcart/internal/config"
	"shopcart/internal/http/handlers"
	applog "shopcart/internal/log"
	"shopcart/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log detail, return a generic body; internals never reach the
			// client.
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Something went wrong. Please try again.",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- Routes ----------
	deps := handlers.NewDeps(db, cfg)
	requireUser := handlers.RequireUser(deps.Auth)

	credLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.auth.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many attempts. Please try again later.",
			})
		},
	})

	auth := app.Group("/auth")
	auth.Post("/register", credLimiter, deps.AuthHandler.Register)
	auth.Post("/login", credLimiter, deps.AuthHandler.Login)
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

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
