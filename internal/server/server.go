// Package server assembles the fiber app: templates, middleware and routes.
package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"bludify/internal/config"
	"bludify/internal/content"
	"bludify/internal/http/handlers"
	applog "bludify/internal/log"
	"bludify/internal/theme"
	"bludify/web"
)

// BodyLimit caps request bodies, bulk CSV uploads included.
const BodyLimit = 1 << 20 // 1 MiB

// New builds the app. The product catalog is read from db once, here.
func New(cfg config.Config, db *sqlx.DB) (*fiber.App, error) {
	site, err := content.LoadSite()
	if err != nil {
		return nil, err
	}
	deps, err := handlers.NewDeps(db, cfg, site)
	if err != nil {
		return nil, err
	}

	engine := html.NewFileSystem(http.FS(web.Templates()), ".html")
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	engine.Reload(cfg.TemplateReload)

	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: BodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) && fe.Code == fiber.StatusRequestEntityTooLarge {
				applog.Security(c, "body.too_large", nil)
				return c.Status(fe.Code).SendString("Request too large")
			}
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			if rerr := handlers.Message(c, fiber.StatusInternalServerError, "Something went wrong. Please try again."); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("Too many requests. Please slow down.")
		},
	}))
	app.Use(theme.Middleware())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return handlers.Message(c, fiber.StatusForbidden, "Security check failed. Please refresh and try again.")
		},
	}))

	// ---------- Static assets ----------
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(web.Static()),
		MaxAge: 3600,
	}))

	// ---------- Pages ----------
	app.Get("/", deps.PageHandler.Home)
	app.Get("/marketplace", deps.MarketplaceHandler.Browse)
	app.Get("/marketplace/export.xlsx", deps.MarketplaceHandler.Export)
	app.Get("/verification", deps.PageHandler.Verification)
	app.Get("/login", deps.PageHandler.Login)
	app.Post("/theme", deps.Theme.Toggle)

	// Seller flow; submissions cost a bcrypt hash each, so they get their own budget.
	sellLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|sell"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.sell.hit", nil)
			return handlers.Message(c, fiber.StatusTooManyRequests, "Too many submissions. Please try again later.")
		},
	})
	app.Get("/sell", deps.ListingHandler.Form)
	app.Post("/sell", sellLimiter, deps.ListingHandler.Submit)
	app.Post("/sell/bulk", sellLimiter, deps.ListingHandler.Bulk)
	app.Get("/sell/status", sellLimiter, deps.ListingHandler.Status)

	// ---------- API ----------
	api := app.Group("/api/v1")
	api.Get("/products", deps.MarketplaceHandler.List)
	api.Get("/products/:id", deps.MarketplaceHandler.Get)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// 404 fallback
	app.Use(func(c *fiber.Ctx) error {
		return handlers.Message(c, fiber.StatusNotFound, "Page not found")
	})
	return app, nil
}
