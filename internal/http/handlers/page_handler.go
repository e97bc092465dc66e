package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bludify/internal/content"
	"bludify/internal/services"
)

// featuredCount is how many products the home page previews.
const featuredCount = 3

type PageHandler struct {
	Site    *content.Site
	Catalog *services.CatalogService
}

// GET /
func (h *PageHandler) Home(c *fiber.Ctx) error {
	return render(c, "home", fiber.Map{"Site": h.Site, "Featured": h.Catalog.Featured(featuredCount)})
}

// GET /verification
func (h *PageHandler) Verification(c *fiber.Ctx) error {
	return render(c, "verification", fiber.Map{"Site": h.Site, "Nav": "verification", "Title": "Verification"})
}

// Login is UI only; there is no account backend behind it.
func (h *PageHandler) Login(c *fiber.Ctx) error {
	signup := c.Query("mode") == "signup"
	title := "Login"
	if signup {
		title = "Sign up"
	}
	return render(c, "login", fiber.Map{"Signup": signup, "Title": title})
}
