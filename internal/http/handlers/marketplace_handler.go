package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"bludify/internal/domain"
	"bludify/internal/log"
	"bludify/internal/services"
	"bludify/internal/validate"
)

type MarketplaceHandler struct {
	Catalog *services.CatalogService
}

// filterParams reads q and category. On failure it returns the name of the
// offending field.
func filterParams(c *fiber.Ctx) (q, category, badField string) {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return "", domain.AllCategories, "q"
	}
	category, ok = validate.Category(c.Query("category"))
	if !ok {
		return q, domain.AllCategories, "category"
	}
	return q, category, ""
}

// GET /marketplace
func (h *MarketplaceHandler) Browse(c *fiber.Ctx) error {
	q, category, bad := filterParams(c)
	if bad != "" {
		log.Security(c, "validation.fail", map[string]any{"field": bad})
		res := h.Catalog.Browse("", category)
		res.Products = []domain.Product{}
		return render(c.Status(fiber.StatusBadRequest), "marketplace", fiber.Map{
			"Q": "", "Result": res, "Nav": "marketplace", "Title": "Marketplace",
			"Err": "Enter a valid search (up to 100 characters, no < or >)",
		})
	}
	return render(c, "marketplace", fiber.Map{
		"Q": q, "Result": h.Catalog.Browse(q, category), "Nav": "marketplace", "Title": "Marketplace",
	})
}

// GET /marketplace/export.xlsx
func (h *MarketplaceHandler) Export(c *fiber.Ctx) error {
	q, category, bad := filterParams(c)
	if bad != "" {
		log.Security(c, "validation.fail", map[string]any{"field": bad})
		return c.Status(fiber.StatusBadRequest).SendString("invalid filter")
	}
	res := h.Catalog.Browse(q, category)
	var buf bytes.Buffer
	if err := services.WriteXLSX(&buf, res.Products); err != nil {
		return err
	}
	log.Audit(c, "catalog.export", map[string]any{"q": q, "category": category, "count": res.Count()})
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment("bludify-catalog.xlsx")
	return c.Send(buf.Bytes())
}

type productList struct {
	Query    string           `json:"query"`
	Category string           `json:"category"`
	Count    int              `json:"count"`
	Total    int              `json:"total"`
	Products []domain.Product `json:"products"`
}

// GET /api/v1/products
func (h *MarketplaceHandler) List(c *fiber.Ctx) error {
	q, category, bad := filterParams(c)
	if bad != "" {
		log.Security(c, "validation.fail", map[string]any{"field": bad})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid " + bad})
	}
	res := h.Catalog.Browse(q, category)
	return c.JSON(productList{
		Query: q, Category: res.Category, Count: res.Count(), Total: res.Total, Products: res.Products,
	})
}

// GET /api/v1/products/:id
func (h *MarketplaceHandler) Get(c *fiber.Ctx) error {
	p, ok := h.Catalog.GetProduct(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}
