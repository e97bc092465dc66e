package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bludify/internal/content"
	"bludify/internal/domain"
	"bludify/internal/log"
	"bludify/internal/services"
	"bludify/internal/validate"
)

type ListingHandler struct {
	Listings *services.ListingService
	Site     *content.Site
}

// sellForm carries what the seller typed back into the form on error.
type sellForm struct {
	Title, Specs, Category, Condition, Asking, Email, Tier string
}

func (h *ListingHandler) page(c *fiber.Ctx, status int, form sellForm, msg string) error {
	if form.Tier == "" {
		form.Tier = "guest"
	}
	return render(c.Status(status), "sell", fiber.Map{
		"Site":        h.Site,
		"Form":        form,
		"Err":         msg,
		"Categories":  domain.Categories[1:],
		"Conditions":  domain.Conditions,
		"MaxBulkRows": services.MaxBulkRows,
		"Nav":         "sell",
		"Title":       "Sell Device",
	})
}

// GET /sell
func (h *ListingHandler) Form(c *fiber.Ctx) error {
	tier, ok := validate.Tier(c.Query("tier"))
	if !ok {
		tier = ""
	}
	return h.page(c, fiber.StatusOK, sellForm{Tier: tier}, "")
}

// POST /sell
func (h *ListingHandler) Submit(c *fiber.Ctx) error {
	form := sellForm{
		Title:     c.FormValue("title"),
		Specs:     c.FormValue("specs"),
		Category:  c.FormValue("category"),
		Condition: c.FormValue("condition"),
		Asking:    c.FormValue("asking"),
		Email:     c.FormValue("email"),
		Tier:      c.FormValue("tier"),
	}
	rc, err := h.Listings.Submit(services.ListingInput{
		Title:     form.Title,
		Specs:     form.Specs,
		Category:  form.Category,
		Condition: form.Condition,
		Asking:    form.Asking,
		Email:     form.Email,
		Tier:      form.Tier,
	})
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		log.Security(c, "validation.fail", map[string]any{"field": ve.Field})
		return h.page(c, fiber.StatusBadRequest, form, "Please check the "+ve.Field+" field.")
	}
	if err != nil {
		return err
	}
	log.Audit(c, "listing.submit", map[string]any{"ref": rc.Listing.ID, "tier": rc.Listing.Tier})
	return render(c.Status(fiber.StatusCreated), "sell_done", fiber.Map{
		"Receipts": []services.Receipt{rc}, "Nav": "sell", "Title": "Submitted",
	})
}

// POST /sell/bulk
func (h *ListingHandler) Bulk(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "file"})
		return h.page(c, fiber.StatusBadRequest, sellForm{}, "Choose a CSV file to upload.")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	receipts, err := h.Listings.SubmitBulk(c.FormValue("tier"), c.FormValue("email"), f)
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		log.Security(c, "validation.fail", map[string]any{"field": ve.Field, "line": ve.Line})
		return h.page(c, fiber.StatusBadRequest, sellForm{}, "Upload rejected: "+ve.Error()+". Nothing was listed.")
	case errors.Is(err, services.ErrBulkNotAllowed):
		log.Security(c, "bulk.denied", map[string]any{"tier": c.FormValue("tier")})
		return h.page(c, fiber.StatusForbidden, sellForm{}, "Bulk upload needs the Power Seller or Business tier.")
	case errors.Is(err, services.ErrEmptyUpload), errors.Is(err, services.ErrTooManyRows):
		log.Security(c, "validation.fail", map[string]any{"field": "file"})
		return h.page(c, fiber.StatusBadRequest, sellForm{}, "Upload rejected: "+err.Error()+".")
	case err != nil:
		return err
	}
	log.Audit(c, "listing.bulk", map[string]any{"count": len(receipts), "tier": receipts[0].Listing.Tier})
	return render(c.Status(fiber.StatusCreated), "sell_done", fiber.Map{
		"Receipts": receipts, "Nav": "sell", "Title": "Submitted",
	})
}

// GET /sell/status
func (h *ListingHandler) Status(c *fiber.Ctx) error {
	ref, okRef := validate.Ref(c.Query("ref"))
	code, okCode := validate.Code(c.Query("code"))
	if !okRef || !okCode {
		field := "ref"
		if okRef {
			field = "code"
		}
		log.Security(c, "validation.fail", map[string]any{"field": field})
		return Message(c, fiber.StatusBadRequest, "That reference or claim code is not valid.")
	}
	l, err := h.Listings.Status(ref, code)
	if errors.Is(err, services.ErrNotFound) {
		log.Security(c, "listing.status.denied", map[string]any{"ref": ref})
		return Message(c, fiber.StatusNotFound, "Listing not found")
	}
	if err != nil {
		return err
	}
	return render(c, "sell_status", fiber.Map{"Listing": l, "Nav": "sell", "Title": "Listing " + l.ID})
}
