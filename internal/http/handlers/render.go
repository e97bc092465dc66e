package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bludify/internal/theme"
)

const layout = "layouts/main"

// render fills in what every page needs (theme, CSRF token, current path)
// and renders tmpl inside the main layout.
func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	mode := theme.From(c)
	data["Theme"] = string(mode)
	data["Dark"] = mode.IsDark()
	data["Path"] = c.OriginalURL()
	for _, k := range []string{"Nav", "Title", "Err"} {
		if _, ok := data[k]; !ok {
			data[k] = ""
		}
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("csrf").(string)
	if tok == "" {
		// fall back to the cookie if Locals wasn't populated
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data, layout)
}

// Message renders the shared message page with status.
func Message(c *fiber.Ctx, status int, msg string) error {
	return render(c.Status(status), "notfound", fiber.Map{"Message": msg, "Title": msg})
}
