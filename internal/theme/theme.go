// Package theme owns the light/dark presentation flag. Pages never set it
// themselves: the middleware resolves it once per request and Toggle is the
// only way to change it.
package theme

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"

	CookieName = "theme"
	localsKey  = "theme"
)

// Parse maps any unknown value to Light.
func Parse(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == Dark {
		return Dark
	}
	return Light
}

func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func (m Mode) IsDark() bool { return m == Dark }

// Middleware puts the request's theme into locals.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localsKey, Parse(c.Cookies(CookieName)))
		return c.Next()
	}
}

// From reads the theme resolved by Middleware, defaulting to Light.
func From(c *fiber.Ctx) Mode {
	if m, ok := c.Locals(localsKey).(Mode); ok {
		return m
	}
	return Light
}

// Toggler flips the theme cookie and sends the user back where they were.
type Toggler struct {
	Secure bool
}

// Toggle handles POST /theme. The return path comes from the form field
// "back" and must be a local absolute path.
func (t Toggler) Toggle(c *fiber.Ctx) error {
	next := From(c).Toggle()
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    string(next),
		Path:     "/",
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   t.Secure,
	})
	c.Locals(localsKey, next)
	return c.Redirect(safeBack(c.FormValue("back")), fiber.StatusSeeOther)
}

func safeBack(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.ContainsAny(p, "\\\r\n") {
		return "/"
	}
	return p
}
