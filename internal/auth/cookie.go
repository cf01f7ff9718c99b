package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieWriter manages the session cookie on responses.
type CookieWriter struct {
	name           string
	secure         bool
	maxAge         time.Duration
	rememberMaxAge time.Duration
}

// NewCookieWriter builds a writer. Secure should be true in production.
func NewCookieWriter(name string, secure bool, maxAge, rememberMaxAge time.Duration) *CookieWriter {
	return &CookieWriter{
		name:           name,
		secure:         secure,
		maxAge:         maxAge,
		rememberMaxAge: rememberMaxAge,
	}
}

// Name returns the cookie name tokens are read from.
func (w *CookieWriter) Name() string {
	return w.name
}

// Write sets the session cookie on the response.
func (w *CookieWriter) Write(c *fiber.Ctx, token string, remember bool) {
	duration := w.maxAge
	if remember {
		duration = w.rememberMaxAge
	}
	c.Cookie(&fiber.Cookie{
		Name:     w.name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(duration),
		MaxAge:   int(duration.Seconds()),
		HTTPOnly: true,
		Secure:   w.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func (w *CookieWriter) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     w.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-24 * time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   w.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
