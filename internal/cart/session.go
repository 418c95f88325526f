package cart

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "cart_session"

	sessionLocal = "cart_session_id"
)

var ErrNoSession = errors.New("no cart session")

// SessionMiddleware resolves the browsing session from the X-Session-ID header
// or the cart_session cookie, minting a new one when neither is a valid uuid.
// The id is echoed back in both places.
func SessionMiddleware(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(SessionHeader))
		if id == "" {
			id = c.Cookies(SessionCookie)
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Locals(sessionLocal, id)
		c.Set(SessionHeader, id)
		cookie := &fiber.Cookie{Name: SessionCookie, Value: id, HTTPOnly: true, SameSite: fiber.CookieSameSiteLaxMode}
		if ttl > 0 {
			cookie.Expires = time.Now().Add(ttl)
		}
		c.Cookie(cookie)
		return c.Next()
	}
}

// SessionIDFromCtx returns the session id set by SessionMiddleware.
func SessionIDFromCtx(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(sessionLocal).(string)
	if !ok || id == "" {
		return "", ErrNoSession
	}
	return id, nil
}
