// Package sessiontest provides a header-driven stand-in for the cookie
// middleware so handler tests can act as a given visitor.
package sessiontest

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/vegruit/storefront/internal/session"
)

const VisitorHeader = "X-Visitor-ID"

// Bootstrap attaches a restored Manager for the visitor named in
// X-Visitor-ID. Requests without the header are anonymous visitor "anon".
func Bootstrap(store session.Persistence, hooks session.Hooks) fiber.Handler {
	return func(c *fiber.Ctx) error {
		visitor := c.Get(VisitorHeader)
		if visitor == "" {
			visitor = "anon"
		}
		m := session.NewManager(store, session.Namespace(visitor), hooks)
		m.Restore(c.UserContext())
		session.Attach(c, visitor, m)
		return c.Next()
	}
}

// Login persists a session for visitor as if they had just logged in.
func Login(store session.Persistence, visitor string, userType session.UserType, token string) {
	m := session.NewManager(store, session.Namespace(visitor), session.Hooks{})
	m.Establish(context.Background(), session.Profile{
		ID:    visitor + "-id",
		Name:  visitor,
		Email: visitor + "@example.com",
	}, token, userType)
}
