package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/vegruit/storefront/internal/web"
)

const (
	CookieName = "vegruit_session"

	managerKey = "session"
	visitorKey = "visitor"
	cookieKey  = "visitorCookie"
)

// Options configures the visitor cookie and where sessions are kept.
type Options struct {
	Store  Persistence
	Secret []byte
	TTL    time.Duration
	Secure bool
	Hooks  Hooks
}

// Middleware identifies the visitor from the signed cookie, restores their
// session and stores the Manager in the request locals. A missing or
// tampered cookie gets a fresh visitor id, so the request continues anonymous.
func Middleware(opts Options) fiber.Handler {
	if opts.TTL <= 0 {
		opts.TTL = 30 * 24 * time.Hour
	}

	attach := func(c *fiber.Ctx, visitorID string) error {
		m := NewManager(opts.Store, Namespace(visitorID), opts.Hooks)
		m.Restore(c.UserContext())
		Attach(c, visitorID, m)
		return c.Next()
	}

	mint := func(c *fiber.Ctx) error {
		visitorID := uuid.NewString()
		signed, err := SignVisitor(opts.Secret, visitorID, opts.TTL)
		if err != nil {
			log.Errorf("session: sign visitor cookie: %v", err)
			return web.Fail(c, fiber.StatusInternalServerError, "could not start session")
		}
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    signed,
			Path:     "/",
			Expires:  time.Now().Add(opts.TTL),
			HTTPOnly: true,
			Secure:   opts.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return attach(c, visitorID)
	}

	return jwtware.New(jwtware.Config{
		SigningKey:    opts.Secret,
		SigningMethod: "HS256",
		TokenLookup:   "cookie:" + CookieName,
		ContextKey:    cookieKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			tok, _ := c.Locals(cookieKey).(*jwt.Token)
			visitorID := visitorFromToken(tok)
			if visitorID == "" {
				return mint(c)
			}
			return attach(c, visitorID)
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return mint(c)
		},
	})
}

// SignVisitor produces the cookie value carrying visitorID.
func SignVisitor(secret []byte, visitorID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": visitorID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func visitorFromToken(tok *jwt.Token) string {
	if tok == nil {
		return ""
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sid, _ := claims["sid"].(string)
	if _, err := uuid.Parse(sid); err != nil {
		return ""
	}
	return sid
}

// Attach stores m as the request's session.
func Attach(c *fiber.Ctx, visitorID string, m *Manager) {
	c.Locals(managerKey, m)
	c.Locals(visitorKey, visitorID)
}

// FromCtx returns the visitor's Manager, or nil outside the middleware.
func FromCtx(c *fiber.Ctx) *Manager {
	m, _ := c.Locals(managerKey).(*Manager)
	return m
}

// VisitorID returns the id carried by the visitor cookie.
func VisitorID(c *fiber.Ctx) string {
	id, _ := c.Locals(visitorKey).(string)
	return id
}

// RequireRole lets the request through only for a logged-in visitor of
// userType; everyone else gets 401 with that role's login surface.
func RequireRole(userType UserType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m := FromCtx(c)
		if m == nil || !m.Current().Authenticated() || m.CurrentUserType() != userType {
			return c.Status(fiber.StatusUnauthorized).JSON(web.Envelope{
				Success:  false,
				Message:  "please log in as a " + string(userType) + " to continue",
				Redirect: userType.LoginPath(),
			})
		}
		return c.Next()
	}
}

// RequireAuth accepts any logged-in visitor with a known user type.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m := FromCtx(c)
		if m == nil || !m.Current().Authenticated() || m.CurrentUserType() == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(web.Envelope{
				Success:  false,
				Message:  "please log in to continue",
				Redirect: UserType("").LoginPath(),
			})
		}
		return c.Next()
	}
}
