package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vegruit/storefront/internal/session"
	"github.com/vegruit/storefront/internal/web"
)

// Handler exposes the auth endpoints. limit, when set, guards the endpoints
// that take a password or send mail.
type Handler struct {
	service *Service
	limit   fiber.Handler
}

func NewHandler(s *Service, limit fiber.Handler) *Handler {
	if limit == nil {
		limit = func(c *fiber.Ctx) error { return c.Next() }
	}
	return &Handler{service: s, limit: limit}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/app/session", h.current)
	app.Post("/app/auth/login", h.limit, h.login)
	app.Post("/app/auth/register/buyer", h.limit, h.register(session.Buyer))
	app.Post("/app/auth/register/seller", h.limit, h.register(session.Seller))
	app.Post("/app/auth/forgot-password", h.limit, h.forgotPassword)
	app.Post("/app/auth/reset-password", h.limit, h.resetPassword)
	app.Post("/app/auth/logout", h.logout)
}

type sessionView struct {
	Authenticated bool             `json:"authenticated"`
	User          *session.Profile `json:"user,omitempty"`
	UserType      session.UserType `json:"userType,omitempty"`
}

func viewOf(s session.Session) sessionView {
	return sessionView{Authenticated: s.Authenticated(), User: s.Profile, UserType: s.UserType}
}

func (h *Handler) current(c *fiber.Ctx) error {
	return web.OK(c, viewOf(session.FromCtx(c).Current()), "")
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(LoginInput)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	res := h.service.Login(c.UserContext(), session.FromCtx(c), *payload)
	if !res.OK() {
		return web.Error(c, res.Err)
	}
	return c.JSON(web.Envelope{Success: true, Message: res.Message, Data: viewOf(res.Data), ShowAuthModal: web.Bool(false)})
}

func (h *Handler) register(role session.UserType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := new(RegisterInput)
		if err := c.BodyParser(payload); err != nil {
			return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
		}
		res := h.service.Register(c.UserContext(), session.FromCtx(c), role, *payload)
		if !res.OK() {
			return web.Error(c, res.Err)
		}
		return c.Status(fiber.StatusCreated).JSON(web.Envelope{Success: true, Message: res.Message, Data: viewOf(res.Data), ShowAuthModal: web.Bool(false)})
	}
}

func (h *Handler) logout(c *fiber.Ctx) error {
	session.FromCtx(c).Clear(c.UserContext())
	return c.JSON(web.Envelope{Success: true, Message: "Logged out", Redirect: "/"})
}

func (h *Handler) forgotPassword(c *fiber.Ctx) error {
	payload := struct {
		Email string `json:"email"`
	}{}
	if err := c.BodyParser(&payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	return web.Result(c, h.service.ForgotPassword(c.UserContext(), payload.Email))
}

func (h *Handler) resetPassword(c *fiber.Ctx) error {
	payload := new(ResetInput)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	return web.Result(c, h.service.ResetPassword(c.UserContext(), *payload))
}
