package review

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/session"
	"github.com/vegruit/storefront/internal/web"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/app/reviews/pending", session.RequireRole(session.Buyer), h.pending)
	app.Post("/app/reviews", session.RequireRole(session.Buyer), h.submit)
}

func (h *Handler) pending(c *fiber.Ctx) error {
	m := session.FromCtx(c)
	return web.Result(c, h.service.Pending(c.UserContext(), m.Namespace(), m.CurrentToken()))
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(backend.NewReview)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	m := session.FromCtx(c)
	res := h.service.Submit(c.UserContext(), m.Namespace(), m.CurrentToken(), *payload)
	if !res.OK() {
		return web.Error(c, res.Err)
	}
	return web.Created(c, res.Data, res.Message)
}
