package feedback

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vegruit/storefront/internal/session"
	"github.com/vegruit/storefront/internal/web"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/app/testimonials", h.getTestimonials)
	app.Post("/app/feedback", h.submit)
}

func (h *Handler) getTestimonials(c *fiber.Ctx) error {
	return web.Result(c, h.service.Testimonials(c.UserContext()))
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(Input)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	var token string
	if m := session.FromCtx(c); m != nil {
		token = m.CurrentToken()
	}
	res := h.service.Submit(c.UserContext(), token, *payload)
	if !res.OK() {
		return web.Error(c, res.Err)
	}
	return web.Created(c, nil, res.Message)
}
