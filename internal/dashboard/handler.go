package dashboard

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

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/app/dashboard", session.RequireAuth(), h.overview)
	app.Get("/app/dashboard/live", session.RequireAuth(), h.live)
	app.Put("/app/dashboard/settings", session.RequireAuth(), h.updateSettings)
	app.Delete("/app/account", session.RequireAuth(), h.deleteAccount)
}

func (h *Handler) overview(c *fiber.Ctx) error {
	return web.Result(c, h.service.Overview(c.UserContext(), session.FromCtx(c)))
}

func (h *Handler) live(c *fiber.Ctx) error {
	return web.Result(c, h.service.Live(c.UserContext(), session.FromCtx(c)))
}

func (h *Handler) updateSettings(c *fiber.Ctx) error {
	payload := new(SettingsInput)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	return web.Result(c, h.service.UpdateSettings(c.UserContext(), session.FromCtx(c), *payload))
}

func (h *Handler) deleteAccount(c *fiber.Ctx) error {
	payload := new(DeleteInput)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(payload); err != nil {
			return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
		}
	}
	res := h.service.DeleteAccount(c.UserContext(), session.FromCtx(c), *payload)
	if !res.OK() {
		return web.Error(c, res.Err)
	}
	return c.JSON(web.Envelope{Success: true, Message: res.Message, Redirect: "/"})
}
