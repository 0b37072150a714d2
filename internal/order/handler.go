package order

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vegruit/storefront/internal/session"
	"github.com/vegruit/storefront/internal/web"
)

// Handler exposes order views and transitions to the SPA.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/app/order-statuses", h.statuses)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/app/orders", session.RequireAuth(), h.list)
	app.Post("/app/orders", session.RequireRole(session.Buyer), h.create)
	app.Get("/app/orders/:id", session.RequireAuth(), h.get)

	app.Put("/app/orders/:id/cancel", session.RequireRole(session.Buyer), h.act(ActionCancel))
	app.Put("/app/orders/:id/confirm-receipt", session.RequireRole(session.Buyer), h.act(ActionConfirmReceipt))
	app.Put("/app/orders/:id/accept", session.RequireRole(session.Seller), h.act(ActionAccept))
	app.Put("/app/orders/:id/reject", session.RequireRole(session.Seller), h.act(ActionReject))
	app.Put("/app/orders/:id/advance", session.RequireRole(session.Seller), h.act(ActionAdvance))
}

func callerFrom(c *fiber.Ctx) Caller {
	m := session.FromCtx(c)
	return Caller{Visitor: session.VisitorID(c), Token: m.CurrentToken(), Role: m.CurrentUserType()}
}

func (h *Handler) statuses(c *fiber.Ctx) error {
	return web.OK(c, Projections(), "")
}

func (h *Handler) list(c *fiber.Ctx) error {
	return web.Result(c, h.service.List(c.UserContext(), callerFrom(c), c.Query("status")))
}

func (h *Handler) get(c *fiber.Ctx) error {
	return web.Result(c, h.service.Get(c.UserContext(), callerFrom(c), c.Params("id")))
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(CheckoutInput)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	res := h.service.Create(c.UserContext(), callerFrom(c), *payload)
	if !res.OK() {
		return web.Error(c, res.Err)
	}
	return web.Created(c, res.Data, res.Message)
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) act(action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := new(reasonRequest)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(payload); err != nil {
				return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
			}
		}
		return web.Result(c, h.service.Act(c.UserContext(), callerFrom(c), c.Params("id"), action, payload.Reason))
	}
}
