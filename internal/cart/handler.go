package cart

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vegruit/storefront/internal/session"
	"github.com/vegruit/storefront/internal/web"
)

// Handler serves the buyer's cart and checkout preview.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	buyer := session.RequireRole(session.Buyer)
	app.Get("/app/cart", buyer, h.getCart)
	app.Delete("/app/cart", buyer, h.clearCart)
	app.Post("/app/cart/items", buyer, h.addToCart)
	app.Put("/app/cart/items/:productId", buyer, h.updateItem)
	app.Delete("/app/cart/items/:productId", buyer, h.removeItem)
	app.Get("/app/checkout/preview", buyer, h.preview)
}

type cartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func token(c *fiber.Ctx) string {
	return session.FromCtx(c).CurrentToken()
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	return web.Result(c, h.service.Get(c.UserContext(), token(c)))
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	return web.Result(c, h.service.Add(c.UserContext(), token(c), payload.ProductID, payload.Quantity))
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	return web.Result(c, h.service.Update(c.UserContext(), token(c), c.Params("productId"), payload.Quantity))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	return web.Result(c, h.service.Remove(c.UserContext(), token(c), c.Params("productId")))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	return web.Result(c, h.service.Clear(c.UserContext(), token(c)))
}

func (h *Handler) preview(c *fiber.Ctx) error {
	return web.Result(c, h.service.Preview(c.UserContext(), token(c)))
}
