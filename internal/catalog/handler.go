package catalog

import (
	"net/url"

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
	app.Get("/app/products", h.getProducts)
	app.Get("/app/products/:id", h.getProduct)
	app.Get("/app/categories", h.getCategories)
}

// Favorites belong to buyers.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	buyer := session.RequireRole(session.Buyer)
	app.Get("/app/favorites", buyer, h.getFavorites)
	app.Post("/app/favorites", buyer, h.addFavorite)
	app.Delete("/app/favorites/:productId", buyer, h.removeFavorite)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	query := url.Values{}
	for k, v := range c.Queries() {
		query.Set(k, v)
	}
	return web.Result(c, h.service.Products(c.UserContext(), query))
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	return web.Result(c, h.service.Product(c.UserContext(), c.Params("id")))
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	return web.Result(c, h.service.Categories(c.UserContext()))
}

type favoriteRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) getFavorites(c *fiber.Ctx) error {
	return web.Result(c, h.service.Favorites(c.UserContext(), session.FromCtx(c).CurrentToken()))
}

func (h *Handler) addFavorite(c *fiber.Ctx) error {
	payload := new(favoriteRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	return web.Result(c, h.service.AddFavorite(c.UserContext(), session.FromCtx(c).CurrentToken(), payload.ProductID))
}

func (h *Handler) removeFavorite(c *fiber.Ctx) error {
	return web.Result(c, h.service.RemoveFavorite(c.UserContext(), session.FromCtx(c).CurrentToken(), c.Params("productId")))
}
