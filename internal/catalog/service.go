// Package catalog passes product, category and favorite calls through to
// the backend.
package catalog

import (
	"context"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/validate"
)

// Gateway is the part of the backend client the catalog needs.
type Gateway interface {
	Products(ctx context.Context, query url.Values) backend.Result[[]backend.Product]
	Product(ctx context.Context, productID string) backend.Result[backend.Product]
	ProductReviews(ctx context.Context, productID string) backend.Result[[]backend.Review]
	Categories(ctx context.Context) backend.Result[[]backend.Category]
	Favorites(ctx context.Context, token string) backend.Result[[]backend.Product]
	AddFavorite(ctx context.Context, token, productID string) backend.Result[struct{}]
	RemoveFavorite(ctx context.Context, token, productID string) backend.Result[struct{}]
}

// Filters accepted on the product listing; anything else is dropped.
var listFilters = []string{"category", "search", "sort", "page", "limit", "organic", "seller"}

// Detail is a product page: the product and its reviews.
type Detail struct {
	Product backend.Product  `json:"product"`
	Reviews []backend.Review `json:"reviews"`
}

type Service struct {
	gateway Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gateway: gw}
}

func (s *Service) Products(ctx context.Context, query url.Values) backend.Result[[]backend.Product] {
	forwarded := url.Values{}
	for _, k := range listFilters {
		if v := strings.TrimSpace(query.Get(k)); v != "" {
			forwarded.Set(k, v)
		}
	}
	return s.gateway.Products(ctx, forwarded)
}

// Product loads the product and its reviews. A review failure still shows
// the product, with no reviews.
func (s *Service) Product(ctx context.Context, productID string) backend.Result[Detail] {
	p := s.gateway.Product(ctx, productID)
	if !p.OK() {
		return backend.Fail[Detail](p.Err)
	}
	d := Detail{Product: p.Data, Reviews: []backend.Review{}}
	if r := s.gateway.ProductReviews(ctx, productID); r.OK() {
		d.Reviews = r.Data
	} else {
		log.Warnf("product %s: reviews unavailable: %s", productID, r.Err.Message)
	}
	return backend.Ok(d, p.Message)
}

func (s *Service) Categories(ctx context.Context) backend.Result[[]backend.Category] {
	return s.gateway.Categories(ctx)
}

func (s *Service) Favorites(ctx context.Context, token string) backend.Result[[]backend.Product] {
	return s.gateway.Favorites(ctx, token)
}

func (s *Service) AddFavorite(ctx context.Context, token, productID string) backend.Result[struct{}] {
	if err := validate.Required(validate.Field{Name: "product", Value: productID}); err != nil {
		return backend.Invalid[struct{}](err.Error())
	}
	res := s.gateway.AddFavorite(ctx, token, productID)
	if res.OK() && res.Message == "" {
		res.Message = "Added to favorites"
	}
	return res
}

func (s *Service) RemoveFavorite(ctx context.Context, token, productID string) backend.Result[struct{}] {
	res := s.gateway.RemoveFavorite(ctx, token, productID)
	if res.OK() && res.Message == "" {
		res.Message = "Removed from favorites"
	}
	return res
}
