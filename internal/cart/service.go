package cart

import (
	"context"

	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/validate"
)

// Gateway is the part of the backend client the cart needs.
type Gateway interface {
	Cart(ctx context.Context, token string) backend.Result[backend.Cart]
	AddToCart(ctx context.Context, token, productID string, quantity int) backend.Result[backend.Cart]
	UpdateCartItem(ctx context.Context, token, productID string, quantity int) backend.Result[backend.Cart]
	RemoveCartItem(ctx context.Context, token, productID string) backend.Result[backend.Cart]
	ClearCart(ctx context.Context, token string) backend.Result[backend.Cart]
}

// View is the cart together with its checkout preview.
type View struct {
	backend.Cart
	Preview Preview `json:"preview"`
}

func newView(cart backend.Cart) View {
	return View{Cart: cart, Preview: Compute(cart.TotalValue)}
}

type Service struct {
	gateway Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gateway: gw}
}

func (s *Service) Get(ctx context.Context, token string) backend.Result[View] {
	return view(s.gateway.Cart(ctx, token))
}

func (s *Service) Add(ctx context.Context, token, productID string, quantity int) backend.Result[View] {
	if err := validate.First(
		validate.Required(validate.Field{Name: "product", Value: productID}),
		validate.Quantity(quantity),
	); err != nil {
		return backend.Invalid[View](err.Error())
	}
	return view(s.gateway.AddToCart(ctx, token, productID, quantity))
}

func (s *Service) Update(ctx context.Context, token, productID string, quantity int) backend.Result[View] {
	if err := validate.Quantity(quantity); err != nil {
		return backend.Invalid[View](err.Error())
	}
	return view(s.gateway.UpdateCartItem(ctx, token, productID, quantity))
}

func (s *Service) Remove(ctx context.Context, token, productID string) backend.Result[View] {
	return view(s.gateway.RemoveCartItem(ctx, token, productID))
}

func (s *Service) Clear(ctx context.Context, token string) backend.Result[View] {
	return view(s.gateway.ClearCart(ctx, token))
}

func (s *Service) Preview(ctx context.Context, token string) backend.Result[Preview] {
	res := s.gateway.Cart(ctx, token)
	if !res.OK() {
		return backend.Fail[Preview](res.Err)
	}
	return backend.Ok(Compute(res.Data.TotalValue), "")
}

func view(res backend.Result[backend.Cart]) backend.Result[View] {
	if !res.OK() {
		return backend.Fail[View](res.Err)
	}
	return backend.Ok(newView(res.Data), res.Message)
}
