package backend

import (
	"context"
	"net/http"
	"net/url"
)

// Products lists products; query is forwarded as-is (category, search, sort, page).
func (c *Client) Products(ctx context.Context, query url.Values) Result[[]Product] {
	path := "/products"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	res := data[[]Product](ctx, c, http.MethodGet, path, "", nil)
	if res.OK() && res.Data == nil {
		res.Data = []Product{}
	}
	return res
}

func (c *Client) Product(ctx context.Context, productID string) Result[Product] {
	if e := needID("product id", productID); e != nil {
		return Fail[Product](e)
	}
	return data[Product](ctx, c, http.MethodGet, "/products/"+escape(productID), "", nil)
}

func (c *Client) Categories(ctx context.Context) Result[[]Category] {
	res := data[[]Category](ctx, c, http.MethodGet, "/categories", "", nil)
	if res.OK() && res.Data == nil {
		res.Data = []Category{}
	}
	return res
}

func (c *Client) Favorites(ctx context.Context, token string) Result[[]Product] {
	if e := needToken(token); e != nil {
		return Fail[[]Product](e)
	}
	res := data[[]Product](ctx, c, http.MethodGet, "/favorites", token, nil)
	if res.OK() && res.Data == nil {
		res.Data = []Product{}
	}
	return res
}

func (c *Client) AddFavorite(ctx context.Context, token, productID string) Result[struct{}] {
	if e := needToken(token); e != nil {
		return Fail[struct{}](e)
	}
	if e := needID("product id", productID); e != nil {
		return Fail[struct{}](e)
	}
	return data[struct{}](ctx, c, http.MethodPost, "/favorites", token, map[string]string{"productId": productID})
}

func (c *Client) RemoveFavorite(ctx context.Context, token, productID string) Result[struct{}] {
	if e := needToken(token); e != nil {
		return Fail[struct{}](e)
	}
	if e := needID("product id", productID); e != nil {
		return Fail[struct{}](e)
	}
	return data[struct{}](ctx, c, http.MethodDelete, "/favorites/"+escape(productID), token, nil)
}
