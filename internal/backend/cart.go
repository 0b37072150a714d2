package backend

import (
	"context"
	"net/http"
)

func (c *Client) Cart(ctx context.Context, token string) Result[Cart] {
	if e := needToken(token); e != nil {
		return Fail[Cart](e)
	}
	return unwrapCart(data[cartData](ctx, c, http.MethodGet, "/cart", token, nil))
}

func (c *Client) AddToCart(ctx context.Context, token, productID string, quantity int) Result[Cart] {
	if e := needToken(token); e != nil {
		return Fail[Cart](e)
	}
	if e := needID("product id", productID); e != nil {
		return Fail[Cart](e)
	}
	body := map[string]any{"productId": productID, "quantity": quantity}
	return unwrapCart(data[cartData](ctx, c, http.MethodPost, "/cart/items", token, body))
}

func (c *Client) UpdateCartItem(ctx context.Context, token, productID string, quantity int) Result[Cart] {
	if e := needToken(token); e != nil {
		return Fail[Cart](e)
	}
	if e := needID("product id", productID); e != nil {
		return Fail[Cart](e)
	}
	body := map[string]int{"quantity": quantity}
	return unwrapCart(data[cartData](ctx, c, http.MethodPut, "/cart/items/"+escape(productID), token, body))
}

func (c *Client) RemoveCartItem(ctx context.Context, token, productID string) Result[Cart] {
	if e := needToken(token); e != nil {
		return Fail[Cart](e)
	}
	if e := needID("product id", productID); e != nil {
		return Fail[Cart](e)
	}
	return unwrapCart(data[cartData](ctx, c, http.MethodDelete, "/cart/items/"+escape(productID), token, nil))
}

func (c *Client) ClearCart(ctx context.Context, token string) Result[Cart] {
	if e := needToken(token); e != nil {
		return Fail[Cart](e)
	}
	return unwrapCart(data[cartData](ctx, c, http.MethodDelete, "/cart", token, nil))
}

func unwrapCart(res Result[cartData]) Result[Cart] {
	if !res.OK() {
		return Fail[Cart](res.Err)
	}
	cart := res.Data.Cart
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	return Ok(cart, res.Message)
}
