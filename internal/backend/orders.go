package backend

import (
	"context"
	"net/http"
)

func (c *Client) CreateOrder(ctx context.Context, token string, order NewOrder) Result[Order] {
	if e := needToken(token); e != nil {
		return Fail[Order](e)
	}
	return data[Order](ctx, c, http.MethodPost, "/orders", token, order)
}

func (c *Client) BuyerOrders(ctx context.Context, token string) Result[[]Order] {
	if e := needToken(token); e != nil {
		return Fail[[]Order](e)
	}
	return orderList(data[[]Order](ctx, c, http.MethodGet, "/orders/buyer", token, nil))
}

func (c *Client) SellerOrders(ctx context.Context, token string) Result[[]Order] {
	if e := needToken(token); e != nil {
		return Fail[[]Order](e)
	}
	return orderList(data[[]Order](ctx, c, http.MethodGet, "/orders/seller", token, nil))
}

func (c *Client) Order(ctx context.Context, token, orderID string) Result[Order] {
	if e := needToken(token); e != nil {
		return Fail[Order](e)
	}
	if e := needID("order id", orderID); e != nil {
		return Fail[Order](e)
	}
	return data[Order](ctx, c, http.MethodGet, "/orders/"+escape(orderID), token, nil)
}

// AcceptOrder is the seller's pending -> confirmed transition.
func (c *Client) AcceptOrder(ctx context.Context, token, orderID string) Result[Order] {
	return c.orderAction(ctx, token, orderID, "accept", nil)
}

func (c *Client) RejectOrder(ctx context.Context, token, orderID, reason string) Result[Order] {
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	return c.orderAction(ctx, token, orderID, "reject", body)
}

func (c *Client) CancelOrder(ctx context.Context, token, orderID, reason string) Result[Order] {
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	return c.orderAction(ctx, token, orderID, "cancel", body)
}

// UpdateOrderStatus moves an order to status; used for seller advances and
// the buyer's receipt confirmation.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID, status string) Result[Order] {
	if e := needID("status", status); e != nil {
		return Fail[Order](e)
	}
	return c.orderAction(ctx, token, orderID, "status", map[string]string{"status": status})
}

func (c *Client) orderAction(ctx context.Context, token, orderID, action string, body any) Result[Order] {
	if e := needToken(token); e != nil {
		return Fail[Order](e)
	}
	if e := needID("order id", orderID); e != nil {
		return Fail[Order](e)
	}
	return data[Order](ctx, c, http.MethodPut, "/orders/"+escape(orderID)+"/"+action, token, body)
}

func orderList(res Result[[]Order]) Result[[]Order] {
	if res.OK() && res.Data == nil {
		res.Data = []Order{}
	}
	return res
}
