package backend

import (
	"context"
	"net/http"
)

func (c *Client) BuyerStats(ctx context.Context, token string) Result[DashboardStats] {
	if e := needToken(token); e != nil {
		return Fail[DashboardStats](e)
	}
	return data[DashboardStats](ctx, c, http.MethodGet, "/dashboard/buyer", token, nil)
}

func (c *Client) SellerStats(ctx context.Context, token string) Result[DashboardStats] {
	if e := needToken(token); e != nil {
		return Fail[DashboardStats](e)
	}
	return data[DashboardStats](ctx, c, http.MethodGet, "/dashboard/seller", token, nil)
}

// UpdateProfile returns the profile as stored after the update.
func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) Result[User] {
	if e := needToken(token); e != nil {
		return Fail[User](e)
	}
	return data[User](ctx, c, http.MethodPut, "/users/profile", token, update)
}

func (c *Client) DeleteAccount(ctx context.Context, token string) Result[struct{}] {
	if e := needToken(token); e != nil {
		return Fail[struct{}](e)
	}
	return data[struct{}](ctx, c, http.MethodDelete, "/users/account", token, nil)
}
