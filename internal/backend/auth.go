package backend

import (
	"context"
	"net/http"
)

// Login posts credentials. A success without a token is treated as a failure
// so a session is never established half-way.
func (c *Client) Login(ctx context.Context, creds Credentials) Result[AuthResponse] {
	res := whole[AuthResponse](ctx, c, http.MethodPost, "/auth/login", "", creds)
	return requireAuthToken(res)
}

func (c *Client) RegisterBuyer(ctx context.Context, reg Registration) Result[AuthResponse] {
	res := whole[AuthResponse](ctx, c, http.MethodPost, "/auth/buyer/register", "", reg)
	return requireAuthToken(res)
}

func (c *Client) RegisterSeller(ctx context.Context, reg Registration) Result[AuthResponse] {
	res := whole[AuthResponse](ctx, c, http.MethodPost, "/auth/seller/register", "", reg)
	return requireAuthToken(res)
}

// RequestPasswordReset asks the backend to mail a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) Result[struct{}] {
	return data[struct{}](ctx, c, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": email})
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) Result[struct{}] {
	if e := needID("reset token", resetToken); e != nil {
		return Fail[struct{}](e)
	}
	body := map[string]string{"token": resetToken, "password": password}
	return data[struct{}](ctx, c, http.MethodPost, "/auth/reset-password", "", body)
}

func requireAuthToken(res Result[AuthResponse]) Result[AuthResponse] {
	if !res.OK() {
		return res
	}
	if res.Data.Token == "" {
		msg := res.Data.Message
		if msg == "" {
			msg = "authentication failed"
		}
		return Fail[AuthResponse](&Error{Kind: KindBusiness, Status: http.StatusUnauthorized, Message: msg, Err: ErrRejected})
	}
	if res.Message == "" {
		res.Message = res.Data.Message
	}
	return res
}
