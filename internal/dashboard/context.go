// Package dashboard serves the buyer and seller dashboards from one set of
// handlers, parameterised by a role Context.
package dashboard

import (
	"context"

	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/session"
)

// Gateway is the part of the backend client dashboards need.
type Gateway interface {
	BuyerStats(ctx context.Context, token string) backend.Result[backend.DashboardStats]
	SellerStats(ctx context.Context, token string) backend.Result[backend.DashboardStats]
	BuyerOrders(ctx context.Context, token string) backend.Result[[]backend.Order]
	SellerOrders(ctx context.Context, token string) backend.Result[[]backend.Order]
	UpdateProfile(ctx context.Context, token string, update backend.ProfileUpdate) backend.Result[backend.User]
	DeleteAccount(ctx context.Context, token string) backend.Result[struct{}]
}

// Context captures everything that differs between the two dashboards.
type Context struct {
	Role           session.UserType
	LoginPath      string
	SettingsFields []string
	stats          func(Gateway, context.Context, string) backend.Result[backend.DashboardStats]
	orders         func(Gateway, context.Context, string) backend.Result[[]backend.Order]
}

var commonSettings = []string{"name", "phone", "address", "city"}

var contexts = map[session.UserType]Context{
	session.Buyer: {
		Role:           session.Buyer,
		LoginPath:      session.Buyer.LoginPath(),
		SettingsFields: commonSettings,
		stats:          Gateway.BuyerStats,
		orders:         Gateway.BuyerOrders,
	},
	session.Seller: {
		Role:           session.Seller,
		LoginPath:      session.Seller.LoginPath(),
		SettingsFields: append(append([]string{}, commonSettings...), "farmName", "farmLocation"),
		stats:          Gateway.SellerStats,
		orders:         Gateway.SellerOrders,
	},
}

// For returns the Context for role.
func For(role session.UserType) (Context, bool) {
	c, ok := contexts[role]
	return c, ok
}

func (dc Context) Stats(ctx context.Context, gw Gateway, token string) backend.Result[backend.DashboardStats] {
	return dc.stats(gw, ctx, token)
}

func (dc Context) Orders(ctx context.Context, gw Gateway, token string) backend.Result[[]backend.Order] {
	return dc.orders(gw, ctx, token)
}

// Allows reports whether field is editable in this role's settings panel.
func (dc Context) Allows(field string) bool {
	for _, f := range dc.SettingsFields {
		if f == field {
			return true
		}
	}
	return false
}
