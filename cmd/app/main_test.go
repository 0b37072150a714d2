package main

import (
	"context"
	"testing"
	"time"

	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/dashboard"
	"github.com/vegruit/storefront/internal/review"
	"github.com/vegruit/storefront/internal/session"
)

type statsGateway struct{}

func (statsGateway) BuyerStats(ctx context.Context, token string) backend.Result[backend.DashboardStats] {
	return backend.Ok(backend.DashboardStats{TotalOrders: 1}, "")
}

func (statsGateway) SellerStats(ctx context.Context, token string) backend.Result[backend.DashboardStats] {
	return backend.Ok(backend.DashboardStats{TotalOrders: 2}, "")
}

func (statsGateway) BuyerOrders(ctx context.Context, token string) backend.Result[[]backend.Order] {
	return backend.Ok([]backend.Order{}, "")
}

func (statsGateway) SellerOrders(ctx context.Context, token string) backend.Result[[]backend.Order] {
	return backend.Ok([]backend.Order{}, "")
}

func (statsGateway) UpdateProfile(ctx context.Context, token string, up backend.ProfileUpdate) backend.Result[backend.User] {
	return backend.Ok(backend.User{}, "")
}

func (statsGateway) DeleteAccount(ctx context.Context, token string) backend.Result[struct{}] {
	return backend.Ok(struct{}{}, "")
}

func TestSessionHooks_NewLoginDropsPreviousState(t *testing.T) {
	hub := dashboard.NewHub(context.Background(), statsGateway{}, time.Hour)
	defer hub.StopAll()
	tracker := review.NewTracker()
	store := session.NewInMemoryStore()
	ns := session.Namespace("shared")
	dc, _ := dashboard.For(session.Seller)

	hub.Watch(ns, "tok-seller", dc)
	tracker.Put(ns, "tok-seller", review.Build(nil, nil))

	m := session.NewManager(store, ns, sessionHooks(hub, tracker))
	m.Establish(context.Background(), session.Profile{ID: "s1", Name: "Seller"}, "tok-seller", session.Seller)
	if !hub.Watching(ns) {
		t.Fatalf("re-establishing the same token keeps the refresher")
	}

	m.Establish(context.Background(), session.Profile{ID: "b1", Name: "Buyer"}, "tok-buyer", session.Buyer)
	if hub.Watching(ns) {
		t.Fatalf("a different user's login must stop the previous refresher")
	}
	if _, ok := tracker.Items(ns, "tok-seller"); ok {
		t.Fatalf("a different user's login must drop the previous review set")
	}

	hub.Watch(ns, "tok-buyer", dc)
	m.Clear(context.Background())
	if hub.Watching(ns) {
		t.Fatalf("clearing the session stops the refresher")
	}
}
