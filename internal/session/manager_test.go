package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type failingStore struct {
	*InMemoryStore
	failSuffix string
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if strings.HasSuffix(key, s.failSuffix) {
		return errors.New("disk full")
	}
	return s.InMemoryStore.Set(ctx, key, value)
}

func sellerProfile() Profile {
	return Profile{
		ID:           "s-1",
		Name:         "Hari Farms",
		Email:        "hari@example.com",
		Phone:        "9812345678",
		City:         "Chitwan",
		FarmName:     "Green Valley",
		FarmLocation: "Bharatpur",
	}
}

func TestEstablishRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	ns := Namespace("visitor-1")

	m := NewManager(store, ns, Hooks{})
	m.Establish(ctx, sellerProfile(), "opaque-token", Seller)
	want := m.Current()

	reloaded := NewManager(store, ns, Hooks{})
	reloaded.Restore(ctx)
	got := reloaded.Current()

	if got.Token != want.Token || got.UserType != want.UserType {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got.Profile == nil || *got.Profile != *want.Profile {
		t.Fatalf("profile mismatch: %+v vs %+v", got.Profile, want.Profile)
	}
	if got.Profile.UserType != "seller" {
		t.Fatalf("user type should be backfilled onto the profile, got %q", got.Profile.UserType)
	}
}

func TestClear_LeavesNothingBehind(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	ns := Namespace("visitor-2")

	cleared := ""
	m := NewManager(store, ns, Hooks{Cleared: func(namespace string) { cleared = namespace }})
	m.Establish(ctx, Profile{ID: "b-1", Name: "Sita"}, "tok", Buyer)
	m.Clear(ctx)

	if m.CurrentToken() != "" || m.CurrentUserType() != "" {
		t.Fatalf("expected empty accessors after clear")
	}
	if store.Len() != 0 {
		t.Fatalf("expected no persisted values, got %d", store.Len())
	}
	if cleared != ns {
		t.Fatalf("cleared hook not called with namespace")
	}

	again := NewManager(store, ns, Hooks{})
	again.Restore(ctx)
	if again.Current().Authenticated() {
		t.Fatalf("restore after clear should be anonymous")
	}
}

func TestRestore_BackfillsUserTypeFromTag(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	ns := Namespace("visitor-3")
	store.Set(ctx, ns+":token", "tok")
	store.Set(ctx, ns+":user", `{"id":"b-9","name":"Gita"}`)
	store.Set(ctx, ns+":userType", "buyer")

	m := NewManager(store, ns, Hooks{})
	m.Restore(ctx)
	if m.CurrentUserType() != Buyer {
		t.Fatalf("expected buyer, got %q", m.CurrentUserType())
	}
	if m.Current().Profile.UserType != "buyer" {
		t.Fatalf("profile user type not backfilled")
	}
}

func TestRestore_FailsOpen(t *testing.T) {
	ctx := context.Background()
	cases := map[string]map[string]string{
		"token only":      {"token": "tok"},
		"profile only":    {"user": `{"id":"1"}`},
		"corrupt profile": {"token": "tok", "user": "{not json"},
	}
	for name, values := range cases {
		store := NewInMemoryStore()
		ns := Namespace(name)
		for k, v := range values {
			store.Set(ctx, ns+":"+k, v)
		}
		m := NewManager(store, ns, Hooks{})
		m.Restore(ctx)
		s := m.Current()
		if s.Authenticated() || s.Token != "" || s.Profile != nil {
			t.Fatalf("%s: expected anonymous, got %+v", name, s)
		}
	}
}

func TestRestore_ExpiredJWTIsAnonymous(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	ns := Namespace("visitor-4")

	expired, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "b-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("backend-secret"))

	m := NewManager(store, ns, Hooks{})
	m.Establish(ctx, Profile{ID: "b-1"}, expired, Buyer)

	reloaded := NewManager(store, ns, Hooks{})
	reloaded.Restore(ctx)
	if reloaded.Current().Authenticated() {
		t.Fatalf("expired token should not restore")
	}

	fresh, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("backend-secret"))
	m.Establish(ctx, Profile{ID: "b-1"}, fresh, Buyer)
	reloaded.Restore(ctx)
	if reloaded.CurrentToken() != fresh {
		t.Fatalf("valid token should restore")
	}
}

func TestEstablish_PartialWriteRollsBack(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{InMemoryStore: NewInMemoryStore(), failSuffix: ":token"}
	ns := Namespace("visitor-5")

	established := false
	m := NewManager(store, ns, Hooks{Established: func(string, Session) { established = true }})
	m.Establish(ctx, Profile{ID: "b-1", Name: "Sita"}, "tok", Buyer)

	if m.CurrentToken() != "tok" {
		t.Fatalf("in-memory state should be set even when persistence fails")
	}
	if !established {
		t.Fatalf("established hook should fire")
	}
	if store.Len() != 0 {
		t.Fatalf("half a session must not stay persisted, found %d values", store.Len())
	}
}

func TestEstablish_WithoutTokenIsIgnored(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	m := NewManager(store, Namespace("visitor-6"), Hooks{})
	m.Establish(ctx, Profile{ID: "x"}, "", Buyer)
	if m.Current().Profile != nil || store.Len() != 0 {
		t.Fatalf("profile without token must not be recorded")
	}
}

func TestParseUserType(t *testing.T) {
	if ParseUserType(" Seller ") != Seller || ParseUserType("BUYER") != Buyer {
		t.Fatalf("parse should be case-insensitive")
	}
	if ParseUserType("admin") != "" {
		t.Fatalf("unknown types should parse empty")
	}
	if Seller.LoginPath() != "/login/seller" || Buyer.LoginPath() != "/login/buyer" {
		t.Fatalf("unexpected login paths")
	}
}
