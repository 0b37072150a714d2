package session

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var testSecret = []byte("cookie-secret")

func makeApp(store Persistence, hooks Hooks) *fiber.App {
	app := fiber.New()
	app.Use(Middleware(Options{Store: store, Secret: testSecret, TTL: time.Hour, Hooks: hooks}))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		m := FromCtx(c)
		return c.JSON(fiber.Map{
			"visitor":  VisitorID(c),
			"userType": m.CurrentUserType(),
			"token":    m.CurrentToken(),
		})
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		FromCtx(c).Clear(c.UserContext())
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/seller", RequireRole(Seller), func(c *fiber.Ctx) error {
		return c.SendString("seller area")
	})
	app.Get("/any", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestMiddleware_MintsCookieForNewVisitor(t *testing.T) {
	app := makeApp(NewInMemoryStore(), Hooks{})

	res, _ := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	setCookie := res.Header.Get("Set-Cookie")
	if !strings.HasPrefix(setCookie, CookieName+"=") {
		t.Fatalf("expected session cookie, got %q", setCookie)
	}
	var body map[string]string
	b, _ := io.ReadAll(res.Body)
	json.Unmarshal(b, &body)
	if _, err := uuid.Parse(body["visitor"]); err != nil {
		t.Fatalf("expected uuid visitor id, got %q", body["visitor"])
	}
	if body["token"] != "" {
		t.Fatalf("new visitor should be anonymous")
	}
}

func TestMiddleware_RestoresFromCookie(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	visitor := uuid.NewString()
	NewManager(store, Namespace(visitor), Hooks{}).Establish(ctx, Profile{ID: "s-1", Name: "Hari"}, "tok", Seller)
	signed, _ := SignVisitor(testSecret, visitor, time.Hour)

	app := makeApp(store, Hooks{})
	req := httptest.NewRequest("GET", "/seller", nil)
	req.Header.Set("Cookie", CookieName+"="+signed)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected seller access, got %d", res.StatusCode)
	}
	if res.Header.Get("Set-Cookie") != "" {
		t.Fatalf("valid cookie should not be reissued")
	}

	// logout, then the same cookie no longer passes the guard
	req = httptest.NewRequest("POST", "/logout", nil)
	req.Header.Set("Cookie", CookieName+"="+signed)
	app.Test(req)

	req = httptest.NewRequest("GET", "/seller", nil)
	req.Header.Set("Cookie", CookieName+"="+signed)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("guard must re-check after logout, got %d", res.StatusCode)
	}
}

func TestMiddleware_TamperedCookieStartsOver(t *testing.T) {
	store := NewInMemoryStore()
	visitor := uuid.NewString()
	NewManager(store, Namespace(visitor), Hooks{}).Establish(context.Background(), Profile{ID: "b-1"}, "tok", Buyer)
	forged, _ := SignVisitor([]byte("attacker"), visitor, time.Hour)

	app := makeApp(store, Hooks{})
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", CookieName+"="+forged)
	res, _ := app.Test(req)

	var body map[string]string
	b, _ := io.ReadAll(res.Body)
	json.Unmarshal(b, &body)
	if body["visitor"] == visitor || body["token"] != "" {
		t.Fatalf("forged cookie must not reach the stored session: %s", string(b))
	}
	if res.Header.Get("Set-Cookie") == "" {
		t.Fatalf("expected a fresh cookie")
	}
}

func TestRequireRole_WrongRoleRedirects(t *testing.T) {
	store := NewInMemoryStore()
	visitor := uuid.NewString()
	NewManager(store, Namespace(visitor), Hooks{}).Establish(context.Background(), Profile{ID: "b-1"}, "tok", Buyer)
	signed, _ := SignVisitor(testSecret, visitor, time.Hour)
	app := makeApp(store, Hooks{})

	req := httptest.NewRequest("GET", "/seller", nil)
	req.Header.Set("Cookie", CookieName+"="+signed)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("buyer should not enter seller area, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"redirect":"/login/seller"`) {
		t.Fatalf("expected seller login redirect, got %s", string(b))
	}

	req = httptest.NewRequest("GET", "/any", nil)
	req.Header.Set("Cookie", CookieName+"="+signed)
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("any logged-in role should pass RequireAuth, got %d", res.StatusCode)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/any", nil))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("anonymous visitor should be refused, got %d", res.StatusCode)
	}
}
