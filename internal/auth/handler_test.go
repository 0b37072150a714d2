package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/session"
	"github.com/vegruit/storefront/internal/session/sessiontest"
)

type fakeGateway struct {
	calls    int
	loginRes backend.Result[backend.AuthResponse]
	lastReg  backend.Registration
}

func (g *fakeGateway) Login(ctx context.Context, creds backend.Credentials) backend.Result[backend.AuthResponse] {
	g.calls++
	return g.loginRes
}

func (g *fakeGateway) RegisterBuyer(ctx context.Context, reg backend.Registration) backend.Result[backend.AuthResponse] {
	g.calls++
	g.lastReg = reg
	return backend.Ok(backend.AuthResponse{Success: true, Token: "new-buyer", User: backend.User{ID: "b-2", Name: reg.Name, Email: reg.Email}}, "")
}

func (g *fakeGateway) RegisterSeller(ctx context.Context, reg backend.Registration) backend.Result[backend.AuthResponse] {
	g.calls++
	g.lastReg = reg
	return backend.Ok(backend.AuthResponse{Success: true, Token: "new-seller", UserType: "seller", User: backend.User{ID: "s-2", Name: reg.Name, FarmName: reg.FarmName}}, "Welcome to VegRuit")
}

func (g *fakeGateway) RequestPasswordReset(ctx context.Context, email string) backend.Result[struct{}] {
	g.calls++
	return backend.Ok(struct{}{}, "")
}

func (g *fakeGateway) ResetPassword(ctx context.Context, resetToken, password string) backend.Result[struct{}] {
	g.calls++
	return backend.Ok(struct{}{}, "")
}

func setupApp(gw Gateway) (*fiber.App, *session.InMemoryStore) {
	store := session.NewInMemoryStore()
	app := fiber.New()
	app.Use(sessiontest.Bootstrap(store, session.Hooks{}))
	NewHandler(NewService(gw), nil).RegisterPublicRoutes(app)
	return app, store
}

func jsonRequest(visitor, method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(sessiontest.VisitorHeader, visitor)
	return req
}

func restored(store session.Persistence, visitor string) session.Session {
	m := session.NewManager(store, session.Namespace(visitor), session.Hooks{})
	m.Restore(context.Background())
	return m.Current()
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	gw := &fakeGateway{loginRes: backend.Fail[backend.AuthResponse](&backend.Error{
		Kind: backend.KindBusiness, Status: 401, Message: "Invalid credentials",
	})}
	app, store := setupApp(gw)
	sessiontest.Login(store, "returning", session.Seller, "old-token")

	res, _ := app.Test(jsonRequest("returning", "POST", "/app/auth/login", `{"email":"x@example.com","password":"wrongpw"}`))
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"message":"Invalid credentials"`) {
		t.Fatalf("message should be verbatim: %s", string(b))
	}

	s := restored(store, "returning")
	if s.Token != "old-token" || s.UserType != session.Seller {
		t.Fatalf("pre-existing session must be untouched, got %+v", s)
	}

	app.Test(jsonRequest("fresh", "POST", "/app/auth/login", `{"email":"x@example.com","password":"wrongpw"}`))
	if restored(store, "fresh").Authenticated() {
		t.Fatalf("failed login must not persist a token")
	}
}

func TestLogin_SuccessEstablishes(t *testing.T) {
	gw := &fakeGateway{loginRes: backend.Ok(backend.AuthResponse{
		Success: true, Token: "jwt-1", UserType: "buyer",
		User: backend.User{ID: "b-1", Name: "Sita", Email: "sita@example.com"},
	}, "Welcome back")}
	app, store := setupApp(gw)

	res, _ := app.Test(jsonRequest("v1", "POST", "/app/auth/login", `{"email":"sita@example.com","password":"secret1"}`))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"showAuthModal":false`) || !strings.Contains(string(b), `"userType":"buyer"`) {
		t.Fatalf("unexpected body %s", string(b))
	}
	if strings.Contains(string(b), "jwt-1") {
		t.Fatalf("bearer token must not be sent to the browser: %s", string(b))
	}

	s := restored(store, "v1")
	if s.Token != "jwt-1" || s.Profile.Name != "Sita" || s.Profile.UserType != "buyer" {
		t.Fatalf("session not persisted correctly: %+v", s)
	}

	req := httptest.NewRequest("GET", "/app/session", nil)
	req.Header.Set(sessiontest.VisitorHeader, "v1")
	res, _ = app.Test(req)
	b, _ = io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"authenticated":true`) {
		t.Fatalf("session endpoint should report login: %s", string(b))
	}
}

func TestLogin_ValidationBeforeNetwork(t *testing.T) {
	gw := &fakeGateway{}
	app, _ := setupApp(gw)

	for _, body := range []string{`{"email":"","password":"secret1"}`, `{"email":"not-an-email","password":"secret1"}`, `{"email":"a@b.co"}`} {
		res, _ := app.Test(jsonRequest("v", "POST", "/app/auth/login", body))
		if res.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, res.StatusCode)
		}
	}
	if gw.calls != 0 {
		t.Fatalf("no request should be issued, got %d", gw.calls)
	}
}

func TestRegister(t *testing.T) {
	gw := &fakeGateway{}
	app, store := setupApp(gw)

	res, _ := app.Test(jsonRequest("b", "POST", "/app/auth/register/buyer",
		`{"name":"Gita","email":"gita@example.com","phone":"9800000000","password":"secret1","confirmPassword":"secret2"}`))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("password mismatch should be rejected, got %d", res.StatusCode)
	}

	res, _ = app.Test(jsonRequest("b", "POST", "/app/auth/register/buyer",
		`{"name":"Gita","email":"gita@example.com","phone":"9800000000","password":"secret1","confirmPassword":"secret1"}`))
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	if s := restored(store, "b"); s.UserType != session.Buyer || s.Token != "new-buyer" {
		t.Fatalf("buyer type should fall back to the route role, got %+v", s)
	}

	res, _ = app.Test(jsonRequest("s", "POST", "/app/auth/register/seller",
		`{"name":"Hari","email":"hari@example.com","phone":"9811111111","password":"secret1","confirmPassword":"secret1"}`))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("seller without farm should be rejected, got %d", res.StatusCode)
	}

	res, _ = app.Test(jsonRequest("s", "POST", "/app/auth/register/seller",
		`{"name":"Hari","email":"hari@example.com","phone":"9811111111","password":"secret1","confirmPassword":"secret1","farmName":"Green Valley","farmLocation":"Chitwan"}`))
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	if gw.lastReg.FarmName != "Green Valley" {
		t.Fatalf("farm details should be forwarded")
	}
	if s := restored(store, "s"); s.UserType != session.Seller || s.Profile.FarmName != "Green Valley" {
		t.Fatalf("unexpected seller session %+v", s)
	}
}

func TestLogout_ClearsAndRedirects(t *testing.T) {
	app, store := setupApp(&fakeGateway{})
	sessiontest.Login(store, "v", session.Buyer, "tok")

	res, _ := app.Test(jsonRequest("v", "POST", "/app/auth/logout", ""))
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"redirect":"/"`) {
		t.Fatalf("expected redirect home: %s", string(b))
	}
	if restored(store, "v").Authenticated() {
		t.Fatalf("logout should clear persisted session")
	}
}

func TestPasswordReset(t *testing.T) {
	gw := &fakeGateway{}
	app, _ := setupApp(gw)

	res, _ := app.Test(jsonRequest("v", "POST", "/app/auth/reset-password", `{"token":"t","password":"12345","confirmPassword":"12345"}`))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("short password should be rejected, got %d", res.StatusCode)
	}
	res, _ = app.Test(jsonRequest("v", "POST", "/app/auth/reset-password", `{"token":"t","password":"123456","confirmPassword":"123456"}`))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	res, _ = app.Test(jsonRequest("v", "POST", "/app/auth/forgot-password", `{"email":"sita@example.com"}`))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	if gw.calls != 2 {
		t.Fatalf("expected 2 backend calls, got %d", gw.calls)
	}
}
