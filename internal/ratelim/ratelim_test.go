package ratelim

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestLimit_BlocksAfterBurst(t *testing.T) {
	rl := New(2)
	app := fiber.New()
	app.Post("/login", rl.Limit(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		res, _ := app.Test(httptest.NewRequest("POST", "/login", nil))
		if res.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, res.StatusCode)
		}
	}
	res, _ := app.Test(httptest.NewRequest("POST", "/login", nil))
	if res.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", res.StatusCode)
	}
}

func TestGetLimiter_EvictsIdleVisitors(t *testing.T) {
	rl := New(5)
	now := time.Now()
	rl.now = func() time.Time { return now }
	rl.getLimiter("10.0.0.1")

	now = now.Add(idleAfter + time.Second)
	rl.getLimiter("10.0.0.2")
	if _, ok := rl.visitors["10.0.0.1"]; ok {
		t.Fatalf("idle visitor should be evicted")
	}
	if len(rl.visitors) != 1 {
		t.Fatalf("expected one visitor, got %d", len(rl.visitors))
	}
}

func TestGetLimiter_SweepsAtMostOncePerInterval(t *testing.T) {
	rl := New(5)
	now := time.Now()
	rl.now = func() time.Time { return now }
	rl.getLimiter("10.0.0.1")

	// 10.0.0.1 goes idle, but the last sweep was moments ago.
	now = now.Add(idleAfter + time.Second)
	rl.lastSweep = now.Add(-time.Second)
	rl.getLimiter("10.0.0.2")
	if _, ok := rl.visitors["10.0.0.1"]; !ok {
		t.Fatalf("no sweep should run within %v of the previous one", sweepEvery)
	}

	now = now.Add(sweepEvery)
	rl.getLimiter("10.0.0.2")
	if _, ok := rl.visitors["10.0.0.1"]; ok {
		t.Fatalf("idle visitor should be evicted on the next sweep")
	}
}
