// Package web holds the response envelope every storefront endpoint answers with.
package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vegruit/storefront/internal/backend"
)

// Envelope is {success, message, data} plus the navigation hints the SPA acts on.
type Envelope struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	Data          any    `json:"data,omitempty"`
	Redirect      string `json:"redirect,omitempty"`
	ShowAuthModal *bool  `json:"showAuthModal,omitempty"`
}

func OK(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data})
}

func Created(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Message: message})
}

// Invalid answers a local validation failure; no backend call was made.
func Invalid(c *fiber.Ctx, err error) error {
	return Fail(c, fiber.StatusBadRequest, err.Error())
}

// Error maps any error onto the envelope. Backend failures keep their
// message verbatim; anything else is an internal error.
func Error(c *fiber.Ctx, err error) error {
	var be *backend.Error
	if errors.As(err, &be) {
		return Fail(c, Status(be), be.Message)
	}
	return Fail(c, fiber.StatusInternalServerError, err.Error())
}

// Status picks the HTTP status for a backend failure.
func Status(e *backend.Error) int {
	switch e.Kind {
	case backend.KindNetwork:
		return fiber.StatusServiceUnavailable
	case backend.KindBusiness:
		switch {
		case e.Status >= 500:
			return fiber.StatusBadGateway
		case e.Status >= 400:
			return e.Status
		}
		return fiber.StatusBadRequest
	default:
		if e.Status != 0 {
			return e.Status
		}
		return fiber.StatusBadRequest
	}
}

// Result answers r: data on success, the mapped failure otherwise.
func Result[T any](c *fiber.Ctx, r backend.Result[T]) error {
	if !r.OK() {
		return Error(c, r.Err)
	}
	return OK(c, r.Data, r.Message)
}

func Bool(v bool) *bool {
	return &v
}
