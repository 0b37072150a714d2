package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/session"
	"github.com/vegruit/storefront/internal/validate"
)

var (
	ErrInFlight      = errors.New("request already in progress")
	ErrNotAllowed    = errors.New("action not allowed in current status")
	ErrPaymentMethod = errors.New("please choose cash on delivery, eSewa or Khalti")
)

// PaymentMethods are the selectable options at checkout.
var PaymentMethods = []string{"cod", "esewa", "khalti"}

var actionDescription = map[Action]string{
	ActionCancel:         "cancelled",
	ActionConfirmReceipt: "marked as received",
	ActionAccept:         "accepted",
	ActionReject:         "rejected",
	ActionAdvance:        "advanced",
}

// Gateway is the part of the backend client orders need.
type Gateway interface {
	BuyerOrders(ctx context.Context, token string) backend.Result[[]backend.Order]
	SellerOrders(ctx context.Context, token string) backend.Result[[]backend.Order]
	Order(ctx context.Context, token, orderID string) backend.Result[backend.Order]
	CreateOrder(ctx context.Context, token string, order backend.NewOrder) backend.Result[backend.Order]
	AcceptOrder(ctx context.Context, token, orderID string) backend.Result[backend.Order]
	RejectOrder(ctx context.Context, token, orderID, reason string) backend.Result[backend.Order]
	CancelOrder(ctx context.Context, token, orderID, reason string) backend.Result[backend.Order]
	UpdateOrderStatus(ctx context.Context, token, orderID, status string) backend.Result[backend.Order]
}

// View is an order as every page renders it.
type View struct {
	backend.Order
	Projection Projection `json:"projection"`
	Actions    []Action   `json:"actions"`
	Timeline   []Stage    `json:"timeline"`
}

func NewView(o backend.Order, role session.UserType) View {
	return View{
		Order:      o,
		Projection: Project(o.Status),
		Actions:    AllowedActions(o.Status, role),
		Timeline:   Timeline(o),
	}
}

// Caller identifies who is acting.
type Caller struct {
	Visitor string
	Token   string
	Role    session.UserType
}

type Service struct {
	gateway Gateway
	guard   *InFlight
}

func NewService(gw Gateway, guard *InFlight) *Service {
	if guard == nil {
		guard = NewInFlight()
	}
	return &Service{gateway: gw, guard: guard}
}

// List returns the caller's orders, newest first as the backend sends them,
// optionally restricted to one status.
func (s *Service) List(ctx context.Context, caller Caller, status string) backend.Result[[]View] {
	var res backend.Result[[]backend.Order]
	switch caller.Role {
	case session.Seller:
		res = s.gateway.SellerOrders(ctx, caller.Token)
	default:
		res = s.gateway.BuyerOrders(ctx, caller.Token)
	}
	if !res.OK() {
		return backend.Fail[[]View](res.Err)
	}

	var want Status
	if status != "" {
		parsed, ok := Parse(status)
		if !ok {
			return backend.Invalid[[]View](fmt.Sprintf("unknown status %q", status))
		}
		want = parsed
	}

	views := make([]View, 0, len(res.Data))
	for _, o := range res.Data {
		if want != "" {
			if got, _ := Parse(o.Status); got != want {
				continue
			}
		}
		views = append(views, NewView(o, caller.Role))
	}
	return backend.Ok(views, res.Message)
}

func (s *Service) Get(ctx context.Context, caller Caller, orderID string) backend.Result[View] {
	res := s.gateway.Order(ctx, caller.Token, orderID)
	if !res.OK() {
		return backend.Fail[View](res.Err)
	}
	return backend.Ok(NewView(res.Data, caller.Role), res.Message)
}

// CheckoutInput is the checkout form.
type CheckoutInput struct {
	DeliveryAddress string `json:"deliveryAddress"`
	City            string `json:"city"`
	Phone           string `json:"phone"`
	PaymentMethod   string `json:"paymentMethod"`
	Notes           string `json:"notes"`
}

func (in CheckoutInput) validate() error {
	err := validate.First(
		validate.Required(
			validate.Field{Name: "delivery address", Value: in.DeliveryAddress},
			validate.Field{Name: "phone", Value: in.Phone},
			validate.Field{Name: "payment method", Value: in.PaymentMethod},
		),
		validate.Phone(in.Phone),
	)
	if err != nil {
		return err
	}
	method := strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	for _, m := range PaymentMethods {
		if m == method {
			return nil
		}
	}
	return ErrPaymentMethod
}

// Create places an order from the buyer's cart. Payment is only recorded as
// the chosen method; no gateway is contacted.
func (s *Service) Create(ctx context.Context, caller Caller, in CheckoutInput) backend.Result[View] {
	if err := in.validate(); err != nil {
		return backend.Invalid[View](err.Error())
	}
	release, ok := s.guard.Acquire(inFlightKey(caller.Visitor, "", "create"))
	if !ok {
		return backend.Fail[View](inFlightError())
	}
	defer release()

	res := s.gateway.CreateOrder(ctx, caller.Token, backend.NewOrder{
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		City:            strings.TrimSpace(in.City),
		Phone:           strings.TrimSpace(in.Phone),
		PaymentMethod:   strings.ToLower(strings.TrimSpace(in.PaymentMethod)),
		Notes:           in.Notes,
	})
	if !res.OK() {
		return backend.Fail[View](res.Err)
	}
	log.Infof("order %s placed by %s", res.Data.ID, caller.Visitor)
	return backend.Ok(NewView(res.Data, caller.Role), messageOr(res.Message, "Order placed successfully"))
}

// Act performs action on the order. The current status is fetched and the
// action checked before the transition is sent; a duplicate request for the
// same visitor, order and action is refused while one is outstanding.
func (s *Service) Act(ctx context.Context, caller Caller, orderID string, action Action, reason string) backend.Result[View] {
	if strings.TrimSpace(orderID) == "" {
		return backend.Invalid[View]("order id is required")
	}
	release, ok := s.guard.Acquire(inFlightKey(caller.Visitor, orderID, action))
	if !ok {
		return backend.Fail[View](inFlightError())
	}
	defer release()

	current := s.gateway.Order(ctx, caller.Token, orderID)
	if !current.OK() {
		return backend.Fail[View](current.Err)
	}
	from, _ := Parse(current.Data.Status)
	to, hasTarget := target(from, action)
	if !Allows(current.Data.Status, caller.Role, action) || !hasTarget || !CanTransition(from, to, caller.Role) {
		return backend.Fail[View](&backend.Error{
			Kind:    backend.KindValidation,
			Status:  http.StatusConflict,
			Message: fmt.Sprintf("order cannot be %s while %s", actionDescription[action], projections[from].Label),
			Err:     ErrNotAllowed,
		})
	}

	var res backend.Result[backend.Order]
	switch action {
	case ActionCancel:
		res = s.gateway.CancelOrder(ctx, caller.Token, orderID, reason)
	case ActionAccept:
		res = s.gateway.AcceptOrder(ctx, caller.Token, orderID)
	case ActionReject:
		res = s.gateway.RejectOrder(ctx, caller.Token, orderID, reason)
	default:
		res = s.gateway.UpdateOrderStatus(ctx, caller.Token, orderID, string(to))
	}
	if !res.OK() {
		return backend.Fail[View](res.Err)
	}

	updated := res.Data
	if updated.ID == "" {
		updated = current.Data
		updated.Status = string(to)
	}
	log.Infof("order %s %s by %s", orderID, actionDescription[action], caller.Visitor)
	return backend.Ok(NewView(updated, caller.Role), messageOr(res.Message, "Order "+actionDescription[action]))
}

func inFlightError() *backend.Error {
	return &backend.Error{Kind: backend.KindValidation, Status: http.StatusConflict, Message: "This request is already being processed", Err: ErrInFlight}
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
