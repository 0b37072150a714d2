package review

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/order"
	"github.com/vegruit/storefront/internal/validate"
)

var ErrNotReviewable = errors.New("this item is not awaiting a review")

// Gateway is the part of the backend client reviews need.
type Gateway interface {
	BuyerOrders(ctx context.Context, token string) backend.Result[[]backend.Order]
	BuyerReviews(ctx context.Context, token string) backend.Result[[]backend.Review]
	SubmitReview(ctx context.Context, token string, review backend.NewReview) backend.Result[backend.Review]
}

type Service struct {
	gateway Gateway
	tracker *Tracker
	guard   *order.InFlight
}

func NewService(gw Gateway, tracker *Tracker, guard *order.InFlight) *Service {
	if tracker == nil {
		tracker = NewTracker()
	}
	if guard == nil {
		guard = order.NewInFlight()
	}
	return &Service{gateway: gw, tracker: tracker, guard: guard}
}

func (s *Service) Tracker() *Tracker {
	return s.tracker
}

// Pending rebuilds the namespace's reviewable set from the backend.
func (s *Service) Pending(ctx context.Context, namespace, token string) backend.Result[[]Item] {
	orders := s.gateway.BuyerOrders(ctx, token)
	if !orders.OK() {
		return backend.Fail[[]Item](orders.Err)
	}
	reviewed := s.gateway.BuyerReviews(ctx, token)
	if !reviewed.OK() {
		return backend.Fail[[]Item](reviewed.Err)
	}
	set := Build(orders.Data, reviewed.Data)
	s.tracker.Put(namespace, token, set)
	return backend.Ok(set.Items(), "")
}

// Submit validates and sends a review. On success the pair is removed from
// the cached set without asking the backend again.
func (s *Service) Submit(ctx context.Context, namespace, token string, in backend.NewReview) backend.Result[backend.Review] {
	in.Comment = strings.TrimSpace(in.Comment)
	err := validate.First(
		validate.Required(
			validate.Field{Name: "order", Value: in.OrderID},
			validate.Field{Name: "product", Value: in.ProductID},
			validate.Field{Name: "comment", Value: in.Comment},
		),
		validate.Rating(in.Rating),
	)
	if err != nil {
		return backend.Invalid[backend.Review](err.Error())
	}

	k := Key{OrderID: in.OrderID, ProductID: in.ProductID}
	release, ok := s.guard.Acquire(namespace + "|" + in.OrderID + "|" + in.ProductID + "|review")
	if !ok {
		return backend.Fail[backend.Review](&backend.Error{
			Kind:    backend.KindValidation,
			Status:  http.StatusConflict,
			Message: "This review is already being submitted",
			Err:     order.ErrInFlight,
		})
	}
	defer release()

	// Checked under the guard: a submit that just finished has removed the pair.
	cached, contains := s.tracker.Has(namespace, token, k)
	if !cached {
		if res := s.Pending(ctx, namespace, token); !res.OK() {
			return backend.Fail[backend.Review](res.Err)
		}
		_, contains = s.tracker.Has(namespace, token, k)
	}
	if !contains {
		return backend.Fail[backend.Review](&backend.Error{
			Kind:    backend.KindValidation,
			Status:  http.StatusConflict,
			Message: ErrNotReviewable.Error(),
			Err:     ErrNotReviewable,
		})
	}

	res := s.gateway.SubmitReview(ctx, token, in)
	if !res.OK() {
		return res
	}
	s.tracker.Remove(namespace, token, k)
	if res.Message == "" {
		res.Message = "Thank you for your review"
	}
	return res
}
