package feedback

import (
	"context"
	"strings"

	"github.com/vegruit/storefront/internal/backend"
	"github.com/vegruit/storefront/internal/validate"
)

// Input is the feedback form. Rating is optional; zero means none given.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

func (in Input) validate() error {
	if err := validate.Required(
		validate.Field{Name: "name", Value: in.Name},
		validate.Field{Name: "email", Value: in.Email},
		validate.Field{Name: "message", Value: in.Message},
	); err != nil {
		return err
	}
	if err := validate.Email(strings.TrimSpace(in.Email)); err != nil {
		return err
	}
	if in.Rating != 0 {
		return validate.Rating(in.Rating)
	}
	return nil
}

type Service struct {
	gateway      Gateway
	testimonials *Testimonials
}

func NewService(gw Gateway, testimonials *Testimonials) *Service {
	return &Service{gateway: gw, testimonials: testimonials}
}

func (s *Service) Testimonials(ctx context.Context) backend.Result[[]backend.Testimonial] {
	return s.testimonials.List(ctx)
}

// Submit sends feedback; logged-in visitors send their token along.
func (s *Service) Submit(ctx context.Context, token string, in Input) backend.Result[struct{}] {
	if err := in.validate(); err != nil {
		return backend.Invalid[struct{}](err.Error())
	}
	res := s.gateway.SubmitFeedback(ctx, token, backend.Feedback{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
		Rating:  in.Rating,
	})
	if res.OK() && res.Message == "" {
		res.Message = "Thank you for your feedback!"
	}
	return res
}
