package backend

import (
	"context"
	"net/http"
)

func (c *Client) SubmitFeedback(ctx context.Context, token string, fb Feedback) Result[struct{}] {
	return data[struct{}](ctx, c, http.MethodPost, "/feedback", token, fb)
}

func (c *Client) Testimonials(ctx context.Context) Result[[]Testimonial] {
	res := data[[]Testimonial](ctx, c, http.MethodGet, "/feedback/testimonials", "", nil)
	if res.OK() && res.Data == nil {
		res.Data = []Testimonial{}
	}
	return res
}
