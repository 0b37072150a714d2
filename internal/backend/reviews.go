package backend

import (
	"context"
	"net/http"
)

func (c *Client) SubmitReview(ctx context.Context, token string, review NewReview) Result[Review] {
	if e := needToken(token); e != nil {
		return Fail[Review](e)
	}
	return data[Review](ctx, c, http.MethodPost, "/reviews", token, review)
}

// BuyerReviews lists the reviews written by the token's owner.
func (c *Client) BuyerReviews(ctx context.Context, token string) Result[[]Review] {
	if e := needToken(token); e != nil {
		return Fail[[]Review](e)
	}
	res := data[[]Review](ctx, c, http.MethodGet, "/reviews/buyer", token, nil)
	if res.OK() && res.Data == nil {
		res.Data = []Review{}
	}
	return res
}

func (c *Client) ProductReviews(ctx context.Context, productID string) Result[[]Review] {
	if e := needID("product id", productID); e != nil {
		return Fail[[]Review](e)
	}
	res := data[[]Review](ctx, c, http.MethodGet, "/reviews/product/"+escape(productID), "", nil)
	if res.OK() && res.Data == nil {
		res.Data = []Review{}
	}
	return res
}
