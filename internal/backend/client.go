// Package backend wraps the VegRuit REST API. Every call returns a Result so
// callers branch on one failure shape regardless of whether the server was
// unreachable or answered {success:false, message}.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const maxBodyBytes = 4 << 20

// Client talks to the backend at baseURL. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: timeout,
	}
}

// WithHTTPClient swaps the transport, mostly for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (e envelope) failed() bool {
	return e.Success != nil && !*e.Success
}

func (e envelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// send performs one request and normalises every failure into *Error.
func (c *Client) send(ctx context.Context, method, path, token string, body any) ([]byte, envelope, *Error) {
	var env envelope

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, env, &Error{Kind: KindValidation, Message: "could not encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, env, &Error{Kind: KindValidation, Message: "could not build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		log.Warnf("backend %s %s unreachable: %v", method, path, err)
		return nil, env, &Error{Kind: KindNetwork, Message: UnreachableMessage, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, env, &Error{Kind: KindNetwork, Status: res.StatusCode, Message: UnreachableMessage, Err: err}
	}

	decodeErr := json.Unmarshal(raw, &env)
	if res.StatusCode >= http.StatusBadRequest || env.failed() {
		msg := env.text()
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return raw, env, &Error{Kind: KindBusiness, Status: res.StatusCode, Message: msg, Err: ErrRejected}
	}
	if decodeErr != nil && len(bytes.TrimSpace(raw)) > 0 && !json.Valid(raw) {
		return raw, env, &Error{Kind: KindBusiness, Status: res.StatusCode, Message: "unexpected response from server", Err: decodeErr}
	}
	return raw, env, nil
}

// data decodes the envelope's data field into T.
func data[T any](ctx context.Context, c *Client, method, path, token string, body any) Result[T] {
	_, env, e := c.send(ctx, method, path, token, body)
	if e != nil {
		return Fail[T](e)
	}
	var out T
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return Fail[T](&Error{Kind: KindBusiness, Message: "unexpected response from server", Err: err})
		}
	}
	return Ok(out, env.Message)
}

// whole decodes the entire response body into T, for endpoints that do not
// nest their payload under data.
func whole[T any](ctx context.Context, c *Client, method, path, token string, body any) Result[T] {
	raw, env, e := c.send(ctx, method, path, token, body)
	if e != nil {
		return Fail[T](e)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return Fail[T](&Error{Kind: KindBusiness, Message: "unexpected response from server", Err: err})
	}
	return Ok(out, env.Message)
}

func escape(segment string) string {
	return url.PathEscape(segment)
}

func needToken(token string) *Error {
	if token == "" {
		return &Error{Kind: KindValidation, Status: http.StatusUnauthorized, Message: "please log in to continue"}
	}
	return nil
}

func needID(name, id string) *Error {
	if strings.TrimSpace(id) == "" {
		return &Error{Kind: KindValidation, Message: fmt.Sprintf("%s is required", name)}
	}
	return nil
}

// IsCanceled reports whether a failure was caused by the caller abandoning the request.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
