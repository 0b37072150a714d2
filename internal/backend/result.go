package backend

import "errors"

// Kind classifies a failed call.
type Kind string

const (
	// KindNetwork means the request never got an answer from the server.
	KindNetwork Kind = "network"
	// KindBusiness means the server answered with success=false or a non-2xx status.
	KindBusiness Kind = "business"
	// KindValidation means the input was rejected locally and no request was issued.
	KindValidation Kind = "validation"
)

var (
	ErrUnreachable = errors.New("server unreachable")
	ErrRejected    = errors.New("request rejected by server")
	ErrInvalid     = errors.New("invalid input")
)

// UnreachableMessage is shown when the backend cannot be contacted.
const UnreachableMessage = "Unable to reach the server. Please check your connection and try again."

// Error is the failure variant of Result.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets callers match a failure against ErrUnreachable, ErrRejected and ErrInvalid.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnreachable:
		return e.Kind == KindNetwork
	case ErrRejected:
		return e.Kind == KindBusiness
	case ErrInvalid:
		return e.Kind == KindValidation
	}
	return false
}

// Result is returned by every backend call: either Data (with the server's
// message) or Err, never both.
type Result[T any] struct {
	Data    T
	Message string
	Err     *Error
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Unwrap converts the result into the usual (value, error) pair.
func (r Result[T]) Unwrap() (T, error) {
	if r.Err != nil {
		return r.Data, r.Err
	}
	return r.Data, nil
}

func Ok[T any](data T, message string) Result[T] {
	return Result[T]{Data: data, Message: message}
}

func Fail[T any](err *Error) Result[T] {
	return Result[T]{Err: err}
}

// Invalid builds a local validation failure.
func Invalid[T any](message string) Result[T] {
	return Result[T]{Err: &Error{Kind: KindValidation, Message: message}}
}
