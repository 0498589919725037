package http

import (
	"net/http"

	"rapih/internal/platform/net/http/bind"
)

// JSONHandler decodes and validates a T body, calls fn, and wraps the result.
// fn may return a Response to pick its own status.
func JSONHandler[T any](fn func(*http.Request, T) (any, error), opts ...bind.JSONOptions) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, opts...)
		if err != nil {
			return Error(err)
		}
		return wrap(fn(r, in))
	})
}

// NoBodyHandler calls fn without reading the body
func NoBodyHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return wrap(fn(r)) })
}

func wrap(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
