// Package httpkit re-exports the platform HTTP helpers modules need, so
// module code imports one package for routing and responses
package httpkit

import (
	"net/http"

	phttp "rapih/internal/platform/net/http"
	"rapih/internal/platform/net/http/bind"
)

type (
	// Envelope is the response body shape
	Envelope = phttp.Envelope
	// Response is what return style handlers produce
	Response = phttp.Response
	// Handler is the route handler type
	Handler = phttp.Handler
	// Router is the routing seam
	Router = phttp.Router
	// JSONOptions tunes body decoding
	JSONOptions = bind.JSONOptions
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error maps err to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Call adapts a handler that reads no body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.NoBodyHandler(fn) }

// JSON adapts a handler that decodes and validates a T body
func JSON[T any](fn func(*http.Request, T) (any, error), opts ...JSONOptions) Handler {
	return phttp.JSONHandler(fn, opts...)
}
