package http

import (
	"context"
	"net/http"
	"slices"

	"github.com/w-h-a/medrag/server"
)

type middlewareKey struct{}

// WithMiddleware wraps every route. The first middleware is the outermost.
func WithMiddleware(ms ...func(h http.Handler) http.Handler) server.Option {
	return func(o *server.Options) {
		existing, _ := MiddlewareFrom(o.Context)
		o.Context = context.WithValue(o.Context, middlewareKey{}, append(slices.Clone(existing), ms...))
	}
}

func MiddlewareFrom(ctx context.Context) ([]func(h http.Handler) http.Handler, bool) {
	ms, ok := ctx.Value(middlewareKey{}).([]func(h http.Handler) http.Handler)
	return ms, ok
}
