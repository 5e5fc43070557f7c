package server

import (
	"context"
	"net/http"
)

// Server routes requests to registered handlers until its context ends.
type Server interface {
	Options() Options
	Handle(method string, path string, h http.Handler)
	Handler() http.Handler
	Run(ctx context.Context) error
}
