package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/w-h-a/medrag/server"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type httpServer struct {
	options server.Options
	router  *mux.Router
}

func (s *httpServer) Options() server.Options {
	return s.options
}

func (s *httpServer) Handle(method string, path string, h http.Handler) {
	s.router.Handle(path, h).Methods(method)
}

func (s *httpServer) Handler() http.Handler {
	var h http.Handler = s.router

	ms, _ := MiddlewareFrom(s.options.Context)
	for i := len(ms) - 1; i >= 0; i-- {
		h = ms[i](h)
	}

	return otelhttp.NewHandler(h, s.options.Name)
}

func (s *httpServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.options.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	slog.InfoContext(ctx, "server listening", "name", s.options.Name, "address", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.options.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	slog.InfoContext(ctx, "server stopped", "name", s.options.Name)

	return nil
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func NewServer(opts ...server.Option) server.Server {
	options := server.NewOptions(opts...)

	if len(options.Address) == 0 {
		detail := "address is required for http server"
		slog.Error(detail)
		panic(detail)
	}

	s := &httpServer{
		options: options,
		router:  mux.NewRouter(),
	}

	s.Handle(http.MethodGet, "/healthz", http.HandlerFunc(healthz))

	return s
}
