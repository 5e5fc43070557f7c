package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/w-h-a/medrag/internal/config"
	"github.com/w-h-a/medrag/internal/handler/chat"
	"github.com/w-h-a/medrag/internal/service/query"
	"github.com/w-h-a/medrag/prompt"
	"github.com/w-h-a/medrag/retriever"
	"github.com/w-h-a/medrag/retriever/vector"
	"github.com/w-h-a/medrag/server"
	httpserver "github.com/w-h-a/medrag/server/http"
)

var (
	cfg struct {
		config.Providers  `embed:""`
		config.Generation `embed:""`

		// Server config
		Address         string        `help:"Address the chat api listens on" default:":3000" env:"ADDRESS"`
		ShutdownTimeout time.Duration `help:"Time allowed for in-flight requests on shutdown" default:"10s" env:"SHUTDOWN_TIMEOUT"`

		// Query config
		Limit int `help:"Chunks retrieved per question" default:"10" env:"LIMIT"`
	}
)

func main() {
	_ = godotenv.Load()
	_ = kong.Parse(&cfg, kong.Description("Serve the medical chat api."))

	logger, err := config.NewLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to configure logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	em, err := cfg.NewEmbedder(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create embedder", "error", err)
		os.Exit(1)
	}

	st, err := cfg.NewStorer(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create storer", "error", err)
		os.Exit(1)
	}

	gen, err := cfg.NewGenerator(ctx, cfg.Providers)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create generator", "error", err)
		os.Exit(1)
	}
	defer config.Close(em, st, gen)

	re := vector.NewRetriever(
		retriever.WithEmbedder(em),
		retriever.WithStorer(st),
		retriever.WithCollection(cfg.Collection),
		retriever.WithLimit(cfg.Limit),
	)

	svc := query.New(
		re,
		prompt.New(),
		gen,
		query.WithLimit(cfg.Limit),
	)

	srv := httpserver.NewServer(
		server.WithName("medrag"),
		server.WithAddress(cfg.Address),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
		httpserver.WithMiddleware(recoverer),
	)

	srv.Handle(http.MethodPost, "/api/chat", http.HandlerFunc(chat.NewHandler(svc).Handle))

	if err := srv.Run(ctx); err != nil {
		slog.ErrorContext(ctx, "server failed", "error", err)
		os.Exit(1)
	}
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				slog.ErrorContext(r.Context(), "panic serving request", "path", r.URL.Path, "panic", v)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Internal server error","success":false}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
