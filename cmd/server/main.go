package main

import (
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/splitease/splitease/internal/api"
	"github.com/splitease/splitease/internal/auth"
	"github.com/splitease/splitease/internal/config"
	"github.com/splitease/splitease/internal/notify"
	"github.com/splitease/splitease/internal/service"
	"github.com/splitease/splitease/internal/storage/sqlite"
	"github.com/splitease/splitease/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)
	notifier := notify.LogNotifier{}

	handler := api.NewHandler(
		service.NewAuthService(authenticator, jwtManager),
		service.NewGroupService(store),
		service.NewExpenseService(store, notifier),
		service.NewSettlementService(store),
		service.NewLedgerService(store),
	)
	router := api.NewRouter(handler, jwtManager)

	// h2c allows HTTP/2 without TLS when a proxy in front terminates it.
	h2cHandler := h2c.NewHandler(router, &http2.Server{})

	addr := ":" + cfg.Port
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
