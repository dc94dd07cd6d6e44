package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storekit/catalog/internal/adapters/handler/http"
	"github.com/storekit/catalog/internal/adapters/hash"
	"github.com/storekit/catalog/internal/adapters/repository/postgres"
	"github.com/storekit/catalog/internal/adapters/token/jwt"
	"github.com/storekit/catalog/internal/config"
	"github.com/storekit/catalog/internal/core/services"
	"github.com/storekit/catalog/internal/ratelimit"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(cfg.MigrationsURL, cfg.DatabaseURL); err != nil {
		return err
	}
	logger.Info("database ready")

	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)

	hasher := hash.NewBcryptHasher(cfg.BcryptCost)
	tokens := jwt.NewProvider([]byte(cfg.JWTSecret), cfg.JWTTTL)

	authService := services.NewAuthService(userRepo, hasher, tokens)
	productService := services.NewProductService(productRepo)
	userService := services.NewUserService(userRepo)

	limiter := ratelimit.NewLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Close()

	router := http.NewHandler(
		http.NewAuthHandler(authService),
		http.NewProductHandler(productService),
		http.NewUserHandler(userService),
		tokens,
		limiter,
		cfg.RequestTimeout,
	)

	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("stopped")
	return nil
}
