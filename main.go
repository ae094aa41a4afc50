package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veloraid/velora/internal/config"
	"github.com/veloraid/velora/internal/domain"
	"github.com/veloraid/velora/internal/handler"
	"github.com/veloraid/velora/internal/provider"
	"github.com/veloraid/velora/internal/repository/sqlite"
	"github.com/veloraid/velora/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.HasProviderCredentials() {
		slog.Warn("provider API credentials not configured; reseller lookups will fail with a configuration error")
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	authService := service.NewAuthService(db.Users(), cfg.BcryptCost)
	sessionService := service.NewSessionService(cfg.SessionSecret, cfg.SessionTTL)
	catalogService := service.NewCatalogService(db.Products())
	loginThrottle := service.NewLoginThrottle(0.2, 5)
	resellerClient := provider.New(cfg.ProviderBaseURL, cfg.ProviderAPIID, cfg.ProviderAPIKey, cfg.ProviderTimeout)

	// Seed the starter catalog (idempotent).
	if err := catalogService.SeedCatalog(context.Background()); err != nil {
		slog.Error("failed to seed catalog", "error", err)
		os.Exit(1)
	}

	if err := bootstrapAdmin(context.Background(), cfg, authService, db.Users()); err != nil {
		slog.Error("failed to bootstrap admin user", "error", err)
		os.Exit(1)
	}

	cookies := handler.CookieWriter{
		Secure: cfg.CookieSecure,
		MaxAge: int(cfg.SessionTTL / time.Second),
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, sessionService, catalogService, resellerClient, loginThrottle, cookies)

	chain := handler.SecurityHeaders(
		handler.RequestID(
			handler.SessionMiddleware(sessionService, cookies,
				handler.AdminGuard(mux))))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           chain,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// bootstrapAdmin creates and promotes the configured administrator if the
// account does not exist yet.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, auth *service.AuthService, users domain.UserRepository) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	user, err := auth.Register(ctx, "Administrator", cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil
		}
		return err
	}

	if err := users.Promote(ctx, user.ID, domain.RoleAdmin); err != nil {
		return err
	}
	slog.Info("admin user bootstrapped", "email", cfg.AdminEmail)
	return nil
}
