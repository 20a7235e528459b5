package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"socialgraph/app/auth"
	"socialgraph/app/config"
	"socialgraph/app/database"
	"socialgraph/app/repositories"
	"socialgraph/app/routes"
)

// application holds the opened stores and the handler built on them.
type application struct {
	cfg     *config.Config
	log     *logrus.Logger
	db      *gorm.DB
	tokens  *repositories.BadgerTokenRepository
	auth    *auth.Provider
	handler http.Handler
}

func newApplication(cfg *config.Config, log *logrus.Logger) (*application, error) {
	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	app := &application{cfg: cfg, log: log, db: db}
	repos := repositories.NewGormRepositories(db)

	var issuer auth.TokenIssuer
	switch cfg.Auth.Mode {
	case config.AuthModeJWT:
		issuer = auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	default:
		tokens, err := repositories.OpenBadgerTokenRepository(cfg.Auth.TokenStorePath)
		if err != nil {
			database.Close(db)
			return nil, fmt.Errorf("failed to open token store: %w", err)
		}
		app.tokens = tokens
		issuer = auth.NewOpaqueIssuer(tokens, cfg.Auth.TokenTTL)
	}
	log.WithField("mode", cfg.Auth.Mode).Info("Token authentication configured")

	app.auth = auth.NewProvider(repos.Users, issuer, log)
	app.handler = routes.SetupRoutes(routes.Dependencies{
		Log:               log,
		Repos:             repos,
		Auth:              app.auth,
		LegacyStatusCodes: cfg.Server.LegacyStatusCodes,
		Health:            func(ctx context.Context) error { return database.Ping(ctx, db) },
	})
	return app, nil
}

// Serve listens on the configured address until ctx is cancelled, then
// drains in-flight requests for at most the shutdown timeout.
func (a *application) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.cfg.Server.Addr, err)
	}
	return a.serveListener(ctx, ln)
}

func (a *application) serveListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", ln.Addr().String()).Info("Starting HTTP server")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close releases the database and token store.
func (a *application) Close() {
	if a.tokens != nil {
		if err := a.tokens.Close(); err != nil {
			a.log.WithError(err).Warn("closing token store")
		}
	}
	if err := database.Close(a.db); err != nil {
		a.log.WithError(err).Warn("closing database")
	}
}
