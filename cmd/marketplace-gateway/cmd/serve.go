package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/marketplace-gateway/api/openapi"
	"github.com/donaldgifford/marketplace-gateway/internal/api/handlers"
	"github.com/donaldgifford/marketplace-gateway/internal/api/middleware"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	e := newServer(a)

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	e.Server.ReadTimeout = a.cfg.Server.ReadTimeout
	e.Server.WriteTimeout = a.cfg.Server.WriteTimeout

	a.logger.Info("starting server",
		"addr", addr,
		"credential_backend", a.cfg.Credentials.Backend,
		"renewal_strategy", string(a.tokens.Strategy()),
		"cache_until_expiry", a.cfg.Credentials.CacheUntilExpiry,
	)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	a.logger.Info("server stopped")
	return nil
}

func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(a.logger))
	e.Use(middleware.RequestLog(a.logger))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(a.tokens)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authH := handlers.NewAuthHandler(a.tokens, a.logger)
	e.GET("/auth/login", authH.Login)

	api := humaecho.New(e, huma.DefaultConfig("Marketplace Gateway API", Version))
	openapi.RegisterRoutes(e, api)

	handlers.RegisterAuthRoutes(api, authH)
	handlers.RegisterProfileRoutes(api, handlers.NewProfileHandler(a.client))
	handlers.RegisterItemRoutes(api, handlers.NewItemsHandler(
		a.client,
		a.aggregator,
		a.cfg.Items.MaxResults,
	))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(a.limiter))

	return e
}
