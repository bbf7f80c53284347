package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ggrmusic/ggr-web/pkg/api"
	"github.com/ggrmusic/ggr-web/pkg/clients/sheets"
	"github.com/ggrmusic/ggr-web/pkg/config"
	"github.com/ggrmusic/ggr-web/pkg/content"
	"github.com/ggrmusic/ggr-web/pkg/flash"
	"github.com/ggrmusic/ggr-web/pkg/logging"
	"github.com/ggrmusic/ggr-web/pkg/services"
	"github.com/ggrmusic/ggr-web/pkg/validation"
	"github.com/ggrmusic/ggr-web/pkg/web"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the website",
		Example: `  # Start on the port from $PORT (default 8080)
  ggr-web serve

  # Start on a custom port
  ggr-web serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides $PORT)")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if cfg.WebhookURL == "" {
		logger.Warn("GOOGLE_SHEETS_WEBHOOK_URL is not set; subscriptions will fail")
	}

	site, err := content.Default()
	if err != nil {
		return err
	}
	renderer, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	// Initialize API clients
	sheetsClient := sheets.NewClient(cfg.WebhookURL, cfg.WebhookTimeout, sheets.WithLogger(logger))

	// Initialize services
	subscriptionService := services.NewSubscriptionService(validation.New(), sheetsClient, logger)

	handlers := api.NewHandlers(
		subscriptionService,
		site,
		flash.Store{Secure: cfg.CookieSecure},
		cfg.CarouselInterval,
		logger,
	)
	router, err := api.NewRouter(cfg, handlers, renderer, logger)
	if err != nil {
		return err
	}

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		// Leave room for an in-flight webhook call to finish.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.WebhookTimeout+5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", "err", err)
			return err
		}
		logger.Info("Server stopped")
		return nil
	case err := <-serverErr:
		return fmt.Errorf("error starting server: %w", err)
	}
}
