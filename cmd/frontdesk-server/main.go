package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/frontdesk/frontdesk/internal/config"
	"github.com/frontdesk/frontdesk/internal/domain/appointment"
	"github.com/frontdesk/frontdesk/internal/domain/auth"
	"github.com/frontdesk/frontdesk/internal/domain/catalog"
	"github.com/frontdesk/frontdesk/internal/domain/dashboard"
	"github.com/frontdesk/frontdesk/internal/domain/patient"
	"github.com/frontdesk/frontdesk/internal/domain/prescription"
	"github.com/frontdesk/frontdesk/internal/domain/summary"
	"github.com/frontdesk/frontdesk/internal/platform/middleware"
	"github.com/frontdesk/frontdesk/internal/platform/session"
	"github.com/frontdesk/frontdesk/internal/platform/upstream"
	"github.com/frontdesk/frontdesk/internal/platform/validation"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "frontdesk-server",
		Short: "Hospital front desk API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(pingCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the front desk API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the upstream hospital API is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			client := upstream.New(cfg.UpstreamURL, upstream.WithTimeout(10*time.Second))
			if err := client.Ping(context.Background()); err != nil {
				return fmt.Errorf("upstream unreachable: %w", err)
			}
			fmt.Printf("upstream %s is reachable\n", cfg.UpstreamURL)
			return nil
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Upstream client. No timeout unless configured; the upstream owns all
	// durable state and slow responses surface as they are.
	opts := []upstream.Option{}
	if d := cfg.UpstreamTimeoutDuration(); d > 0 {
		opts = append(opts, upstream.WithTimeout(d))
	}
	client := upstream.New(cfg.UpstreamURL, opts...)
	logger.Info().Str("upstream", cfg.UpstreamURL).Msg("upstream configured")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(session.Middleware())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	api := e.Group("/api")

	// Auth
	authRepo := auth.NewHTTPRepository(client)
	authSvc := auth.NewService(authRepo)
	auth.NewHandler(authSvc).RegisterRoutes(api)

	// Patients
	patientRepo := patient.NewRepoHTTP(client)
	patientSvc := patient.NewService(patientRepo)
	patient.NewHandler(patientSvc).RegisterRoutes(api)

	// Appointments
	apptRepo := appointment.NewRepoHTTP(client)
	apptSvc := appointment.NewService(apptRepo)
	appointment.NewHandler(apptSvc).RegisterRoutes(api)

	// Medicine catalog and entry drafts
	catalogRepo := catalog.NewRepoHTTP(client)
	catalogSvc := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogSvc).RegisterRoutes(api)

	// Prescription composer
	testSource := prescription.NewHTTPTestSource(client)
	prescriptionSvc := prescription.NewService(patientRepo, catalogSvc, testSource)
	prescription.NewHandler(prescriptionSvc).RegisterRoutes(api)

	// Summaries and printable documents
	summary.NewHandler(patientSvc).RegisterRoutes(api)

	// Dashboard counters
	dashboardSvc := dashboard.NewService(patientSvc, apptSvc)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(api)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting front desk server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
