package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"conventions/config"
	"conventions/internal/adapters/auth"
	"conventions/internal/adapters/email"
	deliveryhttp "conventions/internal/delivery/http"
	"conventions/internal/delivery/http/controllers"
	"conventions/internal/platform/metrics"
	"conventions/internal/repository/postgres"
	"conventions/internal/services"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := config.NewLogger(cfg)

	db, err := openDB(ctx, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		if err := postgres.Migrate(db, logger); err != nil {
			return err
		}
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			Endpoint:           cfg.Email.SESEndpoint,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}

	m := metrics.New()
	opts := []services.Option{
		services.WithLogger(logger),
		services.WithMetrics(m),
		services.WithTimeout(cfg.RequestTimeout),
		services.WithEmailService(services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)),
	}

	venueRepo := postgres.NewVenueRepository(db)
	conventionRepo := postgres.NewConventionRepository(db)
	userRepo := postgres.NewUserRepository(db)
	talkRepo := postgres.NewTalkRepository(db)
	conventionRegs := postgres.NewConventionRegistrationRepository(db)
	talkRegs := postgres.NewTalkRegistrationRepository(db)

	venueSvc := services.NewVenueService(venueRepo, opts...)
	userSvc := services.NewUserService(userRepo, opts...)
	conventionSvc := services.NewConventionService(conventionRepo, venueRepo, userRepo, conventionRegs, opts...)
	talkSvc := services.NewTalkService(talkRepo, conventionRepo, userRepo, conventionRegs, talkRegs, opts...)

	handler := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:         logger,
		Verifier:       auth.NewJWTVerifier(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience),
		Metrics:        m,
		Gatherer:       prometheus.DefaultGatherer,
		AllowedOrigins: cfg.AllowedOrigins,
		Venues:         controllers.NewVenueController(logger, venueSvc),
		Conventions:    controllers.NewConventionController(logger, conventionSvc),
		Talks:          controllers.NewTalkController(logger, talkSvc),
		Users:          controllers.NewUserController(logger, userSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
