// Command server runs the hospital auth API.
//
//	@title			Hospital Auth API
//	@version		1.0
//	@description	Authentication, session and role-scoped access for the hospital management service.
//	@host			localhost:8080
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/priyanshupatel84/ai-healthcare/internal/api"
	"github.com/priyanshupatel84/ai-healthcare/internal/api/handler"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/service"
	"github.com/priyanshupatel84/ai-healthcare/internal/infrastructure/config"
	mongostore "github.com/priyanshupatel84/ai-healthcare/internal/infrastructure/db/mongo"
	redisstore "github.com/priyanshupatel84/ai-healthcare/internal/infrastructure/db/redis"
	"github.com/priyanshupatel84/ai-healthcare/internal/infrastructure/notify"
	"github.com/priyanshupatel84/ai-healthcare/internal/session"
	"github.com/priyanshupatel84/ai-healthcare/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "hospital-api",
	})

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongostore.NewUserRepository(db)
	appointments := mongostore.NewAppointmentRepository(db)
	resources := mongostore.NewResourceRepository(db)
	reports := mongostore.NewReportRepository(db)
	if err := mongostore.EnsureIndexes(ctx, users, appointments, resources, reports); err != nil {
		return err
	}

	creds := service.NewCredentialStore(users, cfg.Auth.BcryptCost, log)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	resets := service.NewPasswordResetService(
		creds,
		redisstore.NewResetStore(rdb),
		notify.NewLogNotifier(cfg.PublicURL, log),
		cfg.Auth.ResetTokenTTL,
		log,
	)

	e := api.NewRouter(api.Dependencies{
		Auth:         service.NewAuthService(creds, tokens, log),
		Resets:       resets,
		Appointments: service.NewAppointmentService(appointments, creds, log),
		Resources:    service.NewResourceService(resources, log),
		Reports:      service.NewReportService(reports, creds, log),
		Approver:     creds,
		Resolver:     session.NewResolver(tokens, creds, log),
		Health: map[string]handler.Pinger{
			"mongodb": handler.PingFunc(func(ctx context.Context) error { return client.Ping(ctx, nil) }),
			"redis":   handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() }),
		},
		Cookie: handler.CookieOptions{TTL: cfg.Auth.TokenTTL, Secure: cfg.Auth.CookieSecure},
		Log:    log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
