package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/service"
	"github.com/priyanshupatel84/ai-healthcare/internal/infrastructure/config"
	mongostore "github.com/priyanshupatel84/ai-healthcare/internal/infrastructure/db/mongo"
	"github.com/priyanshupatel84/ai-healthcare/internal/session"
)

// backend is the slice of the service the CLI needs.
type backend struct {
	Auth     ports.AuthService
	Users    ports.CredentialStore
	Approver ports.DoctorApprover
	Resolver *session.Resolver
	Close    func(ctx context.Context) error
}

type connectFunc func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error)

func connectMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}

	creds := service.NewCredentialStore(mongostore.NewUserRepository(db), cfg.Auth.BcryptCost, log)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	return &backend{
		Auth:     service.NewAuthService(creds, tokens, log),
		Users:    creds,
		Approver: creds,
		Resolver: session.NewResolver(tokens, creds, log),
		Close:    client.Disconnect,
	}, nil
}
