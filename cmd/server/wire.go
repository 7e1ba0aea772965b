//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"jojo-client/internal/config"
	"jojo-client/internal/domain"
	"jojo-client/internal/domain/audiosession"
	"jojo-client/internal/infrastructure/auth"
	"jojo-client/internal/infrastructure/openai"
	"jojo-client/internal/infrastructure/store"
	"jojo-client/internal/interfaces"
)

// ProviderSet is the wire provider set for the application.
var ProviderSet = wire.NewSet(
	// Infrastructure providers
	ProvideSessionStore,
	ProvideJanitor,
	ProvideUpstream,
	auth.NewValidator,
	wire.Bind(new(audiosession.Store), new(*store.MemoryStore)),

	// Domain providers
	domain.ServiceProvider,

	// Interface providers
	interfaces.InterfacesProvider,

	// Application
	NewApplication,
)

// ProvideSessionStore provides the session ledger.
func ProvideSessionStore(log zerolog.Logger) *store.MemoryStore {
	return store.NewMemoryStore(log)
}

// ProvideJanitor provides the ledger janitor.
func ProvideJanitor(sessionStore *store.MemoryStore, cfg *config.Config, log zerolog.Logger) *store.Janitor {
	return store.NewJanitor(sessionStore, cfg.SessionCleanupInterval, log)
}

// ProvideUpstream provides the OpenAI sessions client.
func ProvideUpstream(cfg *config.Config) audiosession.Upstream {
	return openai.NewSessionsClient(cfg.OpenAIBaseURL, cfg.UpstreamTimeout)
}

// CreateApplication creates the application with all dependencies wired.
func CreateApplication(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Application, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
