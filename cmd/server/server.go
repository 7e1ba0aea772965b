// @title           Jojo Session Proxy
// @version         1.0
// @description     Issues ephemeral OpenAI Realtime credentials for the voice chat client.
// @description     The server-held OPENAI_API_KEY never leaves this process.

// @host      localhost:3000
// @BasePath  /

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"jojo-client/internal/config"
	"jojo-client/internal/domain"
	"jojo-client/internal/infrastructure/auth"
	"jojo-client/internal/infrastructure/logger"
	"jojo-client/internal/infrastructure/observability"
	"jojo-client/internal/infrastructure/openai"
	"jojo-client/internal/infrastructure/store"
	"jojo-client/internal/interfaces/httpserver"
	"jojo-client/internal/interfaces/httpserver/handlers"
	"jojo-client/internal/interfaces/httpserver/routes"
)

// Application holds the main application components.
type Application struct {
	httpServer *httpserver.HTTPServer
	janitor    *store.Janitor
	log        zerolog.Logger
}

// NewApplication creates a new application instance.
func NewApplication(httpServer *httpserver.HTTPServer, janitor *store.Janitor, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		janitor:    janitor,
		log:        log,
	}
}

// Start runs the HTTP server and the ledger janitor until ctx is cancelled
// or one of them fails.
func (a *Application) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.httpServer.Run(gctx)
	})
	g.Go(func() error {
		return a.janitor.Run(gctx)
	})
	return g.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	log = log.With().Str("service", cfg.ServiceName).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup observability
	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OpenAIAPIKey == "" {
		log.Warn().Bool("allow_client_keys", cfg.AllowClientKeys).
			Msg("OPENAI_API_KEY is not set; session requests will fail unless the client supplies a key")
	}

	// Session ledger (mutex-based, no goroutine) and its janitor
	sessionStore := store.NewMemoryStore(log)
	janitor := store.NewJanitor(sessionStore, cfg.SessionCleanupInterval, log)

	// Upstream OpenAI client
	upstream := openai.NewSessionsClient(cfg.OpenAIBaseURL, cfg.UpstreamTimeout)

	sessionService := domain.ProvideAudioSessionService(sessionStore, upstream, cfg, log)

	validator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize auth")
	}
	defer validator.Close()

	// Initialize HTTP server
	handlerProvider := handlers.NewProvider(sessionService)
	routeProvider := routes.NewProvider(handlerProvider, validator)
	httpServer := httpserver.New(cfg, log, handlerProvider, routeProvider)

	// Create and start application
	app := NewApplication(httpServer, janitor, log)

	log.Info().
		Int("port", cfg.HTTPPort).
		Str("environment", cfg.Environment).
		Str("model", cfg.RealtimeModel).
		Msg("starting application")

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env", "../../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
