package domain

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"jojo-client/internal/config"
	"jojo-client/internal/domain/audiosession"
)

// ProvideAudioSessionService provides the session proxy service.
func ProvideAudioSessionService(
	sessionStore audiosession.Store,
	upstream audiosession.Upstream,
	cfg *config.Config,
	log zerolog.Logger,
) audiosession.Service {
	return audiosession.NewService(
		sessionStore,
		upstream,
		audiosession.Options{
			APIKey:          cfg.OpenAIAPIKey,
			Model:           cfg.RealtimeModel,
			Voice:           cfg.RealtimeVoice,
			AllowClientKeys: cfg.AllowClientKeys,
			FallbackTTL:     cfg.SessionFallbackTTL,
		},
		log,
	)
}

// ServiceProvider provides all domain services.
var ServiceProvider = wire.NewSet(
	ProvideAudioSessionService,
)
