package handlers

import (
	"github.com/google/wire"

	"jojo-client/internal/domain/audiosession"
)

// Provider holds all HTTP handlers.
type Provider struct {
	AudioSession *AudioSessionHandler
}

// NewProvider creates a new handler provider.
func NewProvider(sessionService audiosession.Service) *Provider {
	return &Provider{
		AudioSession: NewAudioSessionHandler(sessionService),
	}
}

// HandlerProvider provides all handlers for wire.
var HandlerProvider = wire.NewSet(
	NewProvider,
)
