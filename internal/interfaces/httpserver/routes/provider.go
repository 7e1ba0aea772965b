package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"jojo-client/internal/infrastructure/auth"
	"jojo-client/internal/interfaces/httpserver/handlers"
	"jojo-client/internal/interfaces/httpserver/routes/api"
)

// Provider holds all route providers.
type Provider struct {
	API *api.Routes
}

// NewProvider creates a new route provider.
func NewProvider(handlerProvider *handlers.Provider, validator *auth.Validator) *Provider {
	return &Provider{
		API: api.NewRoutes(handlerProvider, validator),
	}
}

// Register registers all routes on the engine.
func (p *Provider) Register(engine *gin.Engine) {
	p.API.Register(engine)
}

// RouteProvider provides all routes for wire.
var RouteProvider = wire.NewSet(
	NewProvider,
)
