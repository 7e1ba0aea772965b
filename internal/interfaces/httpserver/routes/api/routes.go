package api

import (
	"github.com/gin-gonic/gin"

	"jojo-client/internal/infrastructure/auth"
	"jojo-client/internal/interfaces/httpserver/handlers"
	"jojo-client/internal/interfaces/httpserver/middlewares"
)

// Routes holds the /api route configuration.
type Routes struct {
	handlers  *handlers.Provider
	validator *auth.Validator
}

// NewRoutes creates a new api routes instance. A nil validator disables auth.
func NewRoutes(handlerProvider *handlers.Provider, validator *auth.Validator) *Routes {
	return &Routes{
		handlers:  handlerProvider,
		validator: validator,
	}
}

// Register registers all /api routes on the engine.
func (r *Routes) Register(engine *gin.Engine) {
	audio := engine.Group("/api/audio")
	audio.Use(r.validator.Middleware())
	audio.Use(middlewares.ClientKeys())
	RegisterAudioRoutes(audio, r.handlers.AudioSession)
}
