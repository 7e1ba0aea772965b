package responses

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"jojo-client/internal/domain/audiosession"
	"jojo-client/internal/utils/platformerrors"
)

// Public error messages of the audio session contract.
const (
	MessageAPIKeyNotConfigured = "API key not configured"
	MessageCreateSessionFailed = "Failed to create audio session"
)

// HandleError maps domain errors to platform errors and writes the response.
// message is used for anything not recognized.
func HandleError(c *gin.Context, err error, message string) {
	logger := log.With().Str("path", c.Request.URL.Path).Logger()
	ctx := c.Request.Context()

	var perr *platformerrors.PlatformError
	switch {
	case errors.Is(err, audiosession.ErrAPIKeyNotConfigured):
		perr = platformerrors.NewError(ctx, platformerrors.LayerRoute, platformerrors.ErrorTypeConfiguration, MessageAPIKeyNotConfigured, err)
	case errors.Is(err, audiosession.ErrUpstream):
		perr = platformerrors.NewError(ctx, platformerrors.LayerRoute, platformerrors.ErrorTypeExternal, MessageCreateSessionFailed, err)
	case errors.Is(err, audiosession.ErrSessionNotFound):
		platformerrors.WriteNotFound(c, "session not found")
		return
	default:
		perr = platformerrors.AsError(ctx, platformerrors.LayerRoute, err, message)
		// Keep the public message even when the cause is already a PlatformError.
		perr.Message = message
	}

	platformerrors.WriteHTTPError(c, perr, logger)
}
