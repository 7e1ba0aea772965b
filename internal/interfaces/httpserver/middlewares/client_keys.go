package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"jojo-client/internal/domain/settings"
)

// ClientKeysKey is the context key for decoded client keys.
const ClientKeysKey = "client_keys"

// ClientKeys decodes the x-chat-ollama-keys header when present.
// A malformed header is logged and treated as absent.
func ClientKeys() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(settings.HeaderName)
		if raw == "" {
			c.Next()
			return
		}

		keys, err := settings.DecodeHeader(raw)
		if err != nil {
			log.Warn().
				Err(err).
				Str("request_id", GetRequestID(c)).
				Msg("ignoring malformed keys header")
			c.Next()
			return
		}

		c.Set(ClientKeysKey, &keys)
		c.Next()
	}
}

// GetClientKeys returns the decoded client keys, or nil.
func GetClientKeys(c *gin.Context) *settings.Keys {
	if v, exists := c.Get(ClientKeysKey); exists {
		if keys, ok := v.(*settings.Keys); ok {
			return keys
		}
	}
	return nil
}
