package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jojo-client/internal/interfaces/httpserver/handlers"
	"jojo-client/internal/interfaces/httpserver/middlewares"
	"jojo-client/internal/interfaces/httpserver/responses"
	"jojo-client/internal/interfaces/httpserver/responses/sessionres"
)

// RegisterAudioRoutes registers the audio session routes.
func RegisterAudioRoutes(router gin.IRoutes, handler *handlers.AudioSessionHandler) {
	router.POST("/session", createSession(handler))

	// Ledger endpoints
	router.GET("/sessions", listSessions(handler))
	router.GET("/sessions/:id", getSession(handler))
}

// createSession godoc
// @Summary      Create an audio session
// @Description  Mints an ephemeral OpenAI Realtime session and returns the upstream JSON unchanged. No request body.
// @Description  The optional x-chat-ollama-keys header carries the client's URL-encoded keys; they are only used when the server allows client keys.
// @Tags         Audio API
// @Produce      json
// @Param        x-chat-ollama-keys header string false "URL-encoded JSON of the client's provider keys"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} responses.ErrorResponse "Unauthorized (only when AUTH_ENABLED)"
// @Failure      500 {object} responses.ErrorResponse
// @Router       /api/audio/session [post]
func createSession(handler *handlers.AudioSessionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := handler.CreateSession(c.Request.Context(), middlewares.GetClientKeys(c))
		if err != nil {
			responses.HandleError(c, err, responses.MessageCreateSessionFailed)
			return
		}

		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	}
}

// listSessions godoc
// @Summary      List audio sessions
// @Description  Lists issued sessions whose credential has not expired. Secrets are never returned.
// @Tags         Audio API
// @Produce      json
// @Success      200 {object} sessionres.ListSessionsResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /api/audio/sessions [get]
func listSessions(handler *handlers.AudioSessionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := handler.ListSessions(c.Request.Context())
		if err != nil {
			responses.HandleError(c, err, "failed to list sessions")
			return
		}

		c.JSON(http.StatusOK, sessionres.NewListSessionsResponse(sessions, time.Now()))
	}
}

// getSession godoc
// @Summary      Get an audio session
// @Description  Retrieves one ledger entry by ID.
// @Tags         Audio API
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} sessionres.SessionResponse
// @Failure      404 {object} responses.ErrorResponse
// @Failure      500 {object} responses.ErrorResponse
// @Router       /api/audio/sessions/{id} [get]
func getSession(handler *handlers.AudioSessionHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := handler.GetSession(c.Request.Context(), c.Param("id"))
		if err != nil {
			responses.HandleError(c, err, "failed to get session")
			return
		}

		c.JSON(http.StatusOK, sessionres.NewSessionResponse(sess, time.Now()))
	}
}
