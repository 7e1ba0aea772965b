package platformerrors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError_CarriesRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")
	cause := errors.New("boom")

	err := NewError(ctx, LayerDomain, ErrorTypeExternal, "upstream failed", cause)

	assert.Equal(t, "req-42", err.RequestID)
	assert.Equal(t, ErrorTypeExternal, err.Type)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.UUID, "err_")
	assert.Contains(t, err.Error(), "upstream failed: boom")
}

func TestAsError_KeepsInnerType(t *testing.T) {
	inner := NewError(context.Background(), LayerInfrastructure, ErrorTypeTimeout, "slow", nil)

	outer := AsError(context.Background(), LayerRoute, inner, "wrapped")

	assert.Equal(t, ErrorTypeTimeout, outer.Type)
	assert.Equal(t, inner.UUID, outer.UUID)
	assert.True(t, IsErrorType(outer, ErrorTypeTimeout))
	assert.Nil(t, AsError(context.Background(), LayerRoute, nil, "nothing"))
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrorTypeToHTTPStatus(ErrorTypeNotFound))
	assert.Equal(t, http.StatusBadRequest, ErrorTypeToHTTPStatus(ErrorTypeValidation))
	assert.Equal(t, http.StatusInternalServerError, ErrorTypeToHTTPStatus(ErrorTypeExternal))
	assert.Equal(t, http.StatusInternalServerError, ErrorTypeToHTTPStatus(ErrorTypeConfiguration))
}

func TestWriteHTTPError_BodyHasOnlyPublicMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	err := NewError(context.Background(), LayerRoute, ErrorTypeConfiguration, "API key not configured", errors.New("OPENAI_API_KEY empty"))
	WriteHTTPError(c, err, zerolog.Nop())

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"error": "API key not configured"}, body)
}
