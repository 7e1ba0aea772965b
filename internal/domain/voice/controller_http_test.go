package voice

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jojo-client/internal/infrastructure/openai"
	"jojo-client/internal/infrastructure/tokenclient"
)

func newHTTPController(t *testing.T, sessionURL, realtimeURL string) (*Controller, *fakeFactory, *fakeMicrophone) {
	t.Helper()
	factory := &fakeFactory{}
	mic := &fakeMicrophone{}
	ctrl, err := NewController(Deps{
		Credentials: tokenclient.New(sessionURL, nil, 0),
		Negotiator:  openai.NewRealtimeNegotiator(realtimeURL, "gpt-4o-realtime-preview-2024-12-17", 0),
		Transports:  factory,
		Microphone:  mic,
	}, zerolog.Nop())
	require.NoError(t, err)
	return ctrl, factory, mic
}

func TestConnect_CredentialEndpoint500(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"Failed to create audio session"}`)
	}))
	defer tokenSrv.Close()

	ctrl, factory, _ := newHTTPController(t, tokenSrv.URL, "http://127.0.0.1:1/v1/realtime")

	err := ctrl.Connect(context.Background())
	require.ErrorIs(t, err, ErrCredentialExchange)
	assert.Equal(t, StatusDisconnected, ctrl.Status())
	assert.NotEmpty(t, ctrl.Error())
	assert.Contains(t, ctrl.Error(), "Failed to create audio session")
	assert.Zero(t, factory.count())
}

func TestConnect_NegotiationReturnsNonSDP(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"client_secret":{"value":"ek_ok"}}`)
	}))
	defer tokenSrv.Close()

	sdpSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":"not an answer"}`)
	}))
	defer sdpSrv.Close()

	ctrl, factory, mic := newHTTPController(t, tokenSrv.URL, sdpSrv.URL)

	err := ctrl.Connect(context.Background())
	require.ErrorIs(t, err, ErrNegotiation)
	assert.ErrorIs(t, err, openai.ErrNotSDP)
	assert.Equal(t, StatusDisconnected, ctrl.Status())
	assert.True(t, factory.last().closed.Load())
	assert.True(t, mic.last().closed.Load())
}

func TestConnect_FullHTTPExchange(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"client_secret":{"value":"ek_ok"}}`)
	}))
	defer tokenSrv.Close()

	sdpSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ek_ok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, "v=0\r\no=- answer\r\n")
	}))
	defer sdpSrv.Close()

	ctrl, factory, _ := newHTTPController(t, tokenSrv.URL, sdpSrv.URL)

	require.NoError(t, ctrl.Connect(context.Background()))
	assert.Equal(t, StatusConnected, ctrl.Status())
	assert.Equal(t, "v=0\r\no=- answer\r\n", factory.last().answer)
}
