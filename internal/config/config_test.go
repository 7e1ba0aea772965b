package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "jojo-session-proxy", cfg.ServiceName)
	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "gpt-4o-realtime-preview-2024-12-17", cfg.RealtimeModel)
	assert.Equal(t, "alloy", cfg.RealtimeVoice)
	assert.False(t, cfg.AllowClientKeys)
	assert.Equal(t, 15*time.Second, cfg.SessionCleanupInterval)
}

func TestLoad_MissingAPIKeyIsNotFatal(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.OpenAIAPIKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8186")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ALLOW_CLIENT_KEYS", "true")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8186", cfg.Addr())
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.True(t, cfg.AllowClientKeys)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadClient_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, SettingsBackendFile, cfg.SettingsBackend)
	assert.Equal(t, "settings.json", filepath.Base(cfg.SettingsPath))
	assert.Equal(t, filepath.Join(filepath.Dir(cfg.SettingsPath), "voicechat.log"), cfg.LogFile)
	assert.Equal(t, "http://localhost:3000/api/audio/session", cfg.SessionEndpoint)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout)
	assert.True(t, cfg.PlaybackEnabled)
	assert.Empty(t, cfg.ICEServers)
}

func TestLoadClient_ICEServers(t *testing.T) {
	t.Setenv("SETTINGS_PATH", filepath.Join(t.TempDir(), "keys.json"))
	t.Setenv("ICE_SERVERS", "stun:stun.l.google.com:19302,stun:stun1.l.google.com:19302")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, []string{"stun:stun.l.google.com:19302", "stun:stun1.l.google.com:19302"}, cfg.ICEServers)
}

func TestLoadClient_UnknownBackend(t *testing.T) {
	t.Setenv("SETTINGS_BACKEND", "sqlite")

	_, err := LoadClient()
	assert.ErrorContains(t, err, "unsupported SETTINGS_BACKEND")
}

func TestLoad_AuthRequiresJWKS(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")

	_, err := Load()
	assert.ErrorContains(t, err, "AUTH_JWKS_URL")

	t.Setenv("AUTH_JWKS_URL", "http://keycloak/certs")
	t.Setenv("AUTH_ISSUER", "http://keycloak/realms/jojo")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.AuthRefresh)
}

func TestLoad_TraceSampleRatio(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.TraceSampling)

	t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "1.5")
	_, err = Load()
	assert.ErrorContains(t, err, "OTEL_TRACE_SAMPLE_RATIO")
}

func TestLoadClient_LogFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	t.Setenv("LOG_FILE", LogFileOff)
	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Empty(t, cfg.LogFile)

	t.Setenv("LOG_FILE", "/var/log/voicechat.log")
	cfg, err = LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "/var/log/voicechat.log", cfg.LogFile)
}
