package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	SettingsBackendFile  = "file"
	SettingsBackendRedis = "redis"

	// LogFileOff disables the client log file.
	LogFileOff = "off"
)

// ClientConfig holds configuration for the voicechat client.
type ClientConfig struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
	// LogFile defaults to voicechat.log in the jojo config dir.
	LogFile string `env:"LOG_FILE"`

	// Token exchange and negotiation. A zero RequestTimeout means no timeout.
	SessionEndpoint string        `env:"SESSION_ENDPOINT" envDefault:"http://localhost:3000/api/audio/session"`
	RealtimeURL     string        `env:"REALTIME_URL" envDefault:"https://api.openai.com/v1/realtime"`
	RealtimeModel   string        `env:"REALTIME_MODEL" envDefault:"gpt-4o-realtime-preview-2024-12-17"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"0s"`
	// SessionToken is sent as a bearer token when the proxy requires auth.
	SessionToken string `env:"SESSION_AUTH_TOKEN"`

	// Settings persistence
	SettingsBackend string `env:"SETTINGS_BACKEND" envDefault:"file"`
	SettingsPath    string `env:"SETTINGS_PATH"`
	RedisURL        string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// WebRTC
	ICEServers []string `env:"ICE_SERVERS" envSeparator:","`

	// Audio devices
	FFmpegPath      string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
	FFplayPath      string `env:"FFPLAY_PATH" envDefault:"ffplay"`
	MicFormat       string `env:"MIC_FORMAT"`
	MicDevice       string `env:"MIC_DEVICE"`
	PlaybackEnabled bool   `env:"PLAYBACK_ENABLED" envDefault:"true"`
}

// LoadClient parses environment variables into ClientConfig.
func LoadClient() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	switch cfg.SettingsBackend {
	case SettingsBackendFile:
		if strings.TrimSpace(cfg.SettingsPath) == "" {
			path, err := DefaultSettingsPath()
			if err != nil {
				return nil, err
			}
			cfg.SettingsPath = path
		}
	case SettingsBackendRedis:
		if strings.TrimSpace(cfg.RedisURL) == "" {
			return nil, fmt.Errorf("REDIS_URL is required when SETTINGS_BACKEND is redis")
		}
	default:
		return nil, fmt.Errorf("unsupported SETTINGS_BACKEND %q", cfg.SettingsBackend)
	}

	switch strings.TrimSpace(cfg.LogFile) {
	case "":
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		cfg.LogFile = filepath.Join(dir, "voicechat.log")
	case LogFileOff:
		cfg.LogFile = ""
	}

	if strings.TrimSpace(cfg.SessionEndpoint) == "" {
		return nil, fmt.Errorf("SESSION_ENDPOINT is required")
	}
	if strings.TrimSpace(cfg.RealtimeURL) == "" {
		return nil, fmt.Errorf("REALTIME_URL is required")
	}

	return cfg, nil
}

// DefaultSettingsPath returns <user config dir>/jojo/settings.json.
func DefaultSettingsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "jojo"), nil
}
