package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"jojo-client/internal/config"
	"jojo-client/internal/domain/settings"
	"jojo-client/internal/domain/voice"
	"jojo-client/internal/infrastructure/kvstore"
	"jojo-client/internal/infrastructure/logger"
	"jojo-client/internal/infrastructure/mediadev"
	"jojo-client/internal/infrastructure/openai"
	"jojo-client/internal/infrastructure/rtc"
	"jojo-client/internal/infrastructure/tokenclient"
)

// clientApp holds the process-wide client dependencies.
type clientApp struct {
	cfg      *config.ClientConfig
	log      zerolog.Logger
	settings *settings.Service
	closers  []io.Closer
}

// newClientApp loads config, opens the log file and the settings backend.
// The terminal belongs to the UI, so logs never go to stdout.
func newClientApp(ctx context.Context) (*clientApp, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}

	app := &clientApp{cfg: cfg}

	var out io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := logger.OpenFile(cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		app.closers = append(app.closers, f)
		out = f
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, out)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("create logger: %w", err)
	}
	app.log = log.With().Str("service", "voicechat").Logger()

	kv, err := app.openKV(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.settings = settings.NewService(kv, app.log)

	return app, nil
}

func (a *clientApp) openKV(ctx context.Context) (settings.KV, error) {
	switch a.cfg.SettingsBackend {
	case config.SettingsBackendRedis:
		store, err := kvstore.NewRedisStore(a.cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, store)
		a.log.Debug().Msg("settings backed by redis")
		return store, nil
	default:
		a.log.Debug().Str("path", a.cfg.SettingsPath).Msg("settings backed by file")
		return kvstore.NewFileStore(a.cfg.SettingsPath, a.log), nil
	}
}

// newController wires the voice controller to the real network and audio devices.
func (a *clientApp) newController(observer voice.Observer) (*voice.Controller, error) {
	cfg := a.cfg

	var sinks rtc.SinkFactory
	if cfg.PlaybackEnabled {
		speaker := mediadev.NewSpeaker(cfg.FFplayPath, a.log)
		sinks = func() (rtc.Sink, error) { return speaker.NewSink() }
	}

	return voice.NewController(voice.Deps{
		Credentials: tokenclient.New(cfg.SessionEndpoint, a.settings, cfg.RequestTimeout).SetAuthToken(cfg.SessionToken),
		Negotiator:  openai.NewRealtimeNegotiator(cfg.RealtimeURL, cfg.RealtimeModel, cfg.RequestTimeout),
		Transports:  rtc.NewFactory(cfg.ICEServers, sinks, a.log),
		Microphone:  mediadev.NewMicrophone(cfg.FFmpegPath, cfg.MicFormat, cfg.MicDevice, a.log),
		Observer:    observer,
	}, a.log)
}

// Close releases everything in reverse order of acquisition.
func (a *clientApp) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: close: %v\n", err)
		}
	}
	a.closers = nil
}
