// Package mediadev captures and plays audio through ffmpeg/ffplay subprocesses,
// exchanging Opus in Ogg pages with the peer connection.
package mediadev

import (
	"runtime"
	"strings"
)

const (
	// SampleRate is the Opus clock rate.
	SampleRate = 48000
	// FrameDuration is the Opus frame length requested from ffmpeg.
	FrameDuration = 20_000 // microseconds
)

// DefaultInput returns the ffmpeg input format and device for goos.
func DefaultInput(goos string) (format, device string) {
	switch goos {
	case "darwin":
		// `none:<audioIndex>` avoids opening a video device.
		return "avfoundation", "none:0"
	case "windows":
		return "dshow", "audio=default"
	case "linux":
		return "pulse", "default"
	default:
		return "alsa", "default"
	}
}

// CaptureArgs builds the ffmpeg arguments that encode the input device as mono
// Opus in an Ogg stream on stdout. Empty values use DefaultInput for this OS.
func CaptureArgs(format, device string) []string {
	defFormat, defDevice := DefaultInput(runtime.GOOS)
	if strings.TrimSpace(format) == "" {
		format = defFormat
	}
	if strings.TrimSpace(device) == "" {
		device = defDevice
	}
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostdin",
		"-f", format,
		"-i", device,
		"-c:a", "libopus",
		"-ar", "48000",
		"-ac", "1",
		"-application", "voip",
		"-frame_duration", "20",
		"-page_duration", "20000",
		"-f", "ogg",
		"-",
	}
}

// PlaybackArgs builds the ffplay arguments that play an Ogg stream from stdin.
func PlaybackArgs() []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-nostats",
		"-nodisp",
		"-autoexit",
		"-f", "ogg",
		"-i", "-",
	}
}
