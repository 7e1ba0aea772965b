package mediadev

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/pion/webrtc/v4/pkg/media/oggreader"

	"jojo-client/internal/domain/voice"
)

var opusTags = []byte("OpusTags")

// OggSource reads Opus packets page by page from an Ogg stream.
type OggSource struct {
	reader      *oggreader.OggReader
	lastGranule uint64
	started     bool
}

// NewOggSource reads the Ogg/Opus header from r. It blocks until the header arrives.
func NewOggSource(r io.Reader) (*OggSource, error) {
	reader, _, err := oggreader.NewWith(r)
	if err != nil {
		return nil, fmt.Errorf("read ogg header: %w", err)
	}
	return &OggSource{reader: reader}, nil
}

// ReadSample returns the next Opus packet with its duration.
func (s *OggSource) ReadSample() (voice.Sample, error) {
	for {
		page, header, err := s.reader.ParseNextPage()
		if err != nil {
			return voice.Sample{}, err
		}
		if bytes.HasPrefix(page, opusTags) || len(page) == 0 {
			continue
		}

		duration := time.Duration(FrameDuration) * time.Microsecond
		if s.started && header.GranulePosition > s.lastGranule {
			samples := header.GranulePosition - s.lastGranule
			duration = time.Duration(samples) * time.Second / SampleRate
		}
		s.lastGranule = header.GranulePosition
		s.started = true

		return voice.Sample{Data: page, Duration: duration}, nil
	}
}

// Close is a no-op; the owner closes the underlying stream.
func (s *OggSource) Close() error { return nil }
