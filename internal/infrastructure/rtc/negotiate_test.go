package rtc

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jojo-client/internal/domain/voice"
	"jojo-client/internal/infrastructure/openai"
)

// realtimeAnswerer answers SDP offers with a live pion peer, the way the
// realtime endpoint does.
func realtimeAnswerer(t *testing.T) *httptest.Server {
	t.Helper()
	var peers []*webrtc.PeerConnection

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ek_test", r.Header.Get("Authorization"))
		offer, err := io.ReadAll(r.Body)
		if !assert.NoError(t, err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
		if !assert.NoError(t, err) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		peers = append(peers, pc)
		pc.OnDataChannel(func(dc *webrtc.DataChannel) {
			dc.OnOpen(func() {
				_ = dc.SendText(`{"type":"session.created"}`)
			})
		})

		if err := pc.SetRemoteDescription(webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: string(offer)}); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		answer, err := pc.CreateAnswer(nil)
		if !assert.NoError(t, err) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		gathered := webrtc.GatheringCompletePromise(pc)
		if !assert.NoError(t, pc.SetLocalDescription(answer)) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		<-gathered

		w.Header().Set("Content-Type", "application/sdp")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, pc.LocalDescription().SDP)
	}))
	t.Cleanup(func() {
		srv.Close()
		for _, pc := range peers {
			_ = pc.Close()
		}
	})
	return srv
}

func TestTransport_NegotiateOverHTTP(t *testing.T) {
	if testing.Short() {
		t.Skip("loopback peer connection")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	srv := realtimeAnswerer(t)

	tr, err := NewFactory(nil, nil, zerolog.Nop()).NewTransport(ctx)
	require.NoError(t, err)
	defer tr.Close()

	received := make(chan []byte, 1)
	_, err = tr.OpenChannel(voice.DefaultChannelLabel, func(data []byte) {
		select {
		case received <- data:
		default:
		}
	})
	require.NoError(t, err)

	connected := make(chan struct{}, 1)
	defer tr.OnStateChange(func(s voice.TransportState) {
		if s == voice.TransportConnected {
			select {
			case connected <- struct{}{}:
			default:
			}
		}
	})()

	offer, err := tr.CreateOffer(ctx)
	require.NoError(t, err)

	n := openai.NewRealtimeNegotiator(srv.URL+"/v1/realtime", "gpt-4o-realtime-preview-2024-12-17", 10*time.Second)
	answer, err := n.Negotiate(ctx, "ek_test", offer)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(answer, "\r\n"), "answer keeps its trailing CRLF")

	require.NoError(t, tr.ApplyAnswer(answer))

	select {
	case <-connected:
	case <-ctx.Done():
		t.Fatal("transport never connected")
	}
	select {
	case msg := <-received:
		assert.JSONEq(t, `{"type":"session.created"}`, string(msg))
	case <-ctx.Done():
		t.Fatal("no data channel message")
	}
}
