package voice

import (
	"encoding/json"
	"errors"
	"strings"
)

// Event is a decoded data channel message. The concrete type is one of
// PartialTranscript, FinalTranscript, AssistantResponse or Unrecognized.
type Event interface {
	Kind() string
}

// PartialTranscript is in-progress user speech. Text replaces the current transcript
// unless Delta is set, in which case it is appended to it.
type PartialTranscript struct {
	Text  string
	Delta bool
}

// FinalTranscript is finalized user speech.
type FinalTranscript struct {
	Text string
}

// AssistantResponse is a complete assistant reply.
type AssistantResponse struct {
	Text string
}

// Unrecognized is any message that is not one of the shapes above.
// Err is set when the payload was not valid JSON.
type Unrecognized struct {
	Type string
	Err  error
}

func (PartialTranscript) Kind() string { return "partial_transcript" }
func (FinalTranscript) Kind() string   { return "final_transcript" }
func (AssistantResponse) Kind() string { return "assistant_response" }
func (Unrecognized) Kind() string      { return "unrecognized" }

// wireEvent covers both the `event` envelope used by the speech relay and the
// `type` envelope of the OpenAI realtime API.
type wireEvent struct {
	Event      string `json:"event"`
	Type       string `json:"type"`
	Text       string `json:"text"`
	Delta      string `json:"delta"`
	Transcript string `json:"transcript"`
}

var errEmptyFrame = errors.New("empty frame")

// DecodeEvent maps a raw data channel payload onto an Event. It never fails;
// anything it cannot classify comes back as Unrecognized.
func DecodeEvent(data []byte) Event {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Unrecognized{Err: errEmptyFrame}
	}

	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return Unrecognized{Err: err}
	}

	switch strings.TrimSpace(w.Event) {
	case "speech.transcribe":
		return PartialTranscript{Text: w.Text}
	case "speech.final_transcript":
		return FinalTranscript{Text: w.Text}
	case "speech.message":
		return AssistantResponse{Text: w.Text}
	}

	typ := strings.TrimSpace(w.Type)
	switch typ {
	case "transcript":
		return PartialTranscript{Text: w.Text}
	case "conversation.item.input_audio_transcription.delta":
		return PartialTranscript{Text: w.Delta, Delta: true}
	case "conversation.item.input_audio_transcription.completed":
		return FinalTranscript{Text: w.Transcript}
	case "response":
		return AssistantResponse{Text: w.Text}
	case "response.audio_transcript.done":
		return AssistantResponse{Text: w.Transcript}
	case "response.text.done":
		return AssistantResponse{Text: w.Text}
	}

	if typ == "" {
		typ = strings.TrimSpace(w.Event)
	}
	return Unrecognized{Type: typ}
}
