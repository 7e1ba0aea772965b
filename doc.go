// Package jojoclient implements a realtime voice chat client and the session
// proxy that issues its credentials.
//
// The module provides:
//   - cmd/voicechat: a terminal client that streams microphone audio to the
//     OpenAI Realtime API over WebRTC and shows the live transcript
//   - cmd/server: the session proxy exposing POST /api/audio/session, which
//     mints ephemeral credentials so the OpenAI key stays on the server
//   - Provider key settings persisted in a file or Redis and forwarded to the
//     proxy in the x-chat-ollama-keys header
//   - Optional JWT authentication of proxy requests via a JWKS endpoint
package jojoclient
