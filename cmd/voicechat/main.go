package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	loadEnvFiles()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voicechat",
	Short: "Talk to a realtime voice assistant from the terminal",
	Long: `voicechat opens a WebRTC session with the OpenAI Realtime API and shows
the live transcript of the conversation.

A credential is minted by the session proxy (SESSION_ENDPOINT) before every
connection. Keys saved with "voicechat keys set" travel to the proxy in the
x-chat-ollama-keys header.

Examples:
  # Start chatting (space toggles the microphone, q quits)
  voicechat

  # Use your own key when the proxy allows client keys
  voicechat keys set --key sk-...

  # Inspect the resolved client configuration
  voicechat config show`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runChat,
}

func init() {
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
}

func loadEnvFiles() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
