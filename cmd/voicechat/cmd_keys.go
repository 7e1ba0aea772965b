package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jojo-client/internal/domain/settings"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage saved provider keys",
	Long:  `Show and update the provider keys sent to the session proxy in the x-chat-ollama-keys header.`,
}

var keysShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved keys",
	RunE:  runKeysShow,
}

var keysSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update saved keys",
	Long: `Update saved keys. Only the flags you pass are changed.

Examples:
  voicechat keys set --key sk-...
  voicechat keys set --endpoint https://proxy.example.com/v1 --proxy`,
	RunE: runKeysSet,
}

var keysHeadersCmd = &cobra.Command{
	Use:   "headers",
	Short: "Print the request header carrying the saved keys",
	RunE:  runKeysHeaders,
}

func init() {
	keysCmd.AddCommand(keysShowCmd)
	keysCmd.AddCommand(keysSetCmd)
	keysCmd.AddCommand(keysHeadersCmd)

	keysShowCmd.Flags().Bool("reveal", false, "Print the key unmasked")

	keysSetCmd.Flags().String("key", "", "OpenAI API key")
	keysSetCmd.Flags().String("endpoint", "", "OpenAI-compatible base URL")
	keysSetCmd.Flags().Bool("proxy", false, "Send requests through the endpoint")
}

func runKeysShow(cmd *cobra.Command, _ []string) error {
	app, err := newClientApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	keys, err := app.settings.Read(cmd.Context())
	if err != nil {
		return err
	}

	reveal, _ := cmd.Flags().GetBool("reveal")
	if !reveal {
		keys.OpenAI.Key = maskKey(keys.OpenAI.Key)
	}
	return printJSON(cmd, keys)
}

func runKeysSet(cmd *cobra.Command, _ []string) error {
	patch := settings.Patch{OpenAI: &settings.ProviderPatch{}}
	changed := false

	if cmd.Flags().Changed("key") {
		v, _ := cmd.Flags().GetString("key")
		patch.OpenAI.Key = &v
		changed = true
	}
	if cmd.Flags().Changed("endpoint") {
		v, _ := cmd.Flags().GetString("endpoint")
		patch.OpenAI.Endpoint = &v
		changed = true
	}
	if cmd.Flags().Changed("proxy") {
		v, _ := cmd.Flags().GetBool("proxy")
		patch.OpenAI.Proxy = &v
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to update: pass --key, --endpoint or --proxy")
	}

	app, err := newClientApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	keys, err := app.settings.Update(cmd.Context(), patch)
	if err != nil {
		return err
	}
	keys.OpenAI.Key = maskKey(keys.OpenAI.Key)
	return printJSON(cmd, keys)
}

func runKeysHeaders(cmd *cobra.Command, _ []string) error {
	app, err := newClientApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	headers, err := app.settings.Headers(cmd.Context())
	if err != nil {
		return err
	}
	for name, value := range headers {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, value)
	}
	return nil
}

// maskKey keeps the last four characters of key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
