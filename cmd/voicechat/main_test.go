package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jojo-client/internal/domain/settings"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		// cobra keeps parsed flag values between runs.
		for _, c := range []string{"key", "endpoint"} {
			_ = keysSetCmd.Flags().Set(c, "")
		}
		_ = keysSetCmd.Flags().Set("proxy", "false")
		_ = keysShowCmd.Flags().Set("reveal", "false")
		keysSetCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		keysShowCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	t.Setenv("SETTINGS_BACKEND", "file")
	t.Setenv("SETTINGS_PATH", path)
	t.Setenv("LOG_FILE", filepath.Join(dir, "voicechat.log"))
	return path
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "", maskKey(""))
	assert.Equal(t, "***", maskKey("abc"))
	assert.Equal(t, "*****6789", maskKey("sk-x-6789"))
}

func TestKeysSetShowHeaders(t *testing.T) {
	isolate(t)

	out, err := execute(t, "keys", "set", "--key", "sk-secret-1234", "--proxy")
	require.NoError(t, err)
	assert.NotContains(t, out, "sk-secret")
	assert.Contains(t, out, "1234")

	out, err = execute(t, "keys", "show", "--reveal")
	require.NoError(t, err)
	var keys settings.Keys
	require.NoError(t, json.Unmarshal([]byte(out), &keys))
	assert.Equal(t, "sk-secret-1234", keys.OpenAI.Key)
	assert.True(t, keys.OpenAI.Proxy)

	out, err = execute(t, "keys", "headers")
	require.NoError(t, err)
	name, value, ok := strings.Cut(strings.TrimSpace(out), ": ")
	require.True(t, ok)
	assert.Equal(t, settings.HeaderName, name)

	decoded, err := settings.DecodeHeader(value)
	require.NoError(t, err)
	assert.Equal(t, keys, decoded)
}

func TestKeysSetRequiresAFlag(t *testing.T) {
	isolate(t)

	_, err := execute(t, "keys", "set")
	assert.ErrorContains(t, err, "nothing to update")
}
