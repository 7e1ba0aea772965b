package settings

import "context"

const (
	// StorageKey is the KV entry holding the JSON-encoded Keys.
	StorageKey = "keys"

	// Legacy single-value entries that seed the defaults when present.
	LegacyOpenAIKey  = "keys.openai_api_key"
	LegacyOpenAIHost = "keys.openai_api_host"

	// HeaderName carries the URL-encoded JSON of Keys on outgoing requests.
	HeaderName = "x-chat-ollama-keys"
)

// ProviderKeys holds the credentials for one provider.
type ProviderKeys struct {
	Key      string `json:"key"`
	Endpoint string `json:"endpoint"`
	Proxy    bool   `json:"proxy"`
}

// Keys is the full persisted settings object.
type Keys struct {
	OpenAI ProviderKeys `json:"openai"`
}

// ProviderPatch is a partial ProviderKeys; nil fields are left unchanged.
type ProviderPatch struct {
	Key      *string `json:"key,omitempty"`
	Endpoint *string `json:"endpoint,omitempty"`
	Proxy    *bool   `json:"proxy,omitempty"`
}

// Patch is a partial Keys used by Update.
type Patch struct {
	OpenAI *ProviderPatch `json:"openai,omitempty"`
}

// Apply returns k with every field present in p overwritten.
func (k Keys) Apply(p Patch) Keys {
	if p.OpenAI != nil {
		k.OpenAI = k.OpenAI.apply(*p.OpenAI)
	}
	return k
}

func (pk ProviderKeys) apply(p ProviderPatch) ProviderKeys {
	if p.Key != nil {
		pk.Key = *p.Key
	}
	if p.Endpoint != nil {
		pk.Endpoint = *p.Endpoint
	}
	if p.Proxy != nil {
		pk.Proxy = *p.Proxy
	}
	return pk
}

// KV is the persisted key/value mapping behind the settings service.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
}
