package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

var ErrMissingCredential = errors.New("missing credential")

type ProviderConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
}

var defaultBaseURLs = map[string]string{
	"gemini":     "",
	"openai":     "https://api.openai.com/v1",
	"openrouter": "https://openrouter.ai/api/v1",
}

var (
	providerConfigs   = map[string]*ProviderConfig{}
	providerConfigsMu sync.Mutex
)

// LoadProviderConfig reads <PROVIDER>_BASE_URL and <PROVIDER>_TIMEOUT_SECONDS
// once per provider.
func LoadProviderConfig(provider string) *ProviderConfig {
	providerConfigsMu.Lock()
	defer providerConfigsMu.Unlock()

	if cfg, ok := providerConfigs[provider]; ok {
		return cfg
	}

	prefix := strings.ToUpper(provider)
	cfg := &ProviderConfig{
		BaseURL:        getEnv(prefix+"_BASE_URL", defaultBaseURLs[provider]),
		RequestTimeout: time.Duration(getEnvInt(prefix+"_TIMEOUT_SECONDS", 120)) * time.Second,
	}
	providerConfigs[provider] = cfg
	return cfg
}

// LookupCredential returns the trimmed value of envVar or ErrMissingCredential.
func LookupCredential(envVar string) (string, error) {
	v, ok := os.LookupEnv(envVar)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: environment variable %s is not set", ErrMissingCredential, envVar)
	}
	return v, nil
}
