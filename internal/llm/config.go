package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
	ProviderNone       = "none"
)

// envPrefix namespaces every explicit LLM setting.
const envPrefix = "CODEGENIUS_"

// vendors lists the hosted providers in key discovery order.
var vendors = []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOpenRouter}

// Endpoint is how to reach one hosted provider. BaseURL is optional and
// ignored by Anthropic and Gemini.
type Endpoint struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Config selects and configures the provider behind the feedback bot.
type Config struct {
	// Provider is one of the Provider* names. Empty means none.
	Provider string

	Anthropic  Endpoint
	OpenAI     Endpoint
	Gemini     Endpoint
	OpenRouter Endpoint

	Retry RetryConfig

	// Timeout bounds one feedback generation, retries included.
	Timeout time.Duration

	// MockReply is the JSON body the mock provider answers with.
	MockReply string
}

// RetryConfig shapes the backoff of WithRetry.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig leaves the provider unchosen and picks the cheap model of
// each vendor.
func DefaultConfig() Config {
	return Config{
		Anthropic:  Endpoint{Model: "claude-haiku"},
		OpenAI:     Endpoint{Model: "gpt-4o-mini"},
		Gemini:     Endpoint{Model: "gemini-flash"},
		OpenRouter: Endpoint{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout:   45 * time.Second,
		MockReply: `{"summary":"Canned feedback from the mock provider.","expertise":5,"communication":5,"tip":"Configure a real LLM provider for graded answers."}`,
	}
}

// endpoint returns the settings of vendor, or nil for mock and none.
func (c *Config) endpoint(vendor string) *Endpoint {
	switch vendor {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// ConfigFromEnv layers CODEGENIUS_LLM_PROVIDER, CODEGENIUS_LLM_TIMEOUT and
// CODEGENIUS_<VENDOR>_{API_KEY,MODEL,BASE_URL} over base. Unset variables
// leave base untouched, and a provider already chosen in base is kept.
func ConfigFromEnv(base Config) Config {
	cfg := base
	set := func(dst *string, key string) {
		if v := os.Getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}

	if cfg.Provider == "" {
		set(&cfg.Provider, "LLM_PROVIDER")
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))

	for _, v := range vendors {
		ep := cfg.endpoint(v)
		name := strings.ToUpper(v)
		set(&ep.APIKey, name+"_API_KEY")
		set(&ep.Model, name+"_MODEL")
		set(&ep.BaseURL, name+"_BASE_URL")
	}

	if v := os.Getenv(envPrefix + "LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DiscoverConfig looks for the vendors' own key variables (GEMINI_API_KEY,
// OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY, in that order)
// and selects the first one set.
func DiscoverConfig(base Config) (Config, bool) {
	for _, v := range vendors {
		key := os.Getenv(strings.ToUpper(v) + "_API_KEY")
		if key == "" {
			continue
		}
		cfg := base
		cfg.Provider = v
		cfg.endpoint(v).APIKey = key
		return cfg, true
	}
	return base, false
}

// ResolveConfig applies explicit CODEGENIUS_* settings and, when neither
// they nor base choose a provider, falls back to key discovery. An
// explicit "none" is final.
func ResolveConfig(base Config) Config {
	cfg := ConfigFromEnv(base)
	if cfg.Provider != "" {
		return cfg
	}
	if found, ok := DiscoverConfig(cfg); ok {
		return found
	}
	cfg.Provider = ProviderNone
	return cfg
}

// Enabled reports whether a real or mock provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != "" && c.Provider != ProviderNone
}

// Validate checks that the selected provider exists and has an API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock, ProviderNone, "":
		return nil
	}
	ep := c.endpoint(c.Provider)
	if ep == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if ep.APIKey == "" {
		return fmt.Errorf("%s%s_API_KEY is required for the %s provider",
			envPrefix, strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
