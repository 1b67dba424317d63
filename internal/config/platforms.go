package config

import (
	"os"
	"strings"
)

// DefaultAPIKeyEnv is the environment variable holding the sentiment API key.
const DefaultAPIKeyEnv = "OPENAI_API_KEY"

// Sentiment providers.
const (
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// PlatformConfig holds settings for one platform of the catalog.
type PlatformConfig struct {
	// Disabled removes the platform from the investigation.
	Disabled bool `yaml:"disabled,omitempty"`

	// Headers are extra HTTP headers sent with requests to this platform,
	// for example a session cookie for sites that hide profiles from
	// anonymous visitors.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// SentimentConfig selects the page sentiment and entity analyzer.
type SentimentConfig struct {
	// Provider is "openai" or "none". Empty means "openai" when an API key
	// is available and "none" otherwise.
	Provider string `yaml:"provider,omitempty"`

	// Model is the chat model name.
	Model string `yaml:"model,omitempty"`

	// BaseURL points to an OpenAI-compatible endpoint.
	BaseURL string `yaml:"base_url,omitempty"`

	// APIKeyEnv names the environment variable holding the key. The key
	// itself never lives in the file.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
}

// APIKey reads the key from the configured environment variable.
func (s SentimentConfig) APIKey() string {
	env := s.APIKeyEnv
	if env == "" {
		env = DefaultAPIKeyEnv
	}
	return strings.TrimSpace(os.Getenv(env))
}

// Enabled reports whether an analyzer backend should be used.
func (s SentimentConfig) Enabled() bool {
	switch strings.ToLower(s.Provider) {
	case ProviderNone:
		return false
	default:
		return s.APIKey() != ""
	}
}

// Validate checks the provider name.
func (s SentimentConfig) Validate() error {
	switch strings.ToLower(s.Provider) {
	case "", ProviderOpenAI, ProviderNone:
		return nil
	default:
		return ErrUnknownSentimentProvider
	}
}

// File represents the structure of the .mailsleuth configuration file.
type File struct {
	// Defaults apply to every platform unless overridden.
	Defaults PlatformConfig `yaml:"defaults,omitempty"`

	// Platforms maps platform names (as in "github", "linkedin") to their
	// settings.
	Platforms map[string]PlatformConfig `yaml:"platforms,omitempty"`

	Sentiment SentimentConfig `yaml:"sentiment,omitempty"`

	OutputDir  string   `yaml:"output_dir,omitempty"`
	DNSServers []string `yaml:"dns_servers,omitempty"`
	RateLimit  float64  `yaml:"rate_limit,omitempty"`
	Proxy      string   `yaml:"proxy,omitempty"`
	UserAgent  string   `yaml:"user_agent,omitempty"`
}

// PlatformSettings returns the settings for a platform, merged over the
// defaults. Header names from the platform entry replace default ones.
func (cf *File) PlatformSettings(name string) PlatformConfig {
	result := PlatformConfig{
		Disabled: cf.Defaults.Disabled,
	}
	if len(cf.Defaults.Headers) > 0 {
		result.Headers = make(map[string]string, len(cf.Defaults.Headers))
		for k, v := range cf.Defaults.Headers {
			result.Headers[k] = v
		}
	}

	pc, ok := cf.Platforms[strings.ToLower(name)]
	if !ok {
		return result
	}
	if pc.Disabled {
		result.Disabled = true
	}
	if len(pc.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(pc.Headers))
		}
		for k, v := range pc.Headers {
			result.Headers[k] = v
		}
	}
	return result
}

// DisabledPlatforms returns the names of platforms switched off in the file.
func (cf *File) DisabledPlatforms() []string {
	var names []string
	for name, pc := range cf.Platforms {
		if pc.Disabled {
			names = append(names, strings.ToLower(name))
		}
	}
	return names
}
