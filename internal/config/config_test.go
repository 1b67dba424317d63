package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// TestNewConfig documents the defaults.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default Timeout is 5 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 5*time.Second {
			t.Errorf("expected Timeout to be 5s, got %v", cfg.Timeout)
		}
	})

	t.Run("default DomainTimeout is 10 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.DomainTimeout != 10*time.Second {
			t.Errorf("expected DomainTimeout to be 10s, got %v", cfg.DomainTimeout)
		}
	})

	t.Run("default Concurrency is 10", func(t *testing.T) {
		t.Parallel()
		if cfg.Concurrency != 10 {
			t.Errorf("expected Concurrency to be 10, got %d", cfg.Concurrency)
		}
	})

	t.Run("GitHub search on, rate limit off", func(t *testing.T) {
		t.Parallel()
		if !cfg.GitHubSearch {
			t.Error("expected GitHubSearch to be true")
		}
		if cfg.RateLimit != 0 {
			t.Errorf("expected no rate limit, got %v", cfg.RateLimit)
		}
	})

	t.Run("default OutputDir is the current directory", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputDir != "." {
			t.Errorf("expected OutputDir to be '.', got %q", cfg.OutputDir)
		}
	})
}

// TestConfigValidate tests one validation rule per case.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.Email = "jane@example.com"
		return cfg
	}

	testCases := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"valid config", func(*Config) {}, nil},
		{"no target", func(c *Config) { c.Email = "" }, ErrNoTarget},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"negative domain timeout", func(c *Config) { c.DomainTimeout = -time.Second }, ErrInvalidTimeout},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }, ErrInvalidConcurrency},
		{"json and markdown", func(c *Config) { c.JSONReport, c.MarkdownReport = true, true }, ErrConflictingReportFormats},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }, ErrInvalidRateLimit},
		{"negative body size", func(c *Config) { c.MaxBodySize = -1 }, ErrInvalidMaxBodySize},
		{"unknown sentiment provider", func(c *Config) {
			c.File = &File{Sentiment: SentimentConfig{Provider: "watson"}}
		}, ErrUnknownSentimentProvider},
		{"known sentiment provider", func(c *Config) {
			c.File = &File{Sentiment: SentimentConfig{Provider: "OpenAI"}}
		}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.want == nil && err != nil {
				t.Errorf("expected nil error, got %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigApplyFile(t *testing.T) {
	t.Parallel()

	file := &File{
		OutputDir:  "/tmp/reports",
		DNSServers: []string{"1.1.1.1"},
		RateLimit:  2,
		Proxy:      "127.0.0.1:1080",
		UserAgent:  "custom/1.0",
	}

	t.Run("file fills unset flags", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(file, func(string) bool { return false })

		if cfg.OutputDir != "/tmp/reports" {
			t.Errorf("unexpected OutputDir %q", cfg.OutputDir)
		}
		if !slices.Equal(cfg.DNSServers, []string{"1.1.1.1"}) {
			t.Errorf("unexpected DNSServers %v", cfg.DNSServers)
		}
		if cfg.RateLimit != 2 || cfg.ProxyAddress != "127.0.0.1:1080" || cfg.UserAgent != "custom/1.0" {
			t.Errorf("file settings not applied: %+v", cfg)
		}
		if cfg.File != file {
			t.Error("expected File to be kept")
		}
	})

	t.Run("flags win", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.OutputDir = "out"
		cfg.RateLimit = 5
		cfg.ApplyFile(file, func(flag string) bool {
			return flag == "output-dir" || flag == "rate-limit"
		})

		if cfg.OutputDir != "out" {
			t.Errorf("expected flag value to win, got %q", cfg.OutputDir)
		}
		if cfg.RateLimit != 5 {
			t.Errorf("expected flag value to win, got %v", cfg.RateLimit)
		}
	})

	t.Run("nil file", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.ApplyFile(nil, func(string) bool { return false })
		if cfg.File != nil {
			t.Error("expected no file")
		}
	})
}

// TestFilePlatformSettings tests merging of platform settings.
func TestFilePlatformSettings(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults when platform not listed", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: PlatformConfig{Headers: map[string]string{"Accept-Language": "de"}},
		}

		pc := file.PlatformSettings("github")
		if pc.Disabled {
			t.Error("expected platform to be enabled")
		}
		if pc.Headers["Accept-Language"] != "de" {
			t.Errorf("expected default header, got %v", pc.Headers)
		}
	})

	t.Run("merges headers from defaults and platform", func(t *testing.T) {
		t.Parallel()

		file := &File{
			Defaults: PlatformConfig{Headers: map[string]string{"X-Default": "1", "Cookie": "a=1"}},
			Platforms: map[string]PlatformConfig{
				"linkedin": {Headers: map[string]string{"Cookie": "li_at=xyz"}},
			},
		}

		pc := file.PlatformSettings("LinkedIn")
		if pc.Headers["X-Default"] != "1" {
			t.Error("expected default header to be kept")
		}
		if pc.Headers["Cookie"] != "li_at=xyz" {
			t.Errorf("expected platform cookie, got %q", pc.Headers["Cookie"])
		}
		if file.Defaults.Headers["Cookie"] != "a=1" {
			t.Error("defaults must not be modified")
		}
	})

	t.Run("disabled platform", func(t *testing.T) {
		t.Parallel()

		file := &File{Platforms: map[string]PlatformConfig{
			"facebook": {Disabled: true},
			"github":   {},
		}}

		if !file.PlatformSettings("facebook").Disabled {
			t.Error("expected facebook to be disabled")
		}
		if !slices.Equal(file.DisabledPlatforms(), []string{"facebook"}) {
			t.Errorf("unexpected disabled list %v", file.DisabledPlatforms())
		}
	})
}

func TestSentimentConfig(t *testing.T) {
	t.Run("reads key from configured env", func(t *testing.T) {
		t.Setenv("MAILSLEUTH_TEST_KEY", " sk-test ")

		s := SentimentConfig{APIKeyEnv: "MAILSLEUTH_TEST_KEY"}
		if s.APIKey() != "sk-test" {
			t.Errorf("unexpected key %q", s.APIKey())
		}
		if !s.Enabled() {
			t.Error("expected analyzer to be enabled with a key")
		}
	})

	t.Run("provider none disables", func(t *testing.T) {
		t.Setenv("MAILSLEUTH_TEST_KEY", "sk-test")

		s := SentimentConfig{Provider: "none", APIKeyEnv: "MAILSLEUTH_TEST_KEY"}
		if s.Enabled() {
			t.Error("expected analyzer to be disabled")
		}
	})

	t.Run("no key disables", func(t *testing.T) {
		t.Setenv("MAILSLEUTH_TEST_KEY", "")

		s := SentimentConfig{APIKeyEnv: "MAILSLEUTH_TEST_KEY"}
		if s.Enabled() {
			t.Error("expected analyzer to be disabled without a key")
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.mailsleuth")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".mailsleuth")
		content := `defaults:
  headers:
    Accept-Language: "en-US"
platforms:
  linkedin:
    headers:
      Cookie: "li_at=xyz"
  facebook:
    disabled: true
sentiment:
  provider: openai
  model: gpt-4o-mini
  base_url: "http://localhost:11434/v1"
  api_key_env: MY_KEY
output_dir: reports
dns_servers:
  - 1.1.1.1
rate_limit: 2.5
`
		if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.Defaults.Headers["Accept-Language"] != "en-US" {
			t.Errorf("expected default header, got %v", cfg.Defaults.Headers)
		}
		if cfg.Platforms["linkedin"].Headers["Cookie"] != "li_at=xyz" {
			t.Error("expected linkedin cookie")
		}
		if !cfg.Platforms["facebook"].Disabled {
			t.Error("expected facebook disabled")
		}
		if cfg.Sentiment.BaseURL != "http://localhost:11434/v1" || cfg.Sentiment.APIKeyEnv != "MY_KEY" {
			t.Errorf("unexpected sentiment section %+v", cfg.Sentiment)
		}
		if cfg.OutputDir != "reports" || cfg.RateLimit != 2.5 || len(cfg.DNSServers) != 1 {
			t.Errorf("unexpected top-level settings %+v", cfg)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".mailsleuth")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("initializes nil Platforms map", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".mailsleuth")
		if err := os.WriteFile(configPath, []byte("output_dir: out\n"), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Platforms == nil {
			t.Error("expected Platforms map to be initialized")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("defaults: {}"), 0o600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	dir := XDGConfigDir()
	if filepath.Base(dir) != AppName {
		t.Errorf("expected dir ending in %q, got %q", AppName, dir)
	}
}
