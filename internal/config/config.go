package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout bounds each probe request. Profile pages either answer
	// quickly or not at all; a slow site only delays its own platform.
	DefaultTimeout = 5 * time.Second

	// DefaultDomainTimeout bounds each WHOIS and DNS query.
	DefaultDomainTimeout = 10 * time.Second

	// DefaultConcurrency is the number of platforms probed at once.
	DefaultConcurrency = 10

	// DefaultOutputDir is where report files are written.
	DefaultOutputDir = "."

	// DefaultMaxBodySize limits how much of a profile page is read.
	DefaultMaxBodySize = 2 * 1024 * 1024 // 2MB

	// AppName is the application name used for XDG directory paths.
	AppName = "mailsleuth"
)

// Config holds all options of one investigation. It is populated from CLI
// flags and the configuration file and passed down explicitly.
type Config struct {
	// Email is the address to investigate.
	Email string

	// Timeout is the per-request timeout for profile probes.
	Timeout time.Duration

	// DomainTimeout is the per-query timeout for WHOIS and DNS lookups.
	DomainTimeout time.Duration

	// Concurrency is the number of platforms probed at once.
	Concurrency int

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" form.
	ProxyAddress string

	// RateLimit caps outgoing probe requests per second. Zero disables it.
	RateLimit float64

	// DNSServers overrides the resolvers from /etc/resolv.conf.
	DNSServers []string

	// UserAgent overrides the browser User-Agent sent with probes.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// GitHubSearch enables the GitHub user search by public email.
	GitHubSearch bool

	// Verbose enables debug logging and detailed text output.
	Verbose bool

	// JSONReport prints the report as JSON. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport prints the report as Markdown.
	MarkdownReport bool

	// OutputDir is where the JSON report file is saved.
	OutputDir string

	// NoSave disables writing the report file.
	NoSave bool

	// ConfigFilePath is the path to the configuration file. If empty, the
	// usual locations are searched.
	ConfigFilePath string

	// File is the loaded configuration file, if any.
	File *File
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Timeout:       DefaultTimeout,
		DomainTimeout: DefaultDomainTimeout,
		Concurrency:   DefaultConcurrency,
		MaxBodySize:   DefaultMaxBodySize,
		GitHubSearch:  true,
		OutputDir:     DefaultOutputDir,
	}
}

// XDGConfigDir returns the XDG config directory for mailsleuth.
// On Linux: ~/.config/mailsleuth
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.Email == "" {
		return ErrNoTarget
	}
	if c.Timeout <= 0 || c.DomainTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.File != nil {
		if err := c.File.Sentiment.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplyFile copies settings from f into c. Settings whose flag was given
// on the command line, as reported by changed, are left alone.
func (c *Config) ApplyFile(f *File, changed func(flag string) bool) {
	if f == nil {
		return
	}
	c.File = f

	if f.OutputDir != "" && !changed("output-dir") {
		c.OutputDir = f.OutputDir
	}
	if len(f.DNSServers) > 0 && !changed("dns-server") {
		c.DNSServers = f.DNSServers
	}
	if f.RateLimit > 0 && !changed("rate-limit") {
		c.RateLimit = f.RateLimit
	}
	if f.Proxy != "" && !changed("proxy") {
		c.ProxyAddress = f.Proxy
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
}
