package controller

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kacebover/lumox/lookup"
)

// AppConfig holds all application configuration
type AppConfig struct {
	// Lookup settings
	IPAPIBaseURL string        `yaml:"ip_api_base_url"`
	SearchURL    string        `yaml:"search_url"`
	UserAgent    string        `yaml:"user_agent"`
	HTTPTimeout  string        `yaml:"http_timeout"`  // e.g. "10s"
	WhoisTimeout string        `yaml:"whois_timeout"` // e.g. "15s"
	Resolver     string        `yaml:"resolver,omitempty"`
	DNSTimeout   string        `yaml:"dns_timeout"`
	ProbeWorkers int           `yaml:"probe_workers"`
	Sites        []lookup.Site `yaml:"sites"`
	Modules      []string      `yaml:"modules"`

	// UI settings
	Theme          string `yaml:"theme"` // "dark", "light", "system"
	SplashDuration string `yaml:"splash_duration"`
	WindowWidth    int    `yaml:"window_width"`
	WindowHeight   int    `yaml:"window_height"`

	// Observability
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	modules := make([]string, 0, len(lookup.AllKinds()))
	for _, k := range lookup.AllKinds() {
		modules = append(modules, string(k))
	}

	return &AppConfig{
		IPAPIBaseURL: lookup.DefaultIPAPIBaseURL,
		SearchURL:    lookup.DefaultSearchURL,
		UserAgent:    lookup.DefaultUserAgent,
		HTTPTimeout:  lookup.DefaultHTTPTimeout.String(),
		WhoisTimeout: lookup.DefaultWhoisTimeout.String(),
		DNSTimeout:   lookup.DefaultDNSTimeout.String(),
		ProbeWorkers: lookup.DefaultProbeWorkers,
		Sites:        lookup.DefaultSites(),
		Modules:      modules,

		Theme:          "dark",
		SplashDuration: "3s",
		WindowWidth:    900,
		WindowHeight:   650,

		LogLevel: "info",
	}
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, "Library", "Application Support")
	default: // linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			homeDir, _ := os.UserHomeDir()
			configDir = filepath.Join(homeDir, ".config")
		}
	}

	return filepath.Join(configDir, "Lumox")
}

// ConfigPath returns the full path to the default config file
func ConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// LoadConfigFrom loads configuration from path. A missing file yields the
// defaults; unset fields keep their default values.
func LoadConfigFrom(path string) (*AppConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	config.ValidateConfig()
	return config, nil
}

// SaveConfigTo writes configuration to path, creating its directory
func SaveConfigTo(config *AppConfig, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ValidateConfig validates and normalizes configuration values
func (c *AppConfig) ValidateConfig() {
	def := DefaultConfig()

	if c.IPAPIBaseURL == "" {
		c.IPAPIBaseURL = def.IPAPIBaseURL
	}
	if c.SearchURL == "" {
		c.SearchURL = def.SearchURL
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if _, err := time.ParseDuration(c.HTTPTimeout); err != nil {
		c.HTTPTimeout = def.HTTPTimeout
	}
	if _, err := time.ParseDuration(c.WhoisTimeout); err != nil {
		c.WhoisTimeout = def.WhoisTimeout
	}
	if d, err := time.ParseDuration(c.DNSTimeout); err != nil || d <= 0 {
		c.DNSTimeout = def.DNSTimeout
	}
	if d, err := time.ParseDuration(c.SplashDuration); err != nil || d < 0 {
		c.SplashDuration = def.SplashDuration
	}

	if c.ProbeWorkers < 1 {
		c.ProbeWorkers = 1
	}
	if c.ProbeWorkers > 32 {
		c.ProbeWorkers = 32
	}

	if len(c.Sites) == 0 {
		c.Sites = def.Sites
	}

	// Drop unknown modules; an empty list enables everything
	modules := make([]string, 0, len(c.Modules))
	for _, m := range c.Modules {
		if k, err := lookup.ParseKind(m); err == nil {
			modules = append(modules, string(k))
		}
	}
	if len(modules) == 0 {
		modules = def.Modules
	}
	c.Modules = modules

	switch c.Theme {
	case "dark", "light", "system":
	default:
		c.Theme = def.Theme
	}

	if c.WindowWidth < 700 {
		c.WindowWidth = 700
	}
	if c.WindowHeight < 500 {
		c.WindowHeight = 500
	}

	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// EnabledKinds returns the configured modules as kinds, in order
func (c *AppConfig) EnabledKinds() []lookup.Kind {
	kinds := make([]lookup.Kind, 0, len(c.Modules))
	for _, m := range c.Modules {
		if k, err := lookup.ParseKind(m); err == nil {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Splash returns the splash screen duration
func (c *AppConfig) Splash() time.Duration {
	d, err := time.ParseDuration(c.SplashDuration)
	if err != nil {
		return 3 * time.Second
	}
	return d
}

// LookupOptions converts the config into lookup options. The URL opener is
// left for the caller to set.
func (c *AppConfig) LookupOptions() (lookup.Options, error) {
	httpTimeout, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return lookup.Options{}, fmt.Errorf("invalid http_timeout %q: %w", c.HTTPTimeout, err)
	}
	whoisTimeout, err := time.ParseDuration(c.WhoisTimeout)
	if err != nil {
		return lookup.Options{}, fmt.Errorf("invalid whois_timeout %q: %w", c.WhoisTimeout, err)
	}

	dnsTimeout, err := time.ParseDuration(c.DNSTimeout)
	if err != nil {
		return lookup.Options{}, fmt.Errorf("invalid dns_timeout %q: %w", c.DNSTimeout, err)
	}

	opts := lookup.DefaultOptions()
	opts.HTTPClient.Timeout = httpTimeout
	opts.UserAgent = c.UserAgent
	opts.IPAPIBaseURL = c.IPAPIBaseURL
	opts.SearchURL = c.SearchURL
	opts.Sites = c.Sites
	opts.ProbeWorkers = c.ProbeWorkers
	opts.Resolver = c.Resolver
	opts.DNSTimeout = dnsTimeout
	opts.WhoisTimeout = whoisTimeout
	return opts, nil
}
