package controller

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kacebover/lumox/lookup"
)

func TestAppConfig_DefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, lookup.DefaultIPAPIBaseURL, config.IPAPIBaseURL)
	assert.Equal(t, "10s", config.HTTPTimeout)
	assert.Equal(t, "dark", config.Theme)
	assert.Equal(t, 3*time.Second, config.Splash())
	assert.Equal(t, lookup.AllKinds(), config.EnabledKinds())
	assert.Len(t, config.Sites, len(lookup.DefaultSites()))
}

func TestAppConfig_Validate(t *testing.T) {
	config := &AppConfig{
		HTTPTimeout:    "soon",
		DNSTimeout:     "0s",
		SplashDuration: "-1s",
		ProbeWorkers:   100,
		Modules:        []string{"IP", "fax", "dork"},
		Theme:          "purple",
		WindowWidth:    10,
	}
	config.ValidateConfig()

	def := DefaultConfig()
	assert.Equal(t, def.HTTPTimeout, config.HTTPTimeout)
	assert.Equal(t, def.WhoisTimeout, config.WhoisTimeout)
	assert.Equal(t, def.DNSTimeout, config.DNSTimeout)
	assert.Equal(t, def.SplashDuration, config.SplashDuration)
	assert.Equal(t, 32, config.ProbeWorkers)
	assert.Equal(t, []string{"ip", "dork"}, config.Modules)
	assert.Equal(t, "dark", config.Theme)
	assert.Equal(t, 700, config.WindowWidth)
	assert.Equal(t, 500, config.WindowHeight)
	assert.Equal(t, def.UserAgent, config.UserAgent)
	assert.Equal(t, "info", config.LogLevel)

	config.Modules = nil
	config.ValidateConfig()
	assert.Equal(t, lookup.AllKinds(), config.EnabledKinds())
}

func TestLoadConfigFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
ip_api_base_url: http://127.0.0.1:9999
http_timeout: 2s
resolver: 127.0.0.1:5353
probe_workers: 3
modules: [ip, domain]
sites:
  - name: Gitlab
    url: https://gitlab.com/{}
theme: light
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	config, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9999", config.IPAPIBaseURL)
	assert.Equal(t, []lookup.Kind{lookup.KindIP, lookup.KindDomain}, config.EnabledKinds())
	assert.Equal(t, []lookup.Site{{Name: "Gitlab", URL: "https://gitlab.com/{}"}}, config.Sites)
	assert.Equal(t, "light", config.Theme)
	// Unset fields keep their defaults
	assert.Equal(t, lookup.DefaultSearchURL, config.SearchURL)

	opts, err := config.LookupOptions()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, opts.HTTPClient.Timeout)
	assert.Equal(t, "127.0.0.1:5353", opts.Resolver)
	assert.Equal(t, 3, opts.ProbeWorkers)
	assert.Equal(t, lookup.DefaultWhoisTimeout, opts.WhoisTimeout)
	assert.Nil(t, opts.Opener)
}

func TestLoadConfigFrom_Missing(t *testing.T) {
	config, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestLoadConfigFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modules: [unterminated"), 0644))

	_, err := LoadConfigFrom(path)
	assert.Error(t, err)
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	config := DefaultConfig()
	config.Modules = []string{"username"}
	config.MetricsAddr = "127.0.0.1:9464"
	require.NoError(t, SaveConfigTo(config, ConfigPath()))

	_, err := os.Stat(ConfigPath())
	require.NoError(t, err)

	loaded, err := LoadConfigFrom(ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, []lookup.Kind{lookup.KindUsername}, loaded.EnabledKinds())
	assert.Equal(t, "127.0.0.1:9464", loaded.MetricsAddr)
}

func TestLookupOptions_InvalidDuration(t *testing.T) {
	config := DefaultConfig()
	config.WhoisTimeout = "forever"

	_, err := config.LookupOptions()
	assert.ErrorContains(t, err, "whois_timeout")

	config = DefaultConfig()
	config.DNSTimeout = "later"
	_, err = config.LookupOptions()
	assert.ErrorContains(t, err, "dns_timeout")
}

func TestLookupOptions_Timeouts(t *testing.T) {
	config := DefaultConfig()
	config.HTTPTimeout = "2s"
	config.DNSTimeout = "750ms"
	config.WhoisTimeout = "4s"

	opts, err := config.LookupOptions()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, opts.HTTPClient.Timeout)
	assert.Equal(t, 750*time.Millisecond, opts.DNSTimeout)
	assert.Equal(t, 4*time.Second, opts.WhoisTimeout)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))
	assert.True(t, logger.Core().Enabled(1))

	logger, err = NewLogger("warn", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1))

	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}
