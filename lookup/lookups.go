package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultIPAPIBaseURL = "http://ip-api.com"
	DefaultSearchURL    = "https://www.google.com/search"
	DefaultUserAgent    = "Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0"
	DefaultHTTPTimeout  = 10 * time.Second
	DefaultWhoisTimeout = 15 * time.Second
	DefaultDNSTimeout   = 5 * time.Second
	DefaultProbeWorkers = 6
)

// URLOpener hands a URL to the system browser
type URLOpener interface {
	OpenURL(rawURL string) error
}

// URLOpenerFunc adapts a function to URLOpener
type URLOpenerFunc func(rawURL string) error

// OpenURL calls f
func (f URLOpenerFunc) OpenURL(rawURL string) error { return f(rawURL) }

// Options configures the lookup functions
type Options struct {
	HTTPClient   *http.Client
	UserAgent    string
	IPAPIBaseURL string
	SearchURL    string
	Sites        []Site
	ProbeWorkers int

	// Resolver is a host:port DNS server. Empty means the system resolv.conf.
	Resolver     string
	DNSTimeout   time.Duration
	WhoisTimeout time.Duration
	Whois        WhoisClient

	Opener URLOpener
}

// DefaultOptions returns options pointing at the public endpoints
func DefaultOptions() Options {
	return Options{
		HTTPClient:   &http.Client{Timeout: DefaultHTTPTimeout},
		UserAgent:    DefaultUserAgent,
		IPAPIBaseURL: DefaultIPAPIBaseURL,
		SearchURL:    DefaultSearchURL,
		Sites:        DefaultSites(),
		ProbeWorkers: DefaultProbeWorkers,
		DNSTimeout:   DefaultDNSTimeout,
		WhoisTimeout: DefaultWhoisTimeout,
	}
}

// Lookups bundles the lookup functions sharing one set of options
type Lookups struct {
	opts Options
}

// New creates the lookup set, filling unset options with defaults
func New(opts Options) *Lookups {
	def := DefaultOptions()
	if opts.HTTPClient == nil {
		opts.HTTPClient = def.HTTPClient
	}
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}
	if opts.IPAPIBaseURL == "" {
		opts.IPAPIBaseURL = def.IPAPIBaseURL
	}
	if opts.SearchURL == "" {
		opts.SearchURL = def.SearchURL
	}
	if opts.Sites == nil {
		opts.Sites = def.Sites
	}
	if opts.ProbeWorkers <= 0 {
		opts.ProbeWorkers = def.ProbeWorkers
	}
	if opts.DNSTimeout <= 0 {
		opts.DNSTimeout = def.DNSTimeout
	}
	if opts.WhoisTimeout <= 0 {
		opts.WhoisTimeout = def.WhoisTimeout
	}
	if opts.Whois == nil {
		opts.Whois = newWhoisClient(opts.WhoisTimeout)
	}
	return &Lookups{opts: opts}
}

// Options returns the effective options
func (l *Lookups) Options() Options {
	return l.opts
}

// Func returns the lookup function for a module. Dork lookups take an
// already-built query; see BuildDork.
func (l *Lookups) Func(k Kind) (Func, error) {
	switch k {
	case KindPhone:
		return l.Phone, nil
	case KindIP:
		return l.GeolocateIP, nil
	case KindUsername:
		return l.Username, nil
	case KindDomain:
		return l.Domain, nil
	case KindDork:
		return l.Dork, nil
	default:
		return nil, fmt.Errorf("no lookup for module %q", k)
	}
}

// get performs a GET with the configured user agent and returns the response.
// The caller closes the body.
func (l *Lookups) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", l.opts.UserAgent)

	resp, err := l.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// drain discards the rest of a body so the connection can be reused
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	_ = body.Close()
}
