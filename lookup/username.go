package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Site is a platform probed by the username lookup. URL contains "{}" where
// the username goes.
type Site struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// ProbeStatus is the outcome for one site
type ProbeStatus string

const (
	ProbeFound    ProbeStatus = "FOUND"
	ProbeNotFound ProbeStatus = "NOT FOUND"
	ProbeError    ProbeStatus = "ERROR"
)

// ProbeResult is the outcome of probing a single site
type ProbeResult struct {
	Site   string
	URL    string
	Status ProbeStatus
	Err    error
}

// DefaultSites returns the platforms checked out of the box
func DefaultSites() []Site {
	return []Site{
		{Name: "Github", URL: "https://github.com/{}"},
		{Name: "Reddit", URL: "https://www.reddit.com/user/{}"},
		{Name: "Youtube", URL: "https://www.youtube.com/@{}"},
		{Name: "Tiktok", URL: "https://www.tiktok.com/@{}"},
		{Name: "Pastebin", URL: "https://pastebin.com/u/{}"},
		{Name: "Steam", URL: "https://steamcommunity.com/id/{}"},
	}
}

// ProfileURL fills the username into the site template
func (s Site) ProfileURL(username string) string {
	return strings.ReplaceAll(s.URL, "{}", url.PathEscape(username))
}

// ValidateUsername rejects input that cannot be placed into a profile URL
func ValidateUsername(username string) error {
	if username == "" {
		return ErrEmptyInput
	}
	if strings.ContainsAny(username, " \t\r\n/?#") {
		return fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}
	return nil
}

// ProbeUsername checks every configured site. Results keep the site order
// regardless of completion order.
func (l *Lookups) ProbeUsername(ctx context.Context, username string) ([]ProbeResult, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	sites := l.opts.Sites
	results := make([]ProbeResult, len(sites))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.ProbeWorkers)

	for i, site := range sites {
		i, site := i, site
		g.Go(func() error {
			results[i] = l.probe(gctx, site, username)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (l *Lookups) probe(ctx context.Context, site Site, username string) ProbeResult {
	res := ProbeResult{Site: site.Name, URL: site.ProfileURL(username)}

	resp, err := l.get(ctx, res.URL)
	if err != nil {
		res.Status = ProbeError
		res.Err = err
		return res
	}
	defer drain(resp.Body)

	if resp.StatusCode == http.StatusOK {
		res.Status = ProbeFound
	} else {
		res.Status = ProbeNotFound
	}
	return res
}

// RenderProbes formats probe results one site per line
func RenderProbes(results []ProbeResult) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "%s: %s\n", r.Site, r.Status)
	}
	return b.String()
}

// Username is the username enumeration lookup function
func (l *Lookups) Username(ctx context.Context, input string) Result {
	results, err := l.ProbeUsername(ctx, input)
	if err != nil {
		return Failed(err)
	}
	return Success(RenderProbes(results))
}
