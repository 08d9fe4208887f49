package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/slow/"):
			time.Sleep(50 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		case strings.HasPrefix(r.URL.Path, "/found/"):
			w.WriteHeader(http.StatusOK)
		case strings.HasPrefix(r.URL.Path, "/moved/"):
			w.WriteHeader(http.StatusGone)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProbeUsername_StatusesInSiteOrder(t *testing.T) {
	srv := newProfileServer(t)

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	sites := []Site{
		{Name: "Slow", URL: srv.URL + "/slow/{}"},
		{Name: "Found", URL: srv.URL + "/found/{}"},
		{Name: "Missing", URL: srv.URL + "/missing/{}"},
		{Name: "Gone", URL: srv.URL + "/moved/{}"},
		{Name: "Down", URL: deadURL + "/{}"},
	}
	l := New(Options{Sites: sites, ProbeWorkers: 3})

	results, err := l.ProbeUsername(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, results, len(sites))

	want := []ProbeStatus{ProbeFound, ProbeFound, ProbeNotFound, ProbeNotFound, ProbeError}
	for i, r := range results {
		assert.Equal(t, sites[i].Name, r.Site)
		assert.Equal(t, want[i], r.Status, r.Site)
	}
	assert.Error(t, results[4].Err)
	assert.Equal(t, srv.URL+"/found/octocat", results[1].URL)
}

func TestUsername_Render(t *testing.T) {
	srv := newProfileServer(t)
	l := New(Options{Sites: []Site{
		{Name: "Github", URL: srv.URL + "/found/{}"},
		{Name: "Reddit", URL: srv.URL + "/missing/{}"},
	}})

	res := l.Username(context.Background(), "octocat")
	require.True(t, res.OK())
	assert.Equal(t, "Github: FOUND\nReddit: NOT FOUND\n", res.Text())
}

func TestUsername_Invalid(t *testing.T) {
	l := New(Options{Sites: []Site{{Name: "X", URL: "http://127.0.0.1:1/{}"}}})

	for _, input := range []string{"two words", "a/b", "q?x"} {
		res := l.Username(context.Background(), input)
		assert.False(t, res.OK(), input)
		assert.Contains(t, res.Reason(), "invalid username")
	}

	assert.True(t, errors.Is(ValidateUsername(""), ErrEmptyInput))
}

func TestSite_ProfileURL(t *testing.T) {
	s := Site{Name: "Youtube", URL: "https://www.youtube.com/@{}"}
	assert.Equal(t, "https://www.youtube.com/@john", s.ProfileURL("john"))
	assert.Equal(t, "https://www.youtube.com/@j%C3%B6rg", s.ProfileURL("jörg"))
}

func TestDefaultSites(t *testing.T) {
	sites := DefaultSites()
	require.Len(t, sites, 6)
	for _, s := range sites {
		assert.Contains(t, s.URL, "{}", s.Name)
	}
	assert.Equal(t, "Github", sites[0].Name)
	assert.Equal(t, "Steam", sites[5].Name)
}
