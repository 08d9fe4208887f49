package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDork(t *testing.T) {
	tests := []struct {
		op       Operator
		term     string
		fileType string
		want     string
		err      error
	}{
		{OpSite, "example.com", "", "site:example.com", nil},
		{OpInURL, " admin ", "", "inurl:admin", nil},
		{OpInTitle, "index of", "", "intitle:index of", nil},
		{OpCache, "example.com", "", "cache:example.com", nil},
		{OpFiletype, "confidential", "pdf", "filetype:pdf confidential", nil},
		{OpFiletype, "budget", ".xlsx", "filetype:xlsx budget", nil},
		{OpFiletype, "budget", "", "", ErrEmptyInput},
		{OpSite, "   ", "", "", ErrEmptyInput},
		{Operator("ext"), "x", "", "", ErrUnknownOperator},
	}

	for _, tt := range tests {
		t.Run(string(tt.op)+"/"+tt.term, func(t *testing.T) {
			got, err := BuildDork(tt.op, tt.term, tt.fileType)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOperator(t *testing.T) {
	op, err := ParseOperator("InTitle")
	require.NoError(t, err)
	assert.Equal(t, OpInTitle, op)

	_, err = ParseOperator("related")
	assert.True(t, errors.Is(err, ErrUnknownOperator))
	assert.Len(t, Operators(), 5)
}

func TestDork_OpensSearchURL(t *testing.T) {
	var opened []string
	l := New(Options{Opener: URLOpenerFunc(func(u string) error {
		opened = append(opened, u)
		return nil
	})})

	res := l.Dork(context.Background(), "filetype:pdf annual report")

	require.True(t, res.OK(), res.Reason())
	want := "https://www.google.com/search?q=filetype%3Apdf+annual+report"
	assert.Equal(t, []string{want}, opened)
	assert.Equal(t, "Opened: "+want, res.Text())
}

func TestDork_CustomSearchURL(t *testing.T) {
	l := New(Options{SearchURL: "https://duckduckgo.com/"})
	assert.Equal(t, "https://duckduckgo.com/?q=site%3Aexample.com", l.SearchURL("site:example.com"))
}

func TestDork_Failures(t *testing.T) {
	noOpener := New(Options{})
	res := noOpener.Dork(context.Background(), "site:example.com")
	assert.False(t, res.OK())
	assert.Contains(t, res.Reason(), "no browser available")

	broken := New(Options{Opener: URLOpenerFunc(func(string) error { return errors.New("xdg-open missing") })})
	res = broken.Dork(context.Background(), "site:example.com")
	assert.Equal(t, "failed to open browser: xdg-open missing", res.Reason())

	res = broken.Dork(context.Background(), " ")
	assert.False(t, res.OK())
}

func TestLookups_Func(t *testing.T) {
	l := New(Options{})
	for _, k := range AllKinds() {
		fn, err := l.Func(k)
		require.NoError(t, err, k)
		assert.NotNil(t, fn)
	}
	_, err := l.Func(Kind("email"))
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	opts := New(Options{}).Options()
	assert.Equal(t, DefaultIPAPIBaseURL, opts.IPAPIBaseURL)
	assert.Equal(t, DefaultSearchURL, opts.SearchURL)
	assert.Equal(t, DefaultUserAgent, opts.UserAgent)
	assert.Equal(t, DefaultProbeWorkers, opts.ProbeWorkers)
	assert.Len(t, opts.Sites, 6)
	assert.NotNil(t, opts.HTTPClient)
	assert.NotNil(t, opts.Whois)
}
