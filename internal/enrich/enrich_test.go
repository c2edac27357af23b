package enrich

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jonathan/leadgen/internal/fetch"
	"github.com/jonathan/leadgen/internal/logging"
	"github.com/jonathan/leadgen/internal/normalize"
	"github.com/jonathan/leadgen/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilePage = `<html>
<head>
	<title>Jane Doe - Senior Engineer - Acme Corp | LinkedIn</title>
	<meta property="og:title" content="Jane Doe - Senior Engineer - Acme Corp | LinkedIn">
	<meta property="og:description" content="Building things. · Experience: Acme Corp · Education: TU Berlin · Location: Berlin, Germany · 500+ connections on LinkedIn">
	<meta property="og:image" content="https://media.example.com/jane.jpg">
	<meta property="profile:first_name" content="Jane">
	<meta property="profile:last_name" content="Doe">
</head>
<body><main>Jane Doe</main></body>
</html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

// routeTo sends every connection to ts, so profile links on real platform
// hosts are answered locally.
func routeTo(ts *httptest.Server) Option {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = func(ctx context.Context, network, _ string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, network, ts.Listener.Addr().String())
	}
	opts := fetch.DefaultOptions()
	opts.Client = &http.Client{Transport: transport}
	return WithFetchOptions(opts)
}

func newTestEnricher(opts ...Option) *Enricher {
	return New(append([]Option{WithLogger(logging.Discard())}, opts...)...)
}

const (
	linkedInLink = "http://www.linkedin.com/in/janedoe"
	twitterLink  = "http://x.com/jane"
)

func TestEnrich_FillsEmptyFields(t *testing.T) {
	ts := serve(t, http.StatusOK, profilePage)

	in := types.NewProfile()
	in.Link = linkedInLink
	in.ProfileImageURL = normalize.DefaultProfileImageURL

	out, err := newTestEnricher(routeTo(ts)).Enrich(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", out.FullName)
	assert.Equal(t, "Senior Engineer", out.CurrentPosition)
	assert.Equal(t, "Acme Corp", out.Company)
	assert.Equal(t, "Berlin, Germany", out.Location)
	assert.Equal(t, "https://media.example.com/jane.jpg", out.ProfileImageURL)
	assert.Contains(t, out.About, "Building things.")
	assert.Equal(t, in.Link, out.Link)

	// The input is a value copy and stays untouched
	assert.Empty(t, in.FullName)
	assert.Equal(t, normalize.DefaultProfileImageURL, in.ProfileImageURL)
}

func TestEnrich_KeepsExistingValues(t *testing.T) {
	ts := serve(t, http.StatusOK, profilePage)

	in := types.NewProfile()
	in.Link = linkedInLink
	in.FullName = "J. Doe"
	in.About = "From search"
	in.ProfileImageURL = "https://cdn.example.com/thumb.jpg"

	out, err := newTestEnricher(routeTo(ts)).Enrich(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "J. Doe", out.FullName)
	assert.Equal(t, "From search", out.About)
	assert.Equal(t, "https://cdn.example.com/thumb.jpg", out.ProfileImageURL)
}

func TestEnrich_FetchError(t *testing.T) {
	ts := serve(t, http.StatusForbidden, "")

	in := types.NewProfile()
	in.Link = linkedInLink

	out, err := newTestEnricher(routeTo(ts)).Enrich(context.Background(), in)
	require.Error(t, err)

	var enrichErr *Error
	require.ErrorAs(t, err, &enrichErr)
	assert.Equal(t, linkedInLink, enrichErr.URL)

	var fetchErr *fetch.Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, in, out)
}

func TestEnrich_NoLink(t *testing.T) {
	_, err := newTestEnricher().Enrich(context.Background(), types.NewProfile())
	var enrichErr *Error
	require.ErrorAs(t, err, &enrichErr)
	assert.Contains(t, err.Error(), "no link")
}

func TestEnrich_RendersThinPages(t *testing.T) {
	ts := serve(t, http.StatusOK, `<html><body>Sign in</body></html>`)

	var rendered string
	render := func(_ context.Context, url string) (string, error) {
		rendered = url
		return profilePage, nil
	}

	out, err := newTestEnricher(routeTo(ts), WithRenderer(render)).EnrichURL(context.Background(), linkedInLink)
	require.NoError(t, err)
	assert.Equal(t, linkedInLink, rendered)
	assert.Equal(t, "Jane Doe", out.FullName)
}

func TestEnrich_RendersAfterFetchFailure(t *testing.T) {
	ts := serve(t, http.StatusTooManyRequests, "")

	render := func(context.Context, string) (string, error) { return profilePage, nil }

	out, err := newTestEnricher(routeTo(ts), WithRenderer(render)).EnrichURL(context.Background(), linkedInLink)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", out.FullName)
}

func TestEnrich_RenderFailureFallsBackToFetchedPage(t *testing.T) {
	ts := serve(t, http.StatusOK, `<html><head><meta property="og:title" content="Jane Doe (@jane) / X"></head></html>`)

	render := func(context.Context, string) (string, error) { return "", errors.New("chrome not installed") }

	out, err := newTestEnricher(routeTo(ts), WithRenderer(render)).EnrichURL(context.Background(), twitterLink)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", out.FullName)
}

func TestEnrich_RenderFailureAfterFetchFailure(t *testing.T) {
	ts := serve(t, http.StatusInternalServerError, "")

	boom := errors.New("chrome not installed")
	render := func(context.Context, string) (string, error) { return "", boom }

	_, err := newTestEnricher(routeTo(ts), WithRenderer(render)).EnrichURL(context.Background(), linkedInLink)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.True(t, strings.Contains(err.Error(), "failed to render page"))
}

func TestEnrich_RejectsUnsupportedHosts(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(profilePage))
	}))
	defer ts.Close()

	rendered := false
	render := func(context.Context, string) (string, error) {
		rendered = true
		return profilePage, nil
	}
	enricher := newTestEnricher(routeTo(ts), WithRenderer(render))

	for _, link := range []string{
		ts.URL + "/admin",
		"http://169.254.169.254/latest/meta-data/",
		"http://linkedin.com.attacker.example/in/jane",
		"file:///etc/passwd",
	} {
		t.Run(link, func(t *testing.T) {
			_, err := enricher.EnrichURL(context.Background(), link)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedHost)

			var enrichErr *Error
			require.ErrorAs(t, err, &enrichErr)
			assert.Equal(t, link, enrichErr.URL)
		})
	}
	assert.Zero(t, hits.Load())
	assert.False(t, rendered)
}
