package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, localOptions())
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestURL_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/in/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/in/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/in/new", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	result, err := URL(context.Background(), server.URL+"/in/old", localOptions())
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/in/new", result.URL)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, u := range []string{"not-a-valid-url", "ftp://example.com/file", "javascript:alert(1)"} {
		t.Run(u, func(t *testing.T) {
			_, err := URL(context.Background(), u, nil)
			require.Error(t, err)

			var fetchErr *Error
			assert.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, localOptions())
	require.Error(t, err)
	assert.NotNil(t, result) // Result is returned even on error
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestURL_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := URL(ctx, server.URL, localOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractMainText_WithMainElement(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Navigation</nav>
			<main>
				<h1>Jane Doe</h1>
				<p>Senior Engineer at Acme.</p>
			</main>
			<footer>Footer</footer>
		</body>
	</html>`

	text, err := ExtractMainText(html, DefaultTextSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior Engineer at Acme.", text)
	assert.NotContains(t, text, "Navigation")
	assert.NotContains(t, text, "Footer")
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	html := `<html><body><div>Some content here.</div></body></html>`

	text, err := ExtractMainText(html, DefaultTextSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Some content here.", text)
}

func TestExtractMainText_NoiseSelectors(t *testing.T) {
	html := `
	<html>
		<body>
			<main>
				<section class="top-card-layout">Jane Doe</section>
				<div class="contextual-sign-in-modal">Sign in to view</div>
			</main>
		</body>
	</html>`

	text, err := ExtractMainText(html, []string{"main"}, ".contextual-sign-in-modal")
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.NotContains(t, text, "Sign in")
}

func TestExtractMeta(t *testing.T) {
	html := `
	<html>
		<head>
			<title> Jane Doe - Senior Engineer | LinkedIn </title>
			<meta property="og:title" content="Jane Doe - Senior Engineer - Acme">
			<meta property="og:title" content="ignored duplicate">
			<meta property="OG:Image" content="https://cdn.example.com/jane.jpg">
			<meta name="description" content="  Building things.  ">
			<meta property="profile:first_name" content="Jane">
			<meta name="empty" content="">
			<meta charset="utf-8">
		</head>
	</html>`

	meta, err := ExtractMeta(html)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe - Senior Engineer - Acme", meta["og:title"])
	assert.Equal(t, "https://cdn.example.com/jane.jpg", meta["og:image"])
	assert.Equal(t, "Building things.", meta["description"])
	assert.Equal(t, "Jane", meta["profile:first_name"])
	assert.Equal(t, "Jane Doe - Senior Engineer | LinkedIn", meta["title"])
	assert.NotContains(t, meta, "empty")
}

func TestMetaGet(t *testing.T) {
	meta := Meta{"description": "plain", "og:description": ""}
	assert.Equal(t, "plain", meta.Get("og:description", "description"))
	assert.Empty(t, meta.Get("missing"))
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("   short   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("x", MinContentLength)))
}
