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

func TestGet_Success(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	page, err := Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, page.URL)
	assert.Contains(t, page.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, "text/html", page.ContentType)
	assert.Equal(t, DefaultUserAgent, gotAgent)
}

func TestGet_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/job", ""} {
		t.Run(raw, func(t *testing.T) {
			_, err := Get(context.Background(), raw, nil)
			require.Error(t, err)

			var fetchErr *Error
			assert.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestGet_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	page, err := Get(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, page)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestGet_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer server.Close()

	page, err := Get(context.Background(), server.URL, &Options{MaxBodyBytes: 10})
	require.NoError(t, err)
	assert.Len(t, page.HTML, 10)
}

func TestJobText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<nav>Jobs Home</nav>
			<div class="job-description">
				<h2>Requirements</h2>
				<ul><li>5 years of Go</li><li>Kubernetes</li></ul>
			</div>
			<form>Apply now</form>
			<footer>Copyright</footer>
		</body></html>`))
	}))
	defer server.Close()

	text, err := JobText(context.Background(), server.URL, &Options{})
	require.NoError(t, err)
	assert.Equal(t, "Requirements\n5 years of Go\nKubernetes", text)
}

func TestJobText_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := JobText(context.Background(), server.URL, &Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		platform    Platform
		contains    []string
		notContains []string
	}{
		{
			name:        "main element",
			html:        `<html><body><nav>Navigation</nav><main><h1>Main Content</h1><p>The important text.</p></main><footer>Footer</footer></body></html>`,
			platform:    PlatformUnknown,
			contains:    []string{"Main Content", "The important text."},
			notContains: []string{"Navigation", "Footer"},
		},
		{
			name:     "fallback to body",
			html:     `<html><body><div>Some content here.</div></body></html>`,
			platform: PlatformUnknown,
			contains: []string{"Some content here."},
		},
		{
			name:        "sidebar removed",
			html:        `<html><body><div class="sidebar">Sidebar junk</div><div class="job-description"><p>5 years experience in Go</p></div></body></html>`,
			platform:    PlatformUnknown,
			contains:    []string{"5 years experience in Go"},
			notContains: []string{"Sidebar junk"},
		},
		{
			name:        "greenhouse layout",
			html:        `<html><body><div class="job__description"><p>Build APIs in Go</p></div><div id="usa_self_id_section">Self identification</div><div class="job-description">Other</div></body></html>`,
			platform:    PlatformGreenhouse,
			contains:    []string{"Build APIs in Go"},
			notContains: []string{"Self identification", "Other"},
		},
		{
			name:     "line breaks preserved",
			html:     `<html><body><main>First line<br>Second   line</main></body></html>`,
			platform: PlatformUnknown,
			contains: []string{"First line\nSecond line"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractText(tt.html, tt.platform)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, text, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, text, unwanted)
			}
		})
	}
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("   short   "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength)))
}
