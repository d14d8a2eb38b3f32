// Package fetch retrieves job postings over HTTP (or a headless browser) and
// reduces their HTML to plain text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the analyzer to job boards.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ATSAnalyzer/1.0)"

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 5 << 20

// Page is a fetched document.
type Page struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures Get and JobText.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
	// UseBrowser renders the page in headless Chrome instead of a plain GET.
	UseBrowser bool
	// BrowserFallback retries in a browser when the plain GET yields too little text.
	BrowserFallback bool
	Logger          *zap.Logger
	Client          *http.Client
}

// DefaultOptions returns the options the CLI uses.
func DefaultOptions() *Options {
	return &Options{
		Timeout:         DefaultTimeout,
		UserAgent:       DefaultUserAgent,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		BrowserFallback: true,
		Logger:          zap.NewNop(),
	}
}

func (o *Options) withDefaults() *Options {
	if o == nil {
		return DefaultOptions()
	}
	out := *o
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.UserAgent == "" {
		out.UserAgent = DefaultUserAgent
	}
	if out.MaxBodyBytes <= 0 {
		out.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	return &out
}

// ValidateURL checks that urlStr is an absolute http(s) URL.
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &Error{URL: urlStr, Message: "invalid URL", Cause: fmt.Errorf("unsupported scheme %q", parsed.Scheme)}
	}
	return nil
}

// Get performs a plain HTTP GET. On a non-200 status the page is returned
// together with an *Error.
func Get(ctx context.Context, urlStr string, opts *Options) (*Page, error) {
	opts = opts.withDefaults()
	if err := ValidateURL(urlStr); err != nil {
		return nil, err
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, opts.MaxBodyBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	opts.Logger.Debug("fetched page",
		zap.String("url", urlStr),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)

	page := &Page{
		URL:         urlStr,
		HTML:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if resp.StatusCode != http.StatusOK {
		return page, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return page, nil
}

// JobText fetches a job posting and returns its main description text.
func JobText(ctx context.Context, urlStr string, opts *Options) (string, error) {
	opts = opts.withDefaults()
	platform := DetectPlatform(urlStr)

	if opts.UseBrowser {
		return browserText(ctx, urlStr, platform, opts)
	}

	page, err := Get(ctx, urlStr, opts)
	if err != nil {
		return "", err
	}

	text, err := ExtractText(page.HTML, platform)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}

	if opts.BrowserFallback && ShouldUseBrowser(text) {
		opts.Logger.Info("page text too short, retrying in browser",
			zap.String("url", urlStr),
			zap.Int("chars", len(text)),
		)
		rendered, berr := browserText(ctx, urlStr, platform, opts)
		if berr == nil && len(rendered) > len(text) {
			return rendered, nil
		}
		if berr != nil {
			opts.Logger.Warn("browser fallback failed", zap.Error(berr))
		}
	}

	return text, nil
}

func browserText(ctx context.Context, urlStr string, platform Platform, opts *Options) (string, error) {
	rendered, err := Render(ctx, urlStr, opts.Timeout, opts.Logger)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}
	text, err := ExtractText(rendered, platform)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}
	return text, nil
}

// ExtractText strips page chrome and returns the job description text,
// one non-empty trimmed line per line.
func ExtractText(rawHTML string, platform Platform) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, iframe, svg, .sidebar").Remove()
	doc.Find(strings.Join(NoiseSelectors(platform), ", ")).Remove()

	content := doc.Find("body")
	for _, selector := range ContentSelectors(platform) {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}

	return cleanLines(blockText(content)), nil
}

var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "section": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// blockText flattens a selection to text, ending each block element with a newline
// so list items and paragraphs do not run together.
func blockText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "br" {
				b.WriteByte('\n')
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			b.WriteByte('\n')
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return b.String()
}

func cleanLines(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
