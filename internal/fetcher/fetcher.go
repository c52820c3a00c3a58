// Package fetcher retrieves the current rendered text of documentation pages.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/YogeshRao005/capillary-chatbot/internal/metrics"
	"github.com/YogeshRao005/capillary-chatbot/internal/textutil"
)

// Config holds fetcher settings.
type Config struct {
	Timeout   time.Duration // per-fetch bound, default 10s
	MaxBodyKB int           // response body read limit, default 1024
	UserAgent string
	Logger    *zap.Logger
}

// Fetcher retrieves and cleans live page content. Content unavailability is
// an expected condition: every failure path yields an empty string, never an
// error.
type Fetcher struct {
	client    *http.Client
	maxBody   int64
	userAgent string
	logger    *zap.Logger
}

// New creates a content fetcher.
func New(cfg Config) *Fetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxKB := cfg.MaxBodyKB
	if maxKB <= 0 {
		maxKB = 1024
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "capillary-chatbot/1.0"
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		maxBody:   int64(maxKB) * 1024,
		userAgent: ua,
		logger:    logger,
	}
}

// Fetch retrieves url, isolates the primary content region, and returns the
// cleaned text. Any network, status, or parse failure returns "".
func (f *Fetcher) Fetch(ctx context.Context, url string) string {
	start := time.Now()

	text, err := f.fetch(ctx, url)

	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	switch {
	case err != nil:
		metrics.FetchTotal.WithLabelValues("error").Inc()
		f.logger.Warn("content fetch failed",
			zap.String("url", url),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return ""
	case text == "":
		metrics.FetchTotal.WithLabelValues("empty").Inc()
	default:
		metrics.FetchTotal.WithLabelValues("ok").Inc()
	}
	return text
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	region := findContentRegion(doc)
	if region == nil {
		region = doc
	}
	return textutil.Clean(extractText(region)), nil
}

// skippedElements are structural regions removed before text extraction.
var skippedElements = map[string]struct{}{
	"script": {},
	"style":  {},
	"nav":    {},
	"footer": {},
}

var contentClassPattern = regexp.MustCompile(`content|body`)

// findContentRegion locates the primary content node in priority order:
// <main>, else <article>, else the first <div> whose class matches a loose
// content-or-body pattern, else <body>.
func findContentRegion(doc *html.Node) *html.Node {
	if n := findElement(doc, "main"); n != nil {
		return n
	}
	if n := findElement(doc, "article"); n != nil {
		return n
	}
	if n := findContentDiv(doc); n != nil {
		return n
	}
	return findElement(doc, "body")
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

func findContentDiv(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "div" {
		for _, attr := range n.Attr {
			if attr.Key == "class" && contentClassPattern.MatchString(attr.Val) {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findContentDiv(c); found != nil {
			return found
		}
	}
	return nil
}

// extractText collects text nodes under n, skipping non-content elements.
func extractText(n *html.Node) string {
	var sb strings.Builder
	var traverse func(*html.Node)
	traverse = func(node *html.Node) {
		if node.Type == html.ElementNode {
			if _, skip := skippedElements[node.Data]; skip {
				return
			}
		}
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return sb.String()
}
