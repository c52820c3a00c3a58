package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestFetcher() *Fetcher {
	return New(Config{Timeout: 2 * time.Second, Logger: zap.NewNop()})
}

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
}

func TestFetch_PrefersMain(t *testing.T) {
	srv := serve(t, `<html><body>
		<nav>Navigation links</nav>
		<main>Path parameters identify resources.</main>
		<div class="content">sidebar copy</div>
		<footer>All Rights Reserved</footer>
	</body></html>`)
	defer srv.Close()

	got := newTestFetcher().Fetch(context.Background(), srv.URL)
	if !strings.Contains(got, "Path parameters identify resources.") {
		t.Errorf("missing main content: %q", got)
	}
	if strings.Contains(got, "Navigation") || strings.Contains(got, "sidebar") {
		t.Errorf("non-main content leaked: %q", got)
	}
}

func TestFetch_FallsBackToArticle(t *testing.T) {
	srv := serve(t, `<html><body><article>Loyalty API overview</article></body></html>`)
	defer srv.Close()

	got := newTestFetcher().Fetch(context.Background(), srv.URL)
	if got != "Loyalty API overview" {
		t.Errorf("got %q", got)
	}
}

func TestFetch_FallsBackToContentDiv(t *testing.T) {
	srv := serve(t, `<html><body>
		<div class="sidebar">menu</div>
		<div class="doc-content">request parameters</div>
	</body></html>`)
	defer srv.Close()

	got := newTestFetcher().Fetch(context.Background(), srv.URL)
	if got != "request parameters" {
		t.Errorf("got %q", got)
	}
}

func TestFetch_FallsBackToBody(t *testing.T) {
	srv := serve(t, `<html><body><p>plain page</p></body></html>`)
	defer srv.Close()

	got := newTestFetcher().Fetch(context.Background(), srv.URL)
	if got != "plain page" {
		t.Errorf("got %q", got)
	}
}

func TestFetch_StripsScriptsAndNav(t *testing.T) {
	srv := serve(t, `<html><body><main>
		<script>var x = 1;</script>
		<style>.a{}</style>
		<nav>breadcrumbs</nav>
		visible text
		<footer>footer text</footer>
	</main></body></html>`)
	defer srv.Close()

	got := newTestFetcher().Fetch(context.Background(), srv.URL)
	if got != "visible text" {
		t.Errorf("got %q", got)
	}
}

func TestFetch_NonOKStatusReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if got := newTestFetcher().Fetch(context.Background(), srv.URL); got != "" {
		t.Errorf("expected empty on 500, got %q", got)
	}
}

func TestFetch_NetworkErrorReturnsEmpty(t *testing.T) {
	if got := newTestFetcher().Fetch(context.Background(), "http://127.0.0.1:1/nope"); got != "" {
		t.Errorf("expected empty on connection error, got %q", got)
	}
}

func TestFetch_TimeoutReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte("<html><body>late</body></html>"))
	}))
	defer srv.Close()

	f := New(Config{Timeout: 50 * time.Millisecond, Logger: zap.NewNop()})
	if got := f.Fetch(context.Background(), srv.URL); got != "" {
		t.Errorf("expected empty on timeout, got %q", got)
	}
}
