package crawler

import (
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	userAgent = "Mozilla/5.0 (compatible; AfterSchoolPlanner/0.2)"
	// Responses shorter than this are treated as a JavaScript-only shell
	// and retried through the renderer when one is available.
	minHTMLLen = 500

	fetchTimeout = 20 * time.Second
	renderWait   = 1500 * time.Millisecond
)

// Renderer executes client-side code for a bounded wait and returns the
// resulting HTML. Optional; absence degrades to static fetching.
type Renderer interface {
	Render(url string, wait time.Duration) (string, error)
}

// Fetcher fetches page text with a fixed timeout. Failures are
// represented as empty content, never as errors; nothing is retried.
type Fetcher struct {
	client   *http.Client
	renderer Renderer
	log      *zap.SugaredLogger
}

// NewFetcher builds a Fetcher. renderer may be nil.
func NewFetcher(renderer Renderer, log *zap.SugaredLogger) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: fetchTimeout},
		renderer: renderer,
		log:      log,
	}
}

// FetchStatic GETs the URL and returns the body, or "" on any failure.
func (f *Fetcher) FetchStatic(url string) string {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Debugw("fetch failed", "url", url, "err", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.log.Debugw("fetch failed", "url", url, "status", resp.StatusCode)
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}
	return string(body)
}

// Fetch GETs the URL, falling back to the renderer when the static body
// is missing or implausibly short. The longer result wins.
func (f *Fetcher) Fetch(url string) string {
	body := f.FetchStatic(url)
	if len(body) >= minHTMLLen || f.renderer == nil {
		return body
	}

	rendered, err := f.renderer.Render(url, renderWait)
	if err != nil {
		f.log.Debugw("render fallback failed", "url", url, "err", err)
		return body
	}
	if len(rendered) > len(body) {
		return rendered
	}
	return body
}
