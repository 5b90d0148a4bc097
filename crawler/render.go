package crawler

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodRenderer loads pages in headless Chromium so JavaScript-only school
// sites still yield anchors. Each Render call launches a fresh browser;
// crawls are sequential and infrequent enough that reuse isn't worth the
// shared state.
type RodRenderer struct {
	timeout time.Duration
}

// NewRodRenderer builds a renderer with the standard fetch timeout.
func NewRodRenderer() *RodRenderer {
	return &RodRenderer{timeout: fetchTimeout}
}

// Render navigates to the URL, waits out the load plus a bounded settle
// period, and returns the rendered HTML.
func (r *RodRenderer) Render(url string, wait time.Duration) (string, error) {
	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("launching headless browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("connecting to headless browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("opening page: %w", err)
	}
	defer page.Close()

	page = page.Timeout(r.timeout)
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for page load: %w", err)
	}
	time.Sleep(wait)

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading rendered HTML: %w", err)
	}
	return html, nil
}
