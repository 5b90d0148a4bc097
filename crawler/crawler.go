// Package crawler locates a school's bell-schedule page, academic
// calendar page, and any direct calendar-feed link starting from the
// school homepage.
package crawler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// LinkChoice is one resolved set of category URLs. Empty string means
// unresolved for that category.
type LinkChoice struct {
	BellURL string
	CalURL  string
	FeedURL string
}

// LinkPicker chooses the best URL per category from an anchor sample.
// Implementations may fail or leave fields empty; the crawler fills the
// gaps from its own heuristics.
type LinkPicker interface {
	PickLinks(ctx context.Context, baseURL string, anchors []Anchor) (LinkChoice, error)
}

// CrawlResult is the immutable outcome of one homepage crawl.
type CrawlResult struct {
	BellURL string
	CalURL  string
	FeedURL string
	Debug   map[string]string
}

// Options bounds the crawl.
type Options struct {
	// MaxAnchors caps the anchor prefix sent to the link picker.
	MaxAnchors int
	// MaxChildPages caps the one-hop expansion to same-domain pages.
	MaxChildPages int
	// Delay is an artificial pause after each crawl, a courtesy toward
	// sites when many schools are processed back to back.
	Delay time.Duration
}

// Crawler discovers bell/calendar/feed URLs for school homepages.
type Crawler struct {
	fetcher *Fetcher
	picker  LinkPicker
	opts    Options
	log     *zap.SugaredLogger
}

// New builds a Crawler. picker may be nil, which leaves resolution
// entirely to the keyword heuristics.
func New(fetcher *Fetcher, picker LinkPicker, opts Options, log *zap.SugaredLogger) *Crawler {
	if opts.MaxAnchors <= 0 {
		opts.MaxAnchors = 80
	}
	if opts.MaxChildPages <= 0 {
		opts.MaxChildPages = 10
	}
	return &Crawler{fetcher: fetcher, picker: picker, opts: opts, log: log}
}

// Crawl fetches the homepage and a bounded set of same-domain child
// pages, then resolves the best bell, calendar, and feed URLs. Network
// and picker failures degrade to unresolved fields; an unreachable
// homepage yields an all-empty result with a debug reason.
func (c *Crawler) Crawl(ctx context.Context, homepage string) CrawlResult {
	defer func() {
		if c.opts.Delay > 0 {
			time.Sleep(c.opts.Delay)
		}
	}()

	html := c.fetcher.Fetch(homepage)
	if html == "" {
		c.log.Warnw("homepage fetch failed", "url", homepage)
		return CrawlResult{Debug: map[string]string{"reason": "fetch failed"}}
	}

	anchors := ExtractAnchors(homepage, html)
	anchors = c.expand(homepage, anchors)

	bellTop := TopCandidates(anchors, ScoreBell, 5)
	calTop := TopCandidates(anchors, ScoreCalendar, 5)

	heuristic := LinkChoice{FeedURL: FindFeedLink(anchors)}
	if len(bellTop) > 0 {
		heuristic.BellURL = bellTop[0].URL
	}
	if len(calTop) > 0 {
		heuristic.CalURL = calTop[0].URL
	}

	choice := heuristic
	if c.picker != nil {
		sample := anchors
		if len(sample) > c.opts.MaxAnchors {
			sample = sample[:c.opts.MaxAnchors]
		}
		picked, err := c.picker.PickLinks(ctx, homepage, sample)
		if err != nil {
			c.log.Debugw("link picker failed, using heuristics", "url", homepage, "err", err)
		} else {
			choice = picked
			// Heuristics backfill whatever the picker left unresolved.
			if choice.BellURL == "" {
				choice.BellURL = heuristic.BellURL
			}
			if choice.CalURL == "" {
				choice.CalURL = heuristic.CalURL
			}
			if choice.FeedURL == "" {
				choice.FeedURL = heuristic.FeedURL
			}
		}
	}

	return CrawlResult{
		BellURL: choice.BellURL,
		CalURL:  choice.CalURL,
		FeedURL: choice.FeedURL,
		Debug: map[string]string{
			"anchors":  fmt.Sprintf("%d", len(anchors)),
			"bell_top": formatScored(bellTop),
			"cal_top":  formatScored(calTop),
		},
	}
}

// skipSuffixes are child-page URLs that can't contain anchors worth
// following.
var skipSuffixes = []string{".pdf", ".jpg", ".jpeg", ".png", ".gif", ".ics", ".ical", ".doc", ".docx", ".zip"}

// expand fetches up to MaxChildPages same-domain anchors one hop below
// the homepage and merges their anchors in. Bell-schedule and calendar
// pages are often nested under a "Parents" or "About" section rather
// than linked from the homepage itself.
func (c *Crawler) expand(homepage string, anchors []Anchor) []Anchor {
	seen := make(map[string]bool, len(anchors))
	for _, a := range anchors {
		seen[a.URL] = true
	}

	merged := anchors
	fetched := 0
	for _, a := range anchors {
		if fetched >= c.opts.MaxChildPages {
			break
		}
		if a.URL == homepage || !sameHost(a.URL, homepage) || hasSkippedSuffix(a.URL) {
			continue
		}
		fetched++
		childHTML := c.fetcher.Fetch(a.URL)
		if childHTML == "" {
			continue
		}
		for _, child := range ExtractAnchors(a.URL, childHTML) {
			if seen[child.URL] {
				continue
			}
			seen[child.URL] = true
			merged = append(merged, child)
		}
	}
	return merged
}

func hasSkippedSuffix(url string) bool {
	lower := strings.ToLower(url)
	for _, suffix := range skipSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func formatScored(scored []Scored) string {
	parts := make([]string, 0, len(scored))
	for _, s := range scored {
		parts = append(parts, fmt.Sprintf("%s (%d)", s.URL, s.Score))
	}
	return strings.Join(parts, "; ")
}
