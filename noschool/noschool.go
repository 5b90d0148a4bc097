// Package noschool produces the set of calendar dates on which no
// after-school session should be scheduled.
package noschool

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Fetcher retrieves page/feed text; failure is empty content.
type Fetcher interface {
	FetchStatic(url string) string
}

// Extractor resolves no-school dates for schools, caching district feed
// results for the lifetime of one batch run. Not safe for concurrent
// use; school processing is sequential.
type Extractor struct {
	fetcher    Fetcher
	classifier DateClassifier
	cache      map[string]*DateSet
	log        *zap.SugaredLogger
}

// NewExtractor builds an Extractor. classifier may be nil.
func NewExtractor(fetcher Fetcher, classifier DateClassifier, log *zap.SugaredLogger) *Extractor {
	return &Extractor{
		fetcher:    fetcher,
		classifier: classifier,
		cache:      make(map[string]*DateSet),
		log:        log,
	}
}

// Dates resolves the no-school set from three sources in strict
// precedence: the school's own feed, then the district feed, then free
// text from the calendar page. The first source yielding a non-empty
// result wins; tiers are never merged.
func (e *Extractor) Dates(ctx context.Context, feedURL, districtFeedURL, calURL string, windowStart, windowEnd time.Time) *DateSet {
	if feedURL != "" {
		if s := e.feedDates(feedURL); s.Len() > 0 {
			return s
		}
	}

	if districtFeedURL != "" {
		if s := e.districtDates(districtFeedURL); s.Len() > 0 {
			return s
		}
	}

	if calURL != "" {
		html := e.fetcher.FetchStatic(calURL)
		if html != "" {
			candidates := ScanFreeText(html)
			return ClassifyCandidates(ctx, candidates, e.classifier, windowStart, windowEnd)
		}
	}

	return NewDateSet()
}

func (e *Extractor) feedDates(feedURL string) *DateSet {
	feedURL = NormalizeFeedURL(feedURL)
	data := e.fetcher.FetchStatic(feedURL)
	if data == "" {
		return NewDateSet()
	}
	if looksLikeICS(feedURL, data) {
		return ParseICSDates(data)
	}
	return ParseRSSDates(data)
}

// districtDates memoizes feed parsing so schools sharing a district fetch
// it once per run.
func (e *Extractor) districtDates(feedURL string) *DateSet {
	feedURL = NormalizeFeedURL(feedURL)
	if cached, ok := e.cache[feedURL]; ok {
		return cached
	}
	dates := e.feedDates(feedURL)
	e.cache[feedURL] = dates
	e.log.Debugw("district feed parsed", "url", feedURL, "dates", dates.Len())
	return dates
}
