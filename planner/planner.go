package planner

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"afterschool-planner/bellsched"
	"afterschool-planner/config"
	"afterschool-planner/crawler"
	"afterschool-planner/noschool"
	"afterschool-planner/scheduler"
)

// defaultDismissal is assumed when no bell-schedule page yields a time.
const defaultDismissal = "3:00 pm"

// Result records how one school fared, for the run summary.
type Result struct {
	School          string
	Weekday         string
	BellURL         string
	CalURL          string
	FeedURL         string
	District        string
	DistrictFeedURL string
	Dismissal       string
	Sessions        int
	NoClassDates    []time.Time
	Err             error
}

// Planner ties the crawl, extraction, and scheduling stages together.
type Planner struct {
	cfg        *config.Config
	crawler    *crawler.Crawler
	fetcher    *crawler.Fetcher
	extractor  *noschool.Extractor
	bellPicker bellsched.DismissalPicker
	log        *zap.SugaredLogger
}

// New builds a Planner. bellPicker may be nil.
func New(cfg *config.Config, cr *crawler.Crawler, fetcher *crawler.Fetcher, extractor *noschool.Extractor, bellPicker bellsched.DismissalPicker, log *zap.SugaredLogger) *Planner {
	return &Planner{
		cfg:        cfg,
		crawler:    cr,
		fetcher:    fetcher,
		extractor:  extractor,
		bellPicker: bellPicker,
		log:        log,
	}
}

// Run processes the roster sequentially and returns all planned
// sessions plus one Result per school. Schools whose crawl or parsing
// fails still schedule on fallback values; only roster data the
// scheduler rejects (bad weekday, unusable dismissal) marks a school
// failed, and never aborts the batch.
func (p *Planner) Run(ctx context.Context, schools []School) ([]scheduler.Session, []Result, error) {
	windowStart, windowEnd, err := p.cfg.WindowDates()
	if err != nil {
		return nil, nil, err
	}
	params, err := p.cfg.Params()
	if err != nil {
		return nil, nil, err
	}

	var sessions []scheduler.Session
	results := make([]Result, 0, len(schools))
	for i, s := range schools {
		p.log.Infow("planning school", "school", s.Name, "progress", i+1, "total", len(schools))
		res := p.planSchool(ctx, s, windowStart, windowEnd, params)
		sessions = append(sessions, res.sessions...)
		results = append(results, res.Result)
	}
	return sessions, results, nil
}

type schoolOutcome struct {
	Result
	sessions []scheduler.Session
}

func (p *Planner) planSchool(ctx context.Context, s School, windowStart, windowEnd time.Time, params scheduler.Params) schoolOutcome {
	bellURL := s.BellURL
	calURL := s.CalURL
	feedURL := ""

	// A calendar override pointing at an .ics file is really a feed.
	if calURL != "" && isFeedOverride(calURL) {
		feedURL = noschool.NormalizeFeedURL(calURL)
		calURL = ""
	}

	if bellURL == "" || calURL == "" {
		crawled := p.crawler.Crawl(ctx, s.HomepageURL)
		if bellURL == "" {
			bellURL = crawled.BellURL
		}
		if calURL == "" {
			calURL = crawled.CalURL
		}
		if feedURL == "" {
			feedURL = crawled.FeedURL
		}
	}

	dismissal := ""
	if bellURL != "" {
		html := p.fetcher.Fetch(bellURL)
		candidates := bellsched.ScanCandidates(html)
		dismissal = bellsched.PickDismissal(ctx, candidates, s.Weekday, p.bellPicker)
	}
	if dismissal == "" {
		p.log.Debugw("no dismissal found, using default", "school", s.Name, "bell_url", bellURL)
		dismissal = defaultDismissal
	}

	districtFeed := s.DistrictFeedURL
	if districtFeed == "" && s.District != "" {
		districtFeed = p.cfg.Districts[s.District]
	}

	noSchool := p.extractor.Dates(ctx, feedURL, districtFeed, calURL, windowStart, windowEnd)

	res := Result{
		School:          s.Name,
		Weekday:         s.Weekday,
		BellURL:         bellURL,
		CalURL:          calURL,
		FeedURL:         feedURL,
		District:        s.District,
		DistrictFeedURL: districtFeed,
		Dismissal:       dismissal,
		NoClassDates:    noSchool.Within(windowStart, windowEnd),
	}

	planned, err := scheduler.ComputeSessions(s.Name, s.Weekday, dismissal, windowStart, windowEnd, params, noSchool)
	if err != nil {
		p.log.Warnw("school skipped", "school", s.Name, "err", err)
		res.Err = err
		return schoolOutcome{Result: res}
	}

	res.Sessions = len(planned)
	return schoolOutcome{Result: res, sessions: planned}
}

// NoClassBySchool reshapes results for the summary report.
func NoClassBySchool(results []Result) map[string][]time.Time {
	out := make(map[string][]time.Time, len(results))
	for _, r := range results {
		if len(r.NoClassDates) > 0 {
			out[r.School] = r.NoClassDates
		}
	}
	return out
}

func isFeedOverride(u string) bool {
	return strings.Contains(strings.ToLower(u), ".ics")
}
