package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Anchor pairs an absolute URL with the normalized visible label it was
// linked under.
type Anchor struct {
	URL  string
	Text string
}

const maxAnchorText = 240

// ExtractAnchors flattens every hyperlink-bearing element of a page into
// Anchor pairs: <a href> plus <link rel="alternate"> feed declarations.
// URLs are resolved against the page, fragments stripped, and anchors
// de-duplicated by URL with first-seen order preserved.
func ExtractAnchors(pageURL, rawHTML string) []Anchor {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var anchors []Anchor
	add := func(href, text string) {
		u, err := base.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return
		}
		u.Fragment = ""
		abs := u.String()
		if seen[abs] {
			return
		}
		seen[abs] = true
		anchors = append(anchors, Anchor{URL: abs, Text: normalizeLabel(text)})
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		add(href, s.Text())
	})
	doc.Find("link[rel=alternate][href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		title, _ := s.Attr("title")
		typ, _ := s.Attr("type")
		add(href, strings.TrimSpace(title+" "+typ))
	})

	return anchors
}

func normalizeLabel(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > maxAnchorText {
		text = text[:maxAnchorText]
	}
	return strings.ToLower(text)
}

func sameHost(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return ua.Hostname() != "" && strings.EqualFold(ua.Hostname(), ub.Hostname())
}
