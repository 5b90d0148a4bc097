// Package htmltext flattens HTML into visible text lines so the
// extractors can scan page content the way a reader sees it.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "td": true, "th": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"br": true, "section": true, "article": true, "header": true,
	"footer": true, "ul": true, "ol": true, "table": true, "dt": true,
	"dd": true,
}

var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "head": true,
}

// VisibleLines returns the whitespace-normalized, non-empty text lines of
// an HTML document, with block elements acting as line breaks.
func VisibleLines(rawHTML string) []string {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			b.WriteString("\n")
		}
	}
	walk(root)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
