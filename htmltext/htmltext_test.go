package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleLines(t *testing.T) {
	doc := `<html><head><style>p { color: red }</style></head><body>
	<h1>School   Calendar</h1>
	<p>No School: <b>Nov 11</b></p>
	<script>var x = 1;</script>
	<ul><li>Winter Break: Dec 23</li><li>Spring Break</li></ul>
	</body></html>`

	lines := VisibleLines(doc)
	assert.Contains(t, lines, "School Calendar")
	assert.Contains(t, lines, "No School: Nov 11")
	assert.Contains(t, lines, "Winter Break: Dec 23")
	assert.Contains(t, lines, "Spring Break")
	for _, line := range lines {
		assert.NotContains(t, line, "var x")
		assert.NotContains(t, line, "color: red")
	}
}

func TestVisibleLines_InlineStaysTogether(t *testing.T) {
	lines := VisibleLines(`<p>Dismissal <span>at</span> <em>3:05 pm</em></p>`)
	assert.Contains(t, lines, "Dismissal at 3:05 pm")
}
