package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGemini_MissingKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "")
	assert.Error(t, err)
}

func TestSliceBetween(t *testing.T) {
	raw := "Sure! Here is the JSON:\n{\"bell_url\": null}\nLet me know."
	assert.Equal(t, `{"bell_url": null}`, sliceBetween(raw, '{', '}'))

	raw = "```json\n[\"2024-09-02\"]\n```"
	assert.Equal(t, `["2024-09-02"]`, sliceBetween(raw, '[', ']'))

	// No delimiters: returned untouched so unmarshalling fails upstream.
	assert.Equal(t, "no json here", sliceBetween("no json here", '{', '}'))
}

func TestDeref(t *testing.T) {
	s := "x"
	assert.Equal(t, "x", deref(&s))
	assert.Empty(t, deref(nil))
}
