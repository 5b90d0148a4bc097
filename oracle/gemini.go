// Package oracle backs the extraction stages with a Gemini model. Every
// method treats a missing credential, transport failure, or malformed
// response as "no answer"; the callers all have deterministic fallbacks.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"afterschool-planner/bellsched"
	"afterschool-planner/crawler"
	"afterschool-planner/noschool"
)

const defaultModel = "gemini-2.0-flash"

// Gemini implements crawler.LinkPicker, bellsched.DismissalPicker, and
// noschool.DateClassifier over the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds the oracle. An empty API key is an error so the
// caller can fall back to heuristics-only operation.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("missing API key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

type linkAnswer struct {
	BellURL *string `json:"bell_url"`
	CalURL  *string `json:"cal_url"`
	ICSURL  *string `json:"ics_url"`
}

// PickLinks asks the model to choose the best bell-schedule, academic
// calendar, and feed URLs from an anchor sample.
func (g *Gemini) PickLinks(ctx context.Context, baseURL string, anchors []crawler.Anchor) (crawler.LinkChoice, error) {
	var b strings.Builder
	b.WriteString("Pick the single best Bell Schedule link, Academic Calendar link, and any .ics link. ")
	b.WriteString(`Return strict JSON {"bell_url":str|null,"cal_url":str|null,"ics_url":str|null}.` + "\n")
	fmt.Fprintf(&b, "BASE: %s\n", baseURL)
	for _, a := range anchors {
		fmt.Fprintf(&b, "- %s => %s\n", a.URL, a.Text)
	}

	raw, err := g.generate(ctx, b.String())
	if err != nil {
		return crawler.LinkChoice{}, err
	}

	var answer linkAnswer
	if err := json.Unmarshal([]byte(sliceBetween(raw, '{', '}')), &answer); err != nil {
		return crawler.LinkChoice{}, fmt.Errorf("malformed link answer: %w", err)
	}
	return crawler.LinkChoice{
		BellURL: deref(answer.BellURL),
		CalURL:  deref(answer.CalURL),
		FeedURL: deref(answer.ICSURL),
	}, nil
}

// PickDismissal asks the model for the normal dismissal time on the
// given weekday, as a free-text clock string.
func (g *Gemini) PickDismissal(ctx context.Context, weekday string, candidates []bellsched.Candidate) (string, error) {
	var b strings.Builder
	b.WriteString("Given bell schedule lines and times, pick the NORMAL dismissal time for the specified weekday. ")
	b.WriteString("Prefer Regular Day over Minimum/Early Release unless text says the weekday is a minimum day. ")
	b.WriteString("Return only the time string (e.g., '3:05 pm').\n")
	fmt.Fprintf(&b, "Weekday: %s\n", weekday)
	for _, c := range candidates {
		fmt.Fprintf(&b, "- %s => %s\n", c.Line, c.Time)
	}
	return g.generate(ctx, b.String())
}

// ClassifyNoSchool asks the model which candidate lines mean no
// after-school class, expecting a JSON array of ISO dates.
func (g *Gemini) ClassifyNoSchool(ctx context.Context, candidates []noschool.Candidate) ([]time.Time, error) {
	var b strings.Builder
	b.WriteString("From these school calendar lines, pick entries that mean there is NO after-school class ")
	b.WriteString("(e.g., No School, Holiday, Minimum Day with no after-school). ")
	b.WriteString("Return JSON array of ISO dates (YYYY-MM-DD). Lines:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "- %s | %s\n", c.Line, c.Token)
	}

	raw, err := g.generate(ctx, b.String())
	if err != nil {
		return nil, err
	}

	var isoDates []string
	if err := json.Unmarshal([]byte(sliceBetween(raw, '[', ']')), &isoDates); err != nil {
		return nil, fmt.Errorf("malformed date answer: %w", err)
	}
	var dates []time.Time
	for _, s := range isoDates {
		d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// sliceBetween trims model chatter around the JSON payload. Returns the
// raw string untouched when the delimiters are absent, so unmarshalling
// produces the error.
func sliceBetween(raw string, open, close byte) string {
	i := strings.IndexByte(raw, open)
	j := strings.LastIndexByte(raw, close)
	if i == -1 || j == -1 || j < i {
		return raw
	}
	return raw[i : j+1]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
