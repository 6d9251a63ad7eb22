package game

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
)

// fakeGen is a canned ContentGenerator for service tests.
type fakeGen struct {
	resp *genai.GenerateContentResponse
	err  error

	lastPrompt string
}

func (f *fakeGen) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	if len(parts) > 0 {
		if txt, ok := parts[0].(genai.Text); ok {
			f.lastPrompt = string(txt)
		}
	}
	return f.resp, f.err
}

func textResponse(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(s)}}},
		},
	}
}

// pollCommentary spins until the async result lands.
func pollCommentary(t *testing.T, c *Commentary) CommentaryResult {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		if r, ok := c.Poll(); ok {
			return r
		}
		select {
		case <-deadline:
			t.Fatal("commentary result never arrived")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestCommentaryDeliversModelText(t *testing.T) {
	gen := &fakeGen{resp: textResponse("The entry hides operating expense as a capital asset.")}
	c := NewCommentary(gen, nil)

	id := c.Analyze("Q3 Memo", "capitalize $771M of line costs", "is this legal?", "matter-of-fact")
	if c.Pending() != 1 {
		t.Errorf("pending = %d after analyze", c.Pending())
	}
	r := pollCommentary(t, c)
	if r.RequestID != id {
		t.Errorf("request id = %d, want %d", r.RequestID, id)
	}
	if r.Text != "The entry hides operating expense as a capital asset." {
		t.Errorf("text = %q", r.Text)
	}
	if c.Pending() != 0 {
		t.Errorf("pending = %d after poll", c.Pending())
	}
}

func TestCommentaryFallsBackOnError(t *testing.T) {
	c := NewCommentary(&fakeGen{err: errors.New("quota exceeded")}, nil)
	c.Analyze("Memo", "content", "query", "terse")
	if r := pollCommentary(t, c); r.Text != commentaryFallback {
		t.Errorf("text = %q, want the fallback", r.Text)
	}
}

func TestCommentaryFallsBackWithoutGenerator(t *testing.T) {
	c := NewCommentary(nil, nil)
	c.Analyze("Memo", "content", "query", "terse")
	if r := pollCommentary(t, c); r.Text != commentaryFallback {
		t.Errorf("text = %q, want the fallback", r.Text)
	}
}

func TestCommentaryFallsBackOnEmptyResponse(t *testing.T) {
	cases := []*genai.GenerateContentResponse{
		{},
		{Candidates: []*genai.Candidate{{}}},
		{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
	}
	for i, resp := range cases {
		c := NewCommentary(&fakeGen{resp: resp}, nil)
		c.Analyze("Memo", "content", "query", "terse")
		if r := pollCommentary(t, c); r.Text != commentaryFallback {
			t.Errorf("case %d: text = %q, want the fallback", i, r.Text)
		}
	}
}

func TestCommentaryPromptCarriesDocument(t *testing.T) {
	gen := &fakeGen{resp: textResponse("ok")}
	c := NewCommentary(gen, nil)
	c.Analyze("Prepaid Capacity Memo", "no supporting documentation", "what does this mean?", "aggressive and skeptical")
	pollCommentary(t, c)

	for _, want := range []string{"Prepaid Capacity Memo", "no supporting documentation", "what does this mean?", "aggressive and skeptical"} {
		if !strings.Contains(gen.lastPrompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
