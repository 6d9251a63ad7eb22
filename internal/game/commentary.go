package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/generative-ai-go/genai"
)

const commentaryFallback = "I'm having trouble analyzing this document right now. Please try again later."

const commentaryTimeout = 20 * time.Second

// ContentGenerator is the slice of the generative model the commentary
// service calls. *genai.GenerativeModel satisfies it; tests substitute a fake.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// CommentaryResult is one finished analysis, delivered back to the sim loop.
type CommentaryResult struct {
	RequestID int
	Text      string
}

// Commentary wraps the generative model behind an async request/poll surface.
// Requests run on their own goroutine; the sim loop stays single-threaded by
// draining Poll once per tick. A nil generator degrades to the fallback text,
// so the game runs without an API key.
type Commentary struct {
	gen     ContentGenerator
	log     *slog.Logger
	results chan CommentaryResult
	nextID  int
	pending int
}

func NewCommentary(gen ContentGenerator, log *slog.Logger) *Commentary {
	if log == nil {
		log = slog.Default()
	}
	return &Commentary{
		gen:     gen,
		log:     log,
		results: make(chan CommentaryResult, 8),
	}
}

// Analyze starts one analysis request and returns its id. The result arrives
// through Poll on a later tick. persona shifts the assistant's tone with the
// selected difficulty.
func (c *Commentary) Analyze(docTitle, content, userQuery, persona string) int {
	c.nextID++
	id := c.nextID
	c.pending++
	go func() {
		text := c.generate(docTitle, content, userQuery, persona)
		c.results <- CommentaryResult{RequestID: id, Text: text}
	}()
	return id
}

// Poll returns one finished result if any is ready. Non-blocking.
func (c *Commentary) Poll() (CommentaryResult, bool) {
	select {
	case r := <-c.results:
		c.pending--
		return r, true
	default:
		return CommentaryResult{}, false
	}
}

// Pending reports the number of in-flight requests.
func (c *Commentary) Pending() int { return c.pending }

// generate runs the blocking model call. Every failure path collapses to the
// fixed fallback string; the player never sees a raw error.
func (c *Commentary) generate(docTitle, content, userQuery, persona string) string {
	if c.gen == nil {
		return commentaryFallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), commentaryTimeout)
	defer cancel()

	prompt := fmt.Sprintf(`You are a forensic accounting expert reviewing an internal WorldCom document.
Your demeanor: %s.
You are analyzing a document titled %q with the following content: %q.
The user asks: %q.
Explain the accounting fraud implications in simple terms, focusing on how this helped hide WorldCom's actual financial state.`,
		persona, docTitle, content, userQuery)

	resp, err := c.gen.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.log.Warn("commentary request failed", "doc", docTitle, "err", err)
		return commentaryFallback
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		c.log.Warn("commentary response empty", "doc", docTitle)
		return commentaryFallback
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok || len(text) == 0 {
		return commentaryFallback
	}
	return string(text)
}
