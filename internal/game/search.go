package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// SearchDoc is one searchable in-game document.
type SearchDoc struct {
	ID      string
	Title   string
	Content string
}

// SearchResult carries the ids matching one query. IDs is tri-state: nil
// means "no filter" (the search failed or was cleared), a non-nil empty slice
// means the filter is active and nothing matched. Consumers must preserve
// that distinction.
type SearchResult struct {
	RequestID int
	IDs       []string
}

// Active reports whether the result represents a live filter.
func (r SearchResult) Active() bool { return r.IDs != nil }

// Search answers free-text queries over document sets via the generative
// model. Same async surface as Commentary: fire, then drain Poll on the sim
// tick. Failures come back as a nil id list so a broken service clears the
// filter instead of showing a stuck empty one.
type Search struct {
	gen     ContentGenerator
	log     *slog.Logger
	results chan SearchResult
	nextID  int
}

func NewSearch(gen ContentGenerator, log *slog.Logger) *Search {
	if log == nil {
		log = slog.Default()
	}
	return &Search{
		gen:     gen,
		log:     log,
		results: make(chan SearchResult, 8),
	}
}

// Query starts one search request over docs and returns its id.
func (s *Search) Query(query string, docs []SearchDoc) int {
	s.nextID++
	id := s.nextID
	go func() {
		s.results <- SearchResult{RequestID: id, IDs: s.run(query, docs)}
	}()
	return id
}

// Poll returns one finished result if any is ready. Non-blocking.
func (s *Search) Poll() (SearchResult, bool) {
	select {
	case r := <-s.results:
		return r, true
	default:
		return SearchResult{}, false
	}
}

// run performs the blocking model call and normalizes the answer to the
// tri-state contract.
func (s *Search) run(query string, docs []SearchDoc) []string {
	if s.gen == nil || strings.TrimSpace(query) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), commentaryTimeout)
	defer cancel()

	var b strings.Builder
	fmt.Fprintf(&b, "You are a search engine over forensic accounting documents. The user query is: %q.\n", query)
	b.WriteString("Documents:\n")
	for _, d := range docs {
		fmt.Fprintf(&b, "- id=%s title=%q content=%q\n", d.ID, d.Title, d.Content)
	}
	b.WriteString("Reply with the ids of the documents relevant to the query, comma separated, in order of relevance. Reply with exactly NONE if no document is relevant.")

	resp, err := s.gen.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		s.log.Warn("search request failed", "query", query, "err", err)
		return nil
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		s.log.Warn("search response empty", "query", query)
		return nil
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil
	}

	answer := strings.TrimSpace(string(text))
	if strings.EqualFold(answer, "NONE") {
		return []string{}
	}

	known := make(map[string]bool, len(docs))
	for _, d := range docs {
		known[d.ID] = true
	}
	// Split on separators only: ids may contain spaces.
	ids := []string{}
	for _, tok := range strings.FieldsFunc(answer, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		tok = strings.TrimSpace(strings.Trim(strings.TrimSpace(tok), ".\"'"))
		if known[tok] {
			ids = append(ids, tok)
		}
	}
	return ids
}
