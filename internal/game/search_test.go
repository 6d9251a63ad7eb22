package game

import (
	"errors"
	"testing"
	"time"
)

var searchCorpus = []SearchDoc{
	{ID: "timeline:1999", Title: "1999", Content: "stock peaks at $64"},
	{ID: "figure:Cynthia Cooper", Title: "Cynthia Cooper", Content: "the whistleblower"},
	{ID: "method:CapEx Transfers", Title: "CapEx Transfers", Content: "moving line costs to assets"},
}

func pollSearch(t *testing.T, s *Search) SearchResult {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		if r, ok := s.Poll(); ok {
			return r
		}
		select {
		case <-deadline:
			t.Fatal("search result never arrived")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestSearchReturnsMatchingIDs(t *testing.T) {
	gen := &fakeGen{resp: textResponse("method:CapEx Transfers, timeline:1999")}
	s := NewSearch(gen, nil)

	id := s.Query("how were expenses hidden?", searchCorpus)
	r := pollSearch(t, s)
	if r.RequestID != id {
		t.Errorf("request id = %d, want %d", r.RequestID, id)
	}
	if !r.Active() {
		t.Fatal("result not active")
	}
	// Relevance order preserved; ids may contain spaces.
	if len(r.IDs) != 2 || r.IDs[0] != "method:CapEx Transfers" || r.IDs[1] != "timeline:1999" {
		t.Errorf("ids = %v", r.IDs)
	}
}

func TestSearchNoneIsActiveAndEmpty(t *testing.T) {
	s := NewSearch(&fakeGen{resp: textResponse("NONE")}, nil)
	s.Query("anything about enron?", searchCorpus)
	r := pollSearch(t, s)
	if r.IDs == nil {
		t.Fatal("NONE answer cleared the filter instead of matching nothing")
	}
	if len(r.IDs) != 0 {
		t.Errorf("ids = %v, want empty", r.IDs)
	}
	if !r.Active() {
		t.Error("empty match set should still be an active filter")
	}
}

func TestSearchFailureClearsFilter(t *testing.T) {
	s := NewSearch(&fakeGen{err: errors.New("backend down")}, nil)
	s.Query("query", searchCorpus)
	r := pollSearch(t, s)
	if r.IDs != nil {
		t.Errorf("ids = %v, want nil on failure", r.IDs)
	}
	if r.Active() {
		t.Error("failed search left an active filter")
	}
}

func TestSearchWithoutGeneratorClearsFilter(t *testing.T) {
	s := NewSearch(nil, nil)
	s.Query("query", searchCorpus)
	if r := pollSearch(t, s); r.Active() {
		t.Errorf("ids = %v, want nil without a generator", r.IDs)
	}
}

func TestSearchBlankQueryClearsFilter(t *testing.T) {
	s := NewSearch(&fakeGen{resp: textResponse("timeline:1999")}, nil)
	s.Query("   ", searchCorpus)
	if r := pollSearch(t, s); r.Active() {
		t.Errorf("ids = %v, want nil for a blank query", r.IDs)
	}
}

func TestSearchFiltersUnknownIDs(t *testing.T) {
	s := NewSearch(&fakeGen{resp: textResponse("timeline:1999, bogus:id,\ntimeline:2050")}, nil)
	s.Query("timeline", searchCorpus)
	r := pollSearch(t, s)
	if len(r.IDs) != 1 || r.IDs[0] != "timeline:1999" {
		t.Errorf("ids = %v, want [timeline:1999]", r.IDs)
	}
}

func TestMatchesFilterTriState(t *testing.T) {
	g := &Game{}
	if !g.matchesFilter("anything") {
		t.Error("nil filter should match everything")
	}
	g.searchFilter = []string{}
	if g.matchesFilter("anything") {
		t.Error("empty filter should match nothing")
	}
	g.searchFilter = []string{"timeline:1999"}
	if !g.matchesFilter("timeline:1999") || g.matchesFilter("figure:Cynthia Cooper") {
		t.Error("filter membership broken")
	}
}
