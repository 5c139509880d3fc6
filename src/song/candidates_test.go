package song

import "testing"

func TestPickCandidateBothMatchWins(t *testing.T) {
	cands := []Candidate{
		{URL: "/a", Title: "Imagine", Artist: "A Perfect Circle", Featured: true},
		{URL: "/b", Title: "Imagine (Remastered)", Artist: "John Lennon"},
	}
	got, ok := PickCandidate(cands, "Imagine", "John Lennon")
	if !ok || got.URL != "/b" {
		t.Errorf("got %+v, want /b", got)
	}
}

func TestPickCandidateFeaturedBeatsLaterTitleMatch(t *testing.T) {
	cands := []Candidate{
		{URL: "/x", Title: "Yesterday Once More", Artist: "", Featured: false},
		{URL: "/y", Title: "Yesterday", Artist: "", Featured: true},
	}
	got, _ := PickCandidate(cands, "Yesterday", "The Beatles")
	if got.URL != "/y" {
		t.Errorf("got %s, want featured /y", got.URL)
	}
}

func TestPickCandidateTitleOnly(t *testing.T) {
	cands := []Candidate{
		{URL: "/1", Title: "Completely Unrelated"},
		{URL: "/2", Title: "Imagine"},
	}
	got, _ := PickCandidate(cands, "Imagine", "John Lennon")
	if got.URL != "/2" {
		t.Errorf("got %s, want /2", got.URL)
	}
}

func TestPickCandidateLastResort(t *testing.T) {
	cands := []Candidate{
		{URL: "/first", Title: "Nothing In Common"},
		{URL: "/second", Title: "Also Unrelated"},
	}
	got, _ := PickCandidate(cands, "Imagine", "")
	if got.URL != "/first" {
		t.Errorf("got %s, want first in source order", got.URL)
	}
}

func TestPickCandidateEmpty(t *testing.T) {
	if _, ok := PickCandidate(nil, "Imagine", ""); ok {
		t.Error("expected no candidate from empty list")
	}
}
