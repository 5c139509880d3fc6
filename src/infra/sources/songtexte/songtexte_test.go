package songtexte

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/refrainlabs/refrain/src/features/lookup"
	"github.com/refrainlabs/refrain/src/infra/fetch"
)

const searchPage = `<html><body>
<div class="songResultTable">
  <div>
    <div>
      <span class="song"><a href="/songtext/perfect-circle/imagine-1a2b3c.html">Imagine</a></span>
      <span class="artist"><span>Song von</span><span>A Perfect Circle</span></span>
    </div>
    <div>
      <span class="song"><a href="/songtext/john-lennon/imagine-73d96fbd.html">Imagine</a></span>
      <span class="artist"><span>Song von</span><span>John Lennon</span></span>
    </div>
    <div>
      <span class="song"><a href="/artist/nothing.html">Not a song link</a></span>
      <span class="artist"><span>Irrelevant</span></span>
    </div>
  </div>
</div>
</body></html>`

const lyricsPage = `<html><body>
<div id="lyrics">pretend verse alpha

pretend chorus beta
ADNPM.push(adSlot);
</div>
</body></html>`

const fallbackLyricsPage = `<html><body>
<div id="lyrics">   </div>
<div class="songtext">fallback stanza text</div>
</body></html>`

func newTestAdapter(srvURL string) *Adapter {
	f := fetch.New(fetch.Config{Timeout: 2 * time.Second, Retries: 1, Backoff: time.Millisecond})
	return New(true, srvURL, f)
}

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/suche"):
			w.Write([]byte(searchPage))
		case strings.HasPrefix(r.URL.Path, "/songtext/john-lennon/"):
			w.Write([]byte(lyricsPage))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL)
	doc, err := a.Lookup(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.MatchedArtist != "John Lennon" {
		t.Errorf("matched artist = %q, tie-break must prefer title+artist match", doc.MatchedArtist)
	}
	if !strings.Contains(doc.RawLyrics, "pretend verse alpha") {
		t.Errorf("lyrics missing expected text: %q", doc.RawLyrics)
	}
	if strings.Contains(doc.RawLyrics, "ADNPM") {
		t.Errorf("ad script remnants not stripped: %q", doc.RawLyrics)
	}
	if !strings.Contains(doc.SourceURL, "/songtext/john-lennon/") {
		t.Errorf("sourceURL = %q", doc.SourceURL)
	}
}

func TestLookupNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Keine Treffer</p></body></html>"))
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL)
	_, err := a.Lookup(context.Background(), "Imagine", "John Lennon")
	if !errors.Is(err, lookup.ErrNoCandidates) {
		t.Errorf("err = %v, want ErrNoCandidates", err)
	}
}

func TestLookupExtractionFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/suche") {
			w.Write([]byte(searchPage))
			return
		}
		w.Write([]byte(fallbackLyricsPage))
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL)
	doc, err := a.Lookup(context.Background(), "Imagine", "John Lennon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.RawLyrics != "fallback stanza text" {
		t.Errorf("lyrics = %q, want the .songtext fallback", doc.RawLyrics)
	}
}

func TestLookupEmptyExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/suche") {
			w.Write([]byte(searchPage))
			return
		}
		w.Write([]byte("<html><body><div class='other'>nothing here</div></body></html>"))
	}))
	defer srv.Close()

	a := newTestAdapter(srv.URL)
	_, err := a.Lookup(context.Background(), "Imagine", "John Lennon")
	if !errors.Is(err, lookup.ErrEmptyExtraction) {
		t.Errorf("err = %v, want ErrEmptyExtraction", err)
	}
}

func TestParseCandidatesSkipsNonSongLinks(t *testing.T) {
	a := newTestAdapter("https://example.com")
	candidates := a.parseCandidates(searchPage)
	if len(candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(candidates))
	}
	if !candidates[0].Featured || candidates[1].Featured {
		t.Error("only the first candidate is featured")
	}
	if candidates[1].Artist != "John Lennon" {
		t.Errorf("artist = %q", candidates[1].Artist)
	}
}
