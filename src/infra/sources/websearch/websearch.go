// Package websearch recovers lyrics through a general web search
// engine's HTML results page, filtered to known lyrics sites. It is the
// last-resort source.
package websearch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/refrainlabs/refrain/src/features/lookup"
	"github.com/refrainlabs/refrain/src/infra/fetch"
	"github.com/refrainlabs/refrain/src/song"
)

const DefaultBaseURL = "https://html.duckduckgo.com"

// lyricsHosts are the result domains worth visiting; anything else on a
// results page is noise.
var lyricsHosts = []string{
	"songtexte.com",
	"genius.com",
	"azlyrics.com",
	"lyrics.com",
	"musixmatch.com",
}

// extractionStrategies covers the page layouts of the hosts above, in
// rough order of likelihood.
var extractionStrategies = []struct {
	name     string
	selector string
}{
	{"lyrics-id", "#lyrics"},
	{"lyrics-class", ".lyrics"},
	{"songtext", ".songtext"},
	{"data-container", `div[data-lyrics-container="true"]`},
	{"lyric-body", ".lyric-body"},
}

// Adapter implements lookup.Source over a search engine results page.
type Adapter struct {
	enabled bool
	baseURL string
	hosts   []string
	fetcher *fetch.Fetcher
}

// New creates the adapter. baseURL may be overridden for tests.
func New(enabled bool, baseURL string, fetcher *fetch.Fetcher) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Adapter{
		enabled: enabled,
		baseURL: strings.TrimRight(baseURL, "/"),
		hosts:   lyricsHosts,
		fetcher: fetcher,
	}
}

func (a *Adapter) Name() song.SourceName { return song.SourceWebSearch }
func (a *Adapter) IsEnabled() bool       { return a.enabled }

func (a *Adapter) Lookup(ctx context.Context, title, artist string) (doc *song.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("websearch: recovered: %v: %w", r, lookup.ErrEmptyExtraction)
		}
	}()

	var candidates []song.Candidate
	var lastErr error
	for _, query := range song.QueryVariants(title, artist) {
		body, ferr := a.fetcher.Fetch(ctx, a.searchURL(query))
		if ferr != nil {
			lastErr = ferr
			continue
		}
		if candidates = a.parseCandidates(body); len(candidates) > 0 {
			break
		}
	}
	if len(candidates) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, lookup.ErrNoCandidates
	}

	best, _ := song.PickCandidate(candidates, title, artist)
	page, ferr := a.fetcher.Fetch(ctx, best.URL)
	if ferr != nil {
		return nil, ferr
	}

	lyrics := a.extract(page)
	if lyrics == "" {
		return nil, lookup.ErrEmptyExtraction
	}

	return &song.Document{
		RawLyrics:     lyrics,
		SourceURL:     best.URL,
		SourceName:    song.SourceWebSearch,
		MatchedTitle:  best.Title,
		MatchedArtist: artist,
	}, nil
}

func (a *Adapter) searchURL(query string) string {
	return a.baseURL + "/html/?q=" + url.QueryEscape(query+" lyrics")
}

// parseCandidates walks result links, unwraps the engine's redirect
// parameter and keeps only known lyrics hosts. The engine's own ranking
// marks the first kept link as featured.
func (a *Adapter) parseCandidates(body string) []song.Candidate {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var candidates []song.Candidate
	doc.Find("a.result__a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		target := unwrapRedirect(href)
		if !matchesHost(target, a.hosts) {
			return
		}
		candidates = append(candidates, song.Candidate{
			URL:      target,
			Title:    strings.TrimSpace(link.Text()),
			Featured: len(candidates) == 0,
		})
	})
	return candidates
}

// unwrapRedirect resolves the uddg indirection DuckDuckGo wraps result
// links in.
func unwrapRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if wrapped := u.Query().Get("uddg"); wrapped != "" {
		return wrapped
	}
	return href
}

func matchesHost(target string, hosts []string) bool {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.TrimPrefix(u.Host, "www.")
	for _, known := range hosts {
		if host == known || strings.HasSuffix(host, "."+known) {
			return true
		}
	}
	return false
}

func (a *Adapter) extract(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	for _, strategy := range extractionStrategies {
		if text := strings.TrimSpace(doc.Find(strategy.selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
