// Package lyricsapi queries a Genius-style lyrics search API over
// HTTPS with a bearer credential, then scrapes the song page it points
// at. This is the primary source.
package lyricsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/refrainlabs/refrain/src/features/lookup"
	"github.com/refrainlabs/refrain/src/infra/fetch"
	"github.com/refrainlabs/refrain/src/song"
)

const (
	DefaultBaseURL = "https://api.genius.com"
	DefaultSiteURL = "https://genius.com"
)

type searchResponse struct {
	Response struct {
		Hits []struct {
			Type   string `json:"type"`
			Result struct {
				Title       string `json:"title"`
				ArtistNames string `json:"artist_names"`
				Path        string `json:"path"`
				URL         string `json:"url"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

var extractionStrategies = []struct {
	name     string
	selector string
}{
	{"data-container", `div[data-lyrics-container="true"]`},
	{"styled-container", `div[class^="Lyrics__Container"]`},
	{"legacy-lyrics", ".lyrics"},
	{"song-body", ".song_body-lyrics"},
}

// Adapter implements lookup.Source against the lyrics search API.
type Adapter struct {
	enabled bool
	baseURL string
	siteURL string
	fetcher *fetch.Fetcher
}

// New creates the adapter. The fetcher must carry the API credential
// (fetch.WithHeader with the bearer token). baseURL and siteURL may be
// overridden for tests.
func New(enabled bool, baseURL, siteURL string, fetcher *fetch.Fetcher) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}
	return &Adapter{
		enabled: enabled,
		baseURL: strings.TrimRight(baseURL, "/"),
		siteURL: strings.TrimRight(siteURL, "/"),
		fetcher: fetcher,
	}
}

func (a *Adapter) Name() song.SourceName { return song.SourceLyricsAPI }
func (a *Adapter) IsEnabled() bool       { return a.enabled }

func (a *Adapter) Lookup(ctx context.Context, title, artist string) (doc *song.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lyricsapi: recovered: %v: %w", r, lookup.ErrEmptyExtraction)
		}
	}()

	var candidates []song.Candidate
	var sawHits bool
	var lastErr error
	for _, query := range song.QueryVariants(title, artist) {
		body, ferr := a.fetcher.Fetch(ctx, a.baseURL+"/search?q="+url.QueryEscape(query))
		if ferr != nil {
			lastErr = ferr
			continue
		}

		var parsed searchResponse
		if jerr := json.Unmarshal([]byte(body), &parsed); jerr != nil {
			lastErr = fmt.Errorf("decode search response: %w", jerr)
			continue
		}
		if len(parsed.Response.Hits) > 0 {
			sawHits = true
		}
		if candidates = a.collectCandidates(parsed); len(candidates) > 0 {
			break
		}
	}
	if len(candidates) == 0 {
		switch {
		case sawHits:
			return nil, lookup.ErrNoMatch
		case lastErr != nil:
			return nil, lastErr
		default:
			return nil, lookup.ErrNoCandidates
		}
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
		SourceName:    song.SourceLyricsAPI,
		MatchedTitle:  best.Title,
		MatchedArtist: best.Artist,
	}, nil
}

// collectCandidates keeps only song hits; other hit types (articles,
// videos) never carry lyrics.
func (a *Adapter) collectCandidates(parsed searchResponse) []song.Candidate {
	var candidates []song.Candidate
	for _, hit := range parsed.Response.Hits {
		if hit.Type != "" && hit.Type != "song" {
			continue
		}
		pageURL := hit.Result.URL
		if pageURL == "" && hit.Result.Path != "" {
			pageURL = a.siteURL + hit.Result.Path
		}
		if pageURL == "" {
			continue
		}
		candidates = append(candidates, song.Candidate{
			URL:      pageURL,
			Title:    hit.Result.Title,
			Artist:   hit.Result.ArtistNames,
			Featured: len(candidates) == 0,
		})
	}
	return candidates
}

var brTag = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n")

func (a *Adapter) extract(body string) string {
	// Line breaks inside the lyrics containers are markup only.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(brTag.Replace(body)))
	if err != nil {
		return ""
	}
	for _, strategy := range extractionStrategies {
		var parts []string
		doc.Find(strategy.selector).Each(func(_ int, sel *goquery.Selection) {
			if text := strings.TrimSpace(sel.Text()); text != "" {
				parts = append(parts, text)
			}
		})
		if len(parts) > 0 {
			return strings.Join(parts, "\n\n")
		}
	}
	return ""
}
