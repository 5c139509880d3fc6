// Package songtexte scrapes lyrics from songtexte.com, the aggregator
// site source.
package songtexte

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/refrainlabs/refrain/src/features/lookup"
	"github.com/refrainlabs/refrain/src/infra/fetch"
	"github.com/refrainlabs/refrain/src/song"
)

const DefaultBaseURL = "https://www.songtexte.com"

// adScript matches the ad-injection script fragments the site embeds
// inside its lyrics container.
var adScript = regexp.MustCompile(`ADNPM\.[^\n]+`)

// extractionStrategies are the page regions tried in order; the first
// one yielding non-empty text wins.
var extractionStrategies = []struct {
	name     string
	selector string
}{
	{"lyrics-id", "#lyrics"},
	{"lyrics-class", ".lyrics"},
	{"songtext", ".songtext"},
}

// Adapter implements lookup.Source against songtexte.com.
type Adapter struct {
	enabled bool
	baseURL string
	fetcher *fetch.Fetcher
}

// New creates the adapter. baseURL may be overridden for tests.
func New(enabled bool, baseURL string, fetcher *fetch.Fetcher) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Adapter{enabled: enabled, baseURL: strings.TrimRight(baseURL, "/"), fetcher: fetcher}
}

func (a *Adapter) Name() song.SourceName { return song.SourceAggregator }
func (a *Adapter) IsEnabled() bool       { return a.enabled }

// Lookup searches the site, picks the best candidate and extracts its
// lyrics text.
func (a *Adapter) Lookup(ctx context.Context, title, artist string) (doc *song.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("songtexte: recovered: %v: %w", r, lookup.ErrEmptyExtraction)
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
		SourceName:    song.SourceAggregator,
		MatchedTitle:  best.Title,
		MatchedArtist: best.Artist,
	}, nil
}

func (a *Adapter) searchURL(query string) string {
	return a.baseURL + "/suche?c=all&q=" + url.QueryEscape(query)
}

// parseCandidates extracts {href, title, artist} triples from the
// search results table. The first row is taken as the site's featured
// hit.
func (a *Adapter) parseCandidates(body string) []song.Candidate {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var candidates []song.Candidate
	doc.Find(".songResultTable > div > div").Each(func(i int, row *goquery.Selection) {
		link := row.Find(`.song a[href*="/songtext/"]`).First()
		href, ok := link.Attr("href")
		candidateTitle := strings.TrimSpace(link.Text())
		candidateArtist := strings.TrimSpace(row.Find(".artist span").Last().Text())
		if !ok || href == "" || candidateTitle == "" {
			return
		}
		candidates = append(candidates, song.Candidate{
			URL:      a.absoluteURL(href),
			Title:    candidateTitle,
			Artist:   candidateArtist,
			Featured: len(candidates) == 0,
		})
	})
	return candidates
}

func (a *Adapter) absoluteURL(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return a.baseURL + href
}

func (a *Adapter) extract(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	for _, strategy := range extractionStrategies {
		text := doc.Find(strategy.selector).First().Text()
		text = strings.TrimSpace(adScript.ReplaceAllString(text, ""))
		if text != "" {
			return text
		}
	}
	return ""
}
