package lookup

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/refrainlabs/refrain/src/song"
)

// ResultCache stores assembled responses under normalized keys.
type ResultCache interface {
	Get(key string) (Response, bool)
	Set(key string, value Response)
}

// Observer receives pipeline events for instrumentation. All methods
// must be cheap and non-blocking.
type Observer interface {
	CacheHit()
	CacheMiss()
	SourceResult(name song.SourceName, ok bool)
	Resolved(success bool, elapsed time.Duration)
}

// Service orchestrates sources in a fixed priority order,
// short-circuiting on the first success.
type Service struct {
	sources  []Source
	cache    ResultCache
	observer Observer
}

// NewService creates the resolution pipeline. Sources are consulted in
// the order given. The observer may be nil.
func NewService(sources []Source, cache ResultCache, observer Observer) *Service {
	return &Service{sources: sources, cache: cache, observer: observer}
}

// Resolve runs one lookup: validate, check the cache, try each enabled
// source until one succeeds, detect sections and cache the result.
// Individual source failures are never surfaced as request errors; only
// exhausting every source yields a failed response.
func (s *Service) Resolve(ctx context.Context, query song.Query) Response {
	start := time.Now()
	title := strings.TrimSpace(query.Title)
	artist := strings.TrimSpace(query.Artist)

	if title == "" {
		return Response{Success: false, Artist: artist, Error: "missing title"}
	}

	key := song.CacheKey(title, artist)
	if resp, ok := s.cache.Get(key); ok {
		slog.Debug("cache hit", "title", title, "artist", artist)
		if s.observer != nil {
			s.observer.CacheHit()
		}
		resp.Cache = true
		return resp
	}
	if s.observer != nil {
		s.observer.CacheMiss()
	}

	for _, src := range s.sources {
		if !src.IsEnabled() {
			continue
		}

		slog.Debug("trying source", "source", src.Name(), "title", title, "artist", artist)
		doc, err := src.Lookup(ctx, title, artist)
		if err != nil {
			slog.Warn("source failed", "source", src.Name(), "title", title, "artist", artist, "error", err)
			if s.observer != nil {
				s.observer.SourceResult(src.Name(), false)
			}
			continue
		}

		lyrics := song.Clean(doc.RawLyrics)
		if lyrics == "" {
			slog.Warn("source returned empty lyrics", "source", src.Name(), "title", title)
			if s.observer != nil {
				s.observer.SourceResult(src.Name(), false)
			}
			continue
		}
		if s.observer != nil {
			s.observer.SourceResult(src.Name(), true)
		}

		resp := Response{
			Success:   true,
			Title:     title,
			Artist:    artist,
			Lyrics:    lyrics,
			Sections:  song.DetectSections(lyrics),
			Source:    doc.SourceName,
			SourceURL: doc.SourceURL,
			Cache:     false,
		}
		s.cache.Set(key, resp)

		slog.Info("lyrics resolved",
			"source", doc.SourceName,
			"title", title,
			"artist", artist,
			"matchedTitle", doc.MatchedTitle,
			"sections", len(resp.Sections),
			"lyricsLength", len(lyrics),
			"duration", time.Since(start).Truncate(time.Millisecond).String(),
		)
		if s.observer != nil {
			s.observer.Resolved(true, time.Since(start))
		}
		return resp
	}

	slog.Info("no source produced a result", "title", title, "artist", artist)
	if s.observer != nil {
		s.observer.Resolved(false, time.Since(start))
	}
	return Response{
		Success: false,
		Title:   title,
		Artist:  artist,
		Error:   "no source produced a result",
	}
}
