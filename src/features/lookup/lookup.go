// Package lookup resolves a (title, artist) query into structured
// lyrics by trying external sources in priority order, caching the
// assembled response.
package lookup

import (
	"context"
	"errors"

	"github.com/refrainlabs/refrain/src/song"
)

// Typed source failures. A source returning one of these is simply
// skipped; the pipeline moves on to the next source.
var (
	// ErrNoCandidates means the source's search yielded no hits at all.
	ErrNoCandidates = errors.New("no candidates in search results")
	// ErrNoMatch means the source had hits but none matched the title.
	ErrNoMatch = errors.New("no candidate matched the query")
	// ErrEmptyExtraction means the candidate page was reached but no
	// extraction strategy produced lyrics text.
	ErrEmptyExtraction = errors.New("no lyrics text extracted")
)

// Source is one external lyrics source.
type Source interface {
	// Lookup returns a document for the query or a typed failure.
	Lookup(ctx context.Context, title, artist string) (*song.Document, error)

	// Name identifies the source in responses and logs.
	Name() song.SourceName

	// IsEnabled reports whether the source should be consulted.
	IsEnabled() bool
}

// Response is the externally visible lookup result. Success implies
// Lyrics is non-empty and Sections partitions it; failure implies both
// are absent and Error is populated.
type Response struct {
	Success   bool            `json:"success"`
	Title     string          `json:"title"`
	Artist    string          `json:"artist"`
	Lyrics    string          `json:"lyrics,omitempty"`
	Sections  []song.Section  `json:"sections,omitempty"`
	Source    song.SourceName `json:"source,omitempty"`
	SourceURL string          `json:"sourceUrl,omitempty"`
	Cache     bool            `json:"cache"`
	Error     string          `json:"error,omitempty"`
}
