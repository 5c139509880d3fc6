// Package song holds the domain model for lyrics lookups: queries,
// resolved documents, structural sections and search candidates. It is
// pure computation with no I/O.
package song

// SourceName identifies which external source produced a document.
type SourceName string

const (
	SourceLyricsAPI  SourceName = "lyrics-api"
	SourceAggregator SourceName = "aggregator-site"
	SourceWebSearch  SourceName = "web-search"
)

// Query is a lookup request for a song. Title is required, Artist is
// optional.
type Query struct {
	Title  string
	Artist string
}

// Document is the raw result of a successful source lookup, before
// cleaning and section detection.
type Document struct {
	RawLyrics     string
	SourceURL     string
	SourceName    SourceName
	MatchedTitle  string
	MatchedArtist string
}

// SectionType labels a structural block of a song.
type SectionType string

const (
	SectionVerse  SectionType = "verse"
	SectionChorus SectionType = "chorus"
	SectionBridge SectionType = "bridge"
	SectionOther  SectionType = "other"
)

// Section is one labeled block of lyrics. Confidence is a fixed
// heuristic constant, a relative ranking signal rather than a
// calibrated probability.
type Section struct {
	Type       SectionType `json:"type"`
	Confidence float64     `json:"confidence"`
	Text       string      `json:"text"`
}

// Candidate is a single hit from a source's search results, before the
// candidate page has been visited.
type Candidate struct {
	URL      string
	Title    string
	Artist   string
	Featured bool
}
