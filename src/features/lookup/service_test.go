package lookup

import (
	"context"
	"testing"
	"time"

	"github.com/refrainlabs/refrain/src/infra/cache"
	"github.com/refrainlabs/refrain/src/song"
)

// mockSource is a scripted source that counts its invocations.
type mockSource struct {
	name    song.SourceName
	enabled bool
	doc     *song.Document
	err     error
	calls   int
}

func (m *mockSource) Lookup(ctx context.Context, title, artist string) (*song.Document, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func (m *mockSource) Name() song.SourceName { return m.name }
func (m *mockSource) IsEnabled() bool       { return m.enabled }

func successfulSource(name song.SourceName, lyrics string) *mockSource {
	return &mockSource{
		name:    name,
		enabled: true,
		doc: &song.Document{
			RawLyrics:  lyrics,
			SourceURL:  "https://example.com/song",
			SourceName: name,
		},
	}
}

const fakeLyrics = "made up verse line\n\nmade up chorus line\n\nanother verse line\n\nmade up chorus line"

func TestResolveMissingTitle(t *testing.T) {
	src := successfulSource(song.SourceLyricsAPI, fakeLyrics)
	service := NewService([]Source{src}, cache.New[Response](time.Hour), nil)

	resp := service.Resolve(context.Background(), song.Query{Title: "   ", Artist: "Queen"})
	if resp.Success {
		t.Fatal("expected failure for missing title")
	}
	if resp.Error != "missing title" {
		t.Errorf("error = %q", resp.Error)
	}
	if src.calls != 0 {
		t.Errorf("no source should be invoked, got %d calls", src.calls)
	}
}

func TestResolveCacheRoundtrip(t *testing.T) {
	src := successfulSource(song.SourceAggregator, fakeLyrics)
	service := NewService([]Source{src}, cache.New[Response](time.Hour), nil)

	first := service.Resolve(context.Background(), song.Query{Title: "Imagine", Artist: "John Lennon"})
	if !first.Success {
		t.Fatalf("first lookup failed: %s", first.Error)
	}
	if first.Cache {
		t.Error("first lookup must not be served from cache")
	}

	second := service.Resolve(context.Background(), song.Query{Title: "Imagine", Artist: "John Lennon"})
	if !second.Cache {
		t.Error("second lookup must be served from cache")
	}
	if second.Lyrics != first.Lyrics {
		t.Error("cached lyrics differ from original")
	}
	if len(second.Sections) != len(first.Sections) {
		t.Error("cached sections differ from original")
	}
	if src.calls != 1 {
		t.Errorf("source calls = %d, want 1 (no extra outbound work)", src.calls)
	}
}

func TestResolveCacheKeyNormalized(t *testing.T) {
	src := successfulSource(song.SourceAggregator, fakeLyrics)
	service := NewService([]Source{src}, cache.New[Response](time.Hour), nil)

	service.Resolve(context.Background(), song.Query{Title: "Imagine", Artist: "John Lennon"})
	resp := service.Resolve(context.Background(), song.Query{Title: "  IMAGINE ", Artist: "john lennon"})
	if !resp.Cache {
		t.Error("normalized-equivalent query must hit the cache")
	}
}

func TestResolveFallbackOrdering(t *testing.T) {
	first := &mockSource{name: song.SourceLyricsAPI, enabled: true, err: ErrNoMatch}
	second := successfulSource(song.SourceAggregator, fakeLyrics)

	service := NewService([]Source{first, second}, cache.New[Response](time.Hour), nil)
	resp := service.Resolve(context.Background(), song.Query{Title: "Imagine"})

	if first.calls != 1 {
		t.Errorf("first source calls = %d, want 1", first.calls)
	}
	if second.calls != 1 {
		t.Errorf("second source calls = %d, want 1", second.calls)
	}
	if !resp.Success {
		t.Fatalf("expected success from second source, got %s", resp.Error)
	}
	if resp.Source != song.SourceAggregator {
		t.Errorf("source = %s, want %s", resp.Source, song.SourceAggregator)
	}
}

func TestResolveAllSourcesFail(t *testing.T) {
	sources := []Source{
		&mockSource{name: song.SourceLyricsAPI, enabled: true, err: ErrNoCandidates},
		&mockSource{name: song.SourceAggregator, enabled: true, err: ErrEmptyExtraction},
		&mockSource{name: song.SourceWebSearch, enabled: true, err: ErrNoMatch},
	}
	service := NewService(sources, cache.New[Response](time.Hour), nil)
	resp := service.Resolve(context.Background(), song.Query{Title: "Imagine"})

	if resp.Success {
		t.Fatal("expected failure when every source fails")
	}
	if resp.Error != "no source produced a result" {
		t.Errorf("error = %q, source-specific detail must not leak", resp.Error)
	}
	if resp.Lyrics != "" || len(resp.Sections) != 0 {
		t.Error("failed response must carry no lyrics or sections")
	}
}

func TestResolveSkipsDisabledSource(t *testing.T) {
	disabled := successfulSource(song.SourceLyricsAPI, fakeLyrics)
	disabled.enabled = false
	fallback := successfulSource(song.SourceAggregator, fakeLyrics)

	service := NewService([]Source{disabled, fallback}, cache.New[Response](time.Hour), nil)
	resp := service.Resolve(context.Background(), song.Query{Title: "Imagine"})

	if disabled.calls != 0 {
		t.Error("disabled source must not be consulted")
	}
	if resp.Source != song.SourceAggregator {
		t.Errorf("source = %s, want fallback", resp.Source)
	}
}

func TestResolveSkipsSourceWithEmptyLyrics(t *testing.T) {
	empty := successfulSource(song.SourceLyricsAPI, "  \n\n  ")
	fallback := successfulSource(song.SourceAggregator, fakeLyrics)

	service := NewService([]Source{empty, fallback}, cache.New[Response](time.Hour), nil)
	resp := service.Resolve(context.Background(), song.Query{Title: "Imagine"})

	if !resp.Success {
		t.Fatalf("expected success from fallback: %s", resp.Error)
	}
	if resp.Source != song.SourceAggregator {
		t.Errorf("source = %s, want fallback", resp.Source)
	}
}

func TestResolveDetectsSections(t *testing.T) {
	src := successfulSource(song.SourceAggregator, fakeLyrics)
	service := NewService([]Source{src}, cache.New[Response](time.Hour), nil)

	resp := service.Resolve(context.Background(), song.Query{Title: "Imagine"})
	if !resp.Success {
		t.Fatalf("lookup failed: %s", resp.Error)
	}
	if len(resp.Sections) != 4 {
		t.Fatalf("sections = %d, want 4", len(resp.Sections))
	}
	if resp.Sections[1].Type != song.SectionChorus {
		t.Errorf("repeated block not detected as chorus: %s", resp.Sections[1].Type)
	}
}
