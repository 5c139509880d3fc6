package song

import (
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
)

// Normalize lowercases, strips diacritics and punctuation, and
// collapses whitespace. It is the identity used for cache keys and
// fuzzy title/artist matching.
func Normalize(s string) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FuzzyMatch reports whether either normalized string contains the
// other. An empty string never matches anything, so an absent artist
// cannot produce false positives.
func FuzzyMatch(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// CacheKey derives the cache identity of a (title, artist) pair.
func CacheKey(title, artist string) string {
	return Normalize(title) + "|" + Normalize(artist)
}

// QueryVariants builds the search query strings tried against a source,
// in order: "title artist", the order-swapped form, and the normalized
// form. Duplicates are removed while preserving order.
func QueryVariants(title, artist string) []string {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)

	var variants []string
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		for _, existing := range variants {
			if existing == v {
				return
			}
		}
		variants = append(variants, v)
	}

	add(title + " " + artist)
	if artist != "" {
		add(artist + " " + title)
	}
	add(Normalize(title + " " + artist))
	return variants
}
