package song

import (
	"regexp"
	"strings"
)

// chorusThreshold is the pairwise similarity above which two blocks are
// considered repetitions of each other.
const chorusThreshold = 0.55

var blankLine = regexp.MustCompile(`\n\s*\n`)

// DetectSections splits cleaned lyrics on blank-line boundaries and
// labels each block as verse, chorus or bridge.
//
// The first block that repeats later in the song (similarity above the
// threshold with any later block) becomes the chorus anchor. Later
// blocks similar enough to the anchor are also chorus. A block that is
// second-to-last, not among the first two, and not already a chorus is
// marked bridge. Everything else is a verse. An empty input yields nil.
func DetectSections(rawLyrics string) []Section {
	blocks := splitBlocks(rawLyrics)
	if len(blocks) == 0 {
		return nil
	}

	normalized := make([]string, len(blocks))
	for i, b := range blocks {
		normalized[i] = strings.ToLower(b)
	}

	chorus := -1
	for i := 0; i < len(normalized) && chorus == -1; i++ {
		for j := i + 1; j < len(normalized); j++ {
			if Similarity(normalized[i], normalized[j]) > chorusThreshold {
				chorus = i
				break
			}
		}
	}

	sections := make([]Section, 0, len(blocks))
	for i, block := range blocks {
		typ, confidence := SectionVerse, 0.5

		if i == chorus {
			typ, confidence = SectionChorus, 0.9
		} else if chorus != -1 && i > chorus && Similarity(normalized[i], normalized[chorus]) > chorusThreshold {
			typ, confidence = SectionChorus, 0.85
		}

		if typ == SectionVerse && i > 1 && i == len(blocks)-2 {
			typ, confidence = SectionBridge, 0.6
		}

		sections = append(sections, Section{Type: typ, Confidence: confidence, Text: block})
	}
	return sections
}

// Similarity is a cheap position-aligned metric: the fraction of
// matching bytes over the length of the shorter string. It is
// order-sensitive on purpose; identical prefixes score high, shifted
// content scores low even when the words are the same. Empty strings
// have similarity 0 with anything.
func Similarity(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := min(len(a), len(b))
	matches := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	return float64(matches) / float64(n)
}

func splitBlocks(raw string) []string {
	var blocks []string
	for _, b := range blankLine.Split(raw, -1) {
		if b = strings.TrimSpace(b); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
