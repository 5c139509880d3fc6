package song

// PickCandidate selects the best candidate for a (title, artist) query
// using a fixed tie-break order: a candidate fuzzy-matching both title
// and artist wins outright; otherwise a featured candidate matching the
// title; otherwise the first candidate matching the title; otherwise
// the first candidate in source order as a last-resort guess. The
// choice is deterministic for a given candidate list.
func PickCandidate(candidates []Candidate, title, artist string) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	for _, c := range candidates {
		if FuzzyMatch(c.Title, title) && FuzzyMatch(c.Artist, artist) {
			return c, true
		}
	}
	for _, c := range candidates {
		if c.Featured && FuzzyMatch(c.Title, title) {
			return c, true
		}
	}
	for _, c := range candidates {
		if FuzzyMatch(c.Title, title) {
			return c, true
		}
	}
	return candidates[0], true
}
