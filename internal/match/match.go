// Package match scores how well a candidate name matches a typed query.
// All built-in providers share it so their raw scores live on a common
// scale before the ranker applies category weights.
package match

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Score bands. Exact beats prefix beats substring beats fuzzy, and the
// position of a substring hit nudges the score within its band.
const (
	scoreExact     = 1.0
	scorePrefix    = 0.9
	scoreSubstring = 0.7
	scoreWordStart = 0.8

	// fuzzyThreshold is the minimum normalized similarity for a fuzzy
	// hit to count at all.
	fuzzyThreshold = 0.55

	// fuzzyCeiling caps fuzzy hits below the substring band.
	fuzzyCeiling = 0.6
)

// Score returns a relevance in [0, 1] for candidate against query.
// Zero means no match. Matching is case-insensitive.
func Score(query, candidate string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	c := strings.ToLower(strings.TrimSpace(candidate))

	if q == "" || c == "" {
		return 0
	}
	if q == c {
		return scoreExact
	}
	if strings.HasPrefix(c, q) {
		return scorePrefix
	}
	if wordStart(c, q) {
		return scoreWordStart
	}
	if idx := strings.Index(c, q); idx >= 0 {
		// Earlier hits score higher within the substring band.
		penalty := float64(idx) / float64(len(c)) * 0.1
		return scoreSubstring - penalty
	}
	return fuzzyScore(q, c)
}

// wordStart reports whether the query starts any word of the candidate.
func wordStart(candidate, query string) bool {
	for _, sep := range []string{" ", "-", "_", "."} {
		for _, word := range strings.Split(candidate, sep) {
			if word != candidate && strings.HasPrefix(word, query) {
				return true
			}
		}
	}
	return false
}

// fuzzyScore maps edit distance to a similarity in [0, fuzzyCeiling].
// ComputeDistance counts runes, so the lengths must too.
func fuzzyScore(query, candidate string) float64 {
	longest := max(utf8.RuneCountInString(query), utf8.RuneCountInString(candidate))
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(query, candidate)
	similarity := 1 - float64(dist)/float64(longest)
	if similarity < fuzzyThreshold {
		return 0
	}
	return similarity * fuzzyCeiling
}
