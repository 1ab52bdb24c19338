package graph

import (
	"regexp"
	"slices"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// CandidateSet is the set of lexical tokens used to look up stored nodes
// by name.
type CandidateSet map[string]struct{}

// MatchCandidates splits text into maximal runs of word characters. Case
// is preserved, duplicates are merged and no stopwords are removed.
//
// Example:
//
//	MatchCandidates("John Doe works at Acme Corp.").Names()
//	// [Acme Corp Doe John at works]
func MatchCandidates(text string) CandidateSet {
	set := CandidateSet{}
	for _, tok := range wordPattern.FindAllString(text, -1) {
		set[tok] = struct{}{}
	}
	return set
}

// Len returns the number of distinct tokens.
func (c CandidateSet) Len() int {
	return len(c)
}

// Contains reports whether tok is a member of the set.
func (c CandidateSet) Contains(tok string) bool {
	_, ok := c[tok]
	return ok
}

// Names returns the tokens in sorted order.
func (c CandidateSet) Names() []string {
	names := make([]string, 0, len(c))
	for tok := range c {
		names = append(names, tok)
	}
	slices.Sort(names)
	return names
}
