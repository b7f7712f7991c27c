// Package suffix produces the extra index tokens that let the local search
// provider match substrings: every trailing substring of a term that is at
// least a minimum number of characters long.
package suffix

// DefaultMinLength is the shortest suffix emitted when indexing documents.
const DefaultMinLength = 2

// TermProcessor is the hook shape a search index calls for each raw term.
// ok=false means "not applicable": the caller falls back to its own default
// tokenization. ok=true with an empty slice means "index nothing".
type TermProcessor func(term string) (tokens []string, ok bool)

// Generate returns every suffix of term with at least minLength characters,
// longest first. A nil term yields ok=false, which is distinct from an empty
// result. Lengths are counted in runes.
func Generate(term *string, minLength int) ([]string, bool) {
	if term == nil {
		return nil, false
	}
	if minLength < 1 {
		minLength = 1
	}

	s := *term
	// byte offset of every rune start
	starts := make([]int, 0, len(s))
	for i := range s {
		starts = append(starts, i)
	}

	last := len(starts) - minLength
	if last < 0 {
		return []string{}, true
	}

	out := make([]string, 0, last+1)
	for i := 0; i <= last; i++ {
		out = append(out, s[starts[i]:])
	}
	return out, true
}

// ProcessTerm adapts Generate to the TermProcessor hook.
func ProcessTerm(minLength int) TermProcessor {
	return func(term string) ([]string, bool) {
		return Generate(&term, minLength)
	}
}
