package lexicon

import (
	"sort"
	"strings"
)

// Direction selects which side of the vocabulary a query is written in.
type Direction int

const (
	ScriptToEnglish Direction = iota + 1
	EnglishToScript
)

func (d Direction) String() string {
	switch d {
	case ScriptToEnglish:
		return "script_to_english"
	case EnglishToScript:
		return "english_to_script"
	default:
		return "unknown"
	}
}

// Match is one entry found for an English term.
type Match struct {
	Term      string
	Character string
	// Phonetic is the transcription or the collection's placeholder.
	Phonetic  string
	Reference string
	// Source is the gloss string that triggered the match.
	Source   string
	Position int
}

// TermResult groups the matches for one English term.
type TermResult struct {
	Term    string
	Matches []Match
	// Truncated counts matches dropped by the per-term cap.
	Truncated int
}

// Found reports whether the term matched anything.
func (r TermResult) Found() bool {
	return len(r.Matches) > 0
}

// CharResult is the lookup outcome for one position of a script query.
type CharResult struct {
	Segment string
	Entries []Entry
}

// Known reports whether the segment is in the vocabulary.
func (r CharResult) Known() bool {
	return len(r.Entries) > 0
}

// Phrase is the combined rendering of a whole query.
type Phrase struct {
	Characters string
	Phonetics  string
	Meanings   []string
}

// LookupByMeaning matches every whitespace-separated term of query against
// the keyword tags and raw gloss text. Terms are handled independently and
// come back in query order; a term without matches yields an empty result.
func (c *Collection) LookupByMeaning(query string) []TermResult {
	terms := queryTerms(query)
	results := make([]TermResult, 0, len(terms))
	for _, term := range terms {
		results = append(results, c.lookupTerm(term))
	}
	return results
}

func (c *Collection) lookupTerm(term string) TermResult {
	result := TermResult{Term: term}

	hits := make(map[int]bool)
	for tag, positions := range c.byKeyword {
		if !strings.Contains(tag, term) {
			continue
		}
		for _, pos := range positions {
			hits[pos] = true
		}
	}
	for pos, glosses := range c.folded {
		if hits[pos] {
			continue
		}
		for _, g := range glosses {
			if strings.Contains(g, term) {
				hits[pos] = true
				break
			}
		}
	}

	positions := make([]int, 0, len(hits))
	for pos := range hits {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	limit := c.opts.MaxMatchesPerTerm
	if limit > 0 && len(positions) > limit {
		result.Truncated = len(positions) - limit
		positions = positions[:limit]
	}

	result.Matches = make([]Match, 0, len(positions))
	for _, pos := range positions {
		e := c.entries[pos]
		result.Matches = append(result.Matches, Match{
			Term:      term,
			Character: e.Character,
			Phonetic:  e.PhoneticOr(c.opts.MissingPhonetic),
			Reference: e.Reference,
			Source:    c.matchSource(pos, term),
			Position:  pos,
		})
	}
	return result
}

// matchSource picks the gloss string responsible for a hit: the first gloss
// whose folded text contains the term, else the first whose normalized form
// does.
func (c *Collection) matchSource(pos int, term string) string {
	gloss := c.entries[pos].Gloss
	for i, g := range c.folded[pos] {
		if strings.Contains(g, term) {
			return gloss[i]
		}
	}
	for _, g := range gloss {
		if strings.Contains(normalizePhrase(g), term) {
			return g
		}
	}
	if len(gloss) > 0 {
		return gloss[0]
	}
	return ""
}

// LookupByCharacter resolves each character of query. Runs separated by
// whitespace are scanned left to right, preferring the longest known
// character key at each position so multi-glyph entries are found. Unknown
// segments are kept in place with no entries.
func (c *Collection) LookupByCharacter(query string) []CharResult {
	var results []CharResult
	for _, run := range strings.Fields(normalizeGlyphs(query)) {
		clusters := graphemes(run)
		for i := 0; i < len(clusters); {
			n := c.longestKnown(clusters[i:])
			if n == 0 {
				results = append(results, CharResult{Segment: clusters[i]})
				i++
				continue
			}
			segment := strings.Join(clusters[i:i+n], "")
			results = append(results, CharResult{
				Segment: segment,
				Entries: c.collect(c.byCharacter[segment]),
			})
			i += n
		}
	}
	return results
}

func (c *Collection) longestKnown(clusters []string) int {
	n := c.maxClusters
	if n > len(clusters) {
		n = len(clusters)
	}
	for ; n > 0; n-- {
		if _, ok := c.byCharacter[strings.Join(clusters[:n], "")]; ok {
			return n
		}
	}
	return 0
}

// Combine joins script lookup results into one phrase. The first entry of
// each known segment (load order) represents it; unknown segments keep their
// glyphs and contribute UnknownPhonetic to the pronunciation.
func (c *Collection) Combine(results []CharResult) Phrase {
	var chars strings.Builder
	phonetics := make([]string, 0, len(results))
	meanings := make(map[string]bool)

	for _, r := range results {
		chars.WriteString(r.Segment)
		if !r.Known() {
			phonetics = append(phonetics, UnknownPhonetic)
			continue
		}
		phonetics = append(phonetics, r.Entries[0].PhoneticOr(c.opts.MissingPhonetic))
		for _, e := range r.Entries {
			for _, g := range e.Gloss {
				meanings[g] = true
			}
		}
	}

	return Phrase{
		Characters: chars.String(),
		Phonetics:  strings.Join(phonetics, " "),
		Meanings:   sortedKeys(meanings),
	}
}

// ComposeMeaning builds a script phrase from English lookup results using the
// first match of every term. Terms without matches contribute UnknownGlyph
// and UnknownWordPhonetic.
func (c *Collection) ComposeMeaning(results []TermResult) Phrase {
	var chars strings.Builder
	phonetics := make([]string, 0, len(results))
	meanings := make([]string, 0, len(results))

	for _, r := range results {
		if !r.Found() {
			chars.WriteString(UnknownGlyph)
			phonetics = append(phonetics, UnknownWordPhonetic)
			continue
		}
		first := r.Matches[0]
		chars.WriteString(first.Character)
		phonetics = append(phonetics, first.Phonetic)
		meanings = append(meanings, first.Source)
	}

	return Phrase{
		Characters: chars.String(),
		Phonetics:  strings.Join(phonetics, " "),
		Meanings:   meanings,
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
