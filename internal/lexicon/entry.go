// Package lexicon holds the Tangut vocabulary: the loaded entries, the
// by-character and by-keyword indices built from them, and the lookups that
// run against those indices.
//
// A Collection is immutable once built. Lookups never allocate shared state,
// so a single Collection can be read from many goroutines without locking.
package lexicon

import "slices"

const (
	// DefaultMissingPhonetic stands in for entries whose source record had no
	// phonetic transcription.
	DefaultMissingPhonetic = "<?MISSING_PHONETICS?>"
	// UnknownPhonetic marks an unknown character in a combined pronunciation.
	UnknownPhonetic = "<?>"
	// UnknownGlyph marks an unknown English term in a combined script phrase.
	UnknownGlyph = "<?>"
	// UnknownWordPhonetic marks an unknown English term in a combined
	// pronunciation.
	UnknownWordPhonetic = "<?ph?>"
)

// Entry is one dataset record.
type Entry struct {
	Character string
	Phonetic  string
	Gloss     []string
	Keywords  []string
	Reference string
	// Position is the entry's index in load order.
	Position int
}

// HasPhonetic reports whether the source record carried a transcription.
func (e Entry) HasPhonetic() bool {
	return e.Phonetic != ""
}

// PhoneticOr returns the transcription or fallback when there is none.
func (e Entry) PhoneticOr(fallback string) string {
	if e.Phonetic == "" {
		return fallback
	}
	return e.Phonetic
}

// Summary describes what happened while loading a dataset.
type Summary struct {
	// Records is the raw number of records in the source.
	Records int
	// Total is the number of entries that made it into the collection.
	Total   int
	Skipped int
	// SkippedRecords lists the zero-based source positions of skipped records.
	SkippedRecords       []int
	MissingPhonetics     int
	MissingPhoneticChars []string
	MissingGloss         int
}

// Options tune how a collection presents its entries.
type Options struct {
	// MissingPhonetic replaces absent transcriptions in lookup results.
	MissingPhonetic string
	// MaxMatchesPerTerm caps English lookups per term. Zero means no cap.
	MaxMatchesPerTerm int
}

func (o Options) withDefaults() Options {
	if o.MissingPhonetic == "" {
		o.MissingPhonetic = DefaultMissingPhonetic
	}
	if o.MaxMatchesPerTerm < 0 {
		o.MaxMatchesPerTerm = 0
	}
	return o
}

// Collection is the loaded vocabulary plus its two derived indices.
type Collection struct {
	entries []Entry
	// folded holds the case-folded gloss strings of entries[i].
	folded      [][]string
	byCharacter map[string][]int
	byKeyword   map[string][]int
	// maxClusters is the longest character key measured in grapheme clusters.
	maxClusters int
	opts        Options
}

// NewCollection indexes entries in the given order. Positions are reassigned
// to match that order.
func NewCollection(entries []Entry, opts Options) *Collection {
	c := &Collection{
		entries:     make([]Entry, 0, len(entries)),
		folded:      make([][]string, 0, len(entries)),
		byCharacter: make(map[string][]int),
		byKeyword:   make(map[string][]int),
		maxClusters: 1,
		opts:        opts.withDefaults(),
	}

	for _, e := range entries {
		pos := len(c.entries)
		e.Position = pos
		e.Gloss = slices.Clone(e.Gloss)
		if len(e.Keywords) == 0 {
			e.Keywords = keywordTags(e.Gloss)
		} else {
			e.Keywords = slices.Clone(e.Keywords)
		}
		c.entries = append(c.entries, e)

		folded := make([]string, len(e.Gloss))
		for i, g := range e.Gloss {
			folded[i] = foldText(g)
		}
		c.folded = append(c.folded, folded)

		c.byCharacter[e.Character] = append(c.byCharacter[e.Character], pos)
		if n := clusterCount(e.Character); n > c.maxClusters {
			c.maxClusters = n
		}
		for _, tag := range e.Keywords {
			c.byKeyword[tag] = append(c.byKeyword[tag], pos)
		}
	}

	return c
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Entries returns a copy of all entries in load order.
func (c *Collection) Entries() []Entry {
	return slices.Clone(c.entries)
}

// Entry returns the entry at pos.
func (c *Collection) Entry(pos int) (Entry, bool) {
	if pos < 0 || pos >= len(c.entries) {
		return Entry{}, false
	}
	return c.entries[pos], true
}

// ByCharacter returns every entry whose character is exactly ch, in load order.
func (c *Collection) ByCharacter(ch string) []Entry {
	return c.collect(c.byCharacter[normalizeGlyphs(ch)])
}

// ByKeyword returns every entry tagged with exactly keyword, in load order.
func (c *Collection) ByKeyword(keyword string) []Entry {
	return c.collect(c.byKeyword[normalizePhrase(keyword)])
}

// CharacterCount returns the number of distinct character keys.
func (c *Collection) CharacterCount() int {
	return len(c.byCharacter)
}

// KeywordCount returns the number of distinct keyword tags.
func (c *Collection) KeywordCount() int {
	return len(c.byKeyword)
}

// MissingPhonetic returns the placeholder used for absent transcriptions.
func (c *Collection) MissingPhonetic() string {
	return c.opts.MissingPhonetic
}

func (c *Collection) collect(positions []int) []Entry {
	if len(positions) == 0 {
		return nil
	}
	out := make([]Entry, 0, len(positions))
	for _, pos := range positions {
		out = append(out, c.entries[pos])
	}
	return out
}
