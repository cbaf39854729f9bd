package lexicon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func characters(matches []Match) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Character)
	}
	return out
}

func TestLookupByMeaning_ReportsTriggeringGloss(t *testing.T) {
	c, _ := loadFixture(t, "words.json")

	results := c.LookupByMeaning("sky")
	require.Len(t, results, 1)
	require.True(t, results[0].Found())

	first := results[0].Matches[0]
	assert.Equal(t, "sky", first.Term)
	assert.Equal(t, "𗳄", first.Character)
	assert.Equal(t, "kjɨ̲r2", first.Phonetic)
	assert.Equal(t, "sky, heaven", first.Source)
	assert.Equal(t, "5129", first.Reference)

	assert.Equal(t, []string{"𗳄", "𘟇"}, characters(results[0].Matches))
	assert.Equal(t, "Sky-blue", results[0].Matches[1].Source)
	assert.Equal(t, DefaultMissingPhonetic, results[0].Matches[1].Phonetic)
}

func TestLookupByMeaning_CaseInsensitiveSubstring(t *testing.T) {
	c, _ := loadFixture(t, "words.json")

	results := c.LookupByMeaning("HEAVEN")
	require.Len(t, results, 1)
	assert.Equal(t, "heaven", results[0].Term)
	assert.Equal(t, []string{"𗳄", "𗳄"}, characters(results[0].Matches))
	assert.Equal(t, "sky, heaven", results[0].Matches[0].Source)
	assert.Equal(t, "heavenly", results[0].Matches[1].Source)
	assert.Equal(t, []int{0, 3}, []int{results[0].Matches[0].Position, results[0].Matches[1].Position})
}

func TestLookupByMeaning_TermsAreIndependent(t *testing.T) {
	c, _ := loadFixture(t, "words.json")

	results := c.LookupByMeaning("sky river")
	require.Len(t, results, 2)

	assert.Equal(t, "sky", results[0].Term)
	assert.Equal(t, []string{"𗳄", "𘟇"}, characters(results[0].Matches))
	for _, m := range results[0].Matches {
		assert.Equal(t, "sky", m.Term)
	}

	assert.Equal(t, "river", results[1].Term)
	assert.Equal(t, []string{"𗊝"}, characters(results[1].Matches))
	for _, m := range results[1].Matches {
		assert.Equal(t, "river", m.Term)
	}
}

func TestLookupByMeaning_NoMatchIsNotAnError(t *testing.T) {
	c, _ := loadFixture(t, "words.json")

	results := c.LookupByMeaning("dragon, river!")
	require.Len(t, results, 2)
	assert.Equal(t, "dragon", results[0].Term)
	assert.False(t, results[0].Found())
	assert.Empty(t, results[0].Matches)
	assert.True(t, results[1].Found())

	assert.Empty(t, c.LookupByMeaning("  ?! "))
}

func TestLookupByMeaning_PunctuationInsensitiveTags(t *testing.T) {
	c := NewCollection([]Entry{
		{Character: "𗂧", Phonetic: "mji1", Gloss: []string{"don't, not"}},
	}, Options{})

	results := c.LookupByMeaning("dont")
	require.Len(t, results, 1)
	require.Len(t, results[0].Matches, 1)
	assert.Equal(t, "don't, not", results[0].Matches[0].Source)
}

func TestLookupByMeaning_MatchCap(t *testing.T) {
	entries := []Entry{
		{Character: "𗀀", Gloss: []string{"water"}},
		{Character: "𗀁", Gloss: []string{"waterfall"}},
		{Character: "𗀂", Gloss: []string{"salt water"}},
	}
	c := NewCollection(entries, Options{MaxMatchesPerTerm: 2, MissingPhonetic: "-"})

	results := c.LookupByMeaning("water")
	require.Len(t, results, 1)
	assert.Equal(t, []string{"𗀀", "𗀁"}, characters(results[0].Matches))
	assert.Equal(t, 1, results[0].Truncated)
	assert.Equal(t, "-", results[0].Matches[0].Phonetic)
}

func TestLookupByCharacter_ExactEntry(t *testing.T) {
	c, _, err := Load(strings.NewReader(`[{"character": "𗳄", "phonetic": "kjɨ̲r2", "gloss": "sky"}]`), FormatJSON, Options{})
	require.NoError(t, err)

	results := c.LookupByCharacter("𗳄")
	require.Len(t, results, 1)
	require.True(t, results[0].Known())
	require.Len(t, results[0].Entries, 1)
	assert.Equal(t, "kjɨ̲r2", results[0].Entries[0].Phonetic)
	assert.Equal(t, []string{"sky"}, results[0].Entries[0].Gloss)
}

func TestLookupByCharacter_KeepsEveryEntryForACharacter(t *testing.T) {
	c, _ := loadFixture(t, "words.json")

	results := c.LookupByCharacter("𗳄")
	require.Len(t, results, 1)
	require.Len(t, results[0].Entries, 2)
	assert.Equal(t, "5129", results[0].Entries[0].Reference)
	assert.Equal(t, "5130", results[0].Entries[1].Reference)
}

func TestLookupByCharacter_IsDeterministic(t *testing.T) {
	c, _ := loadFixture(t, "words.json")

	first := c.LookupByCharacter("𗳄𗊝𘞗")
	second := c.LookupByCharacter("𗳄𗊝𘞗")
	assert.Equal(t, first, second)
}

func TestLookupByCharacter_UnknownDoesNotAbort(t *testing.T) {
	c, _ := loadFixture(t, "words.json")

	results := c.LookupByCharacter("𗳄X 𗊝")
	require.Len(t, results, 3)
	assert.True(t, results[0].Known())
	assert.False(t, results[1].Known())
	assert.Equal(t, "X", results[1].Segment)
	assert.True(t, results[2].Known())
	assert.Equal(t, "𗊝", results[2].Segment)
}

func TestLookupByCharacter_PrefersLongestKey(t *testing.T) {
	c := NewCollection([]Entry{
		{Character: "𗳄", Phonetic: "kjɨ̲r2", Gloss: []string{"sky"}},
		{Character: "𗊝", Phonetic: "dźja̲1", Gloss: []string{"river"}},
		{Character: "𗳄𗊝", Phonetic: "kjɨ̲r2 dźja̲1", Gloss: []string{"milky way"}},
	}, Options{})

	results := c.LookupByCharacter("𗳄𗊝𗳄")
	require.Len(t, results, 2)
	assert.Equal(t, "𗳄𗊝", results[0].Segment)
	assert.Equal(t, []string{"milky way"}, results[0].Entries[0].Gloss)
	assert.Equal(t, "𗳄", results[1].Segment)
}

func TestCombine(t *testing.T) {
	c, _ := loadFixture(t, "words.json")

	phrase := c.Combine(c.LookupByCharacter("𗳄𗊝"))
	assert.Equal(t, "𗳄𗊝", phrase.Characters)
	assert.Equal(t, "kjɨ̲r2 dźja̲1", phrase.Phonetics)
	assert.Equal(t, []string{"heavenly", "river", "sky", "sky, heaven"}, phrase.Meanings)

	withUnknown := c.Combine(c.LookupByCharacter("𗳄X𘞗"))
	assert.Equal(t, "𗳄X𘞗", withUnknown.Characters)
	assert.Equal(t, "kjɨ̲r2 <?> "+DefaultMissingPhonetic, withUnknown.Phonetics)
}

func TestComposeMeaning(t *testing.T) {
	c, _ := loadFixture(t, "words.json")

	phrase := c.ComposeMeaning(c.LookupByMeaning("sky dragon river"))
	assert.Equal(t, "𗳄<?>𗊝", phrase.Characters)
	assert.Equal(t, "kjɨ̲r2 <?ph?> dźja̲1", phrase.Phonetics)
	assert.Equal(t, []string{"sky, heaven", "river"}, phrase.Meanings)
}

func TestNewCollection_DoesNotAliasInput(t *testing.T) {
	entries := []Entry{{Character: "𗳄", Gloss: []string{"sky"}}}
	c := NewCollection(entries, Options{})

	entries[0].Gloss[0] = "mutated"
	got := c.ByCharacter("𗳄")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"sky"}, got[0].Gloss)
}
