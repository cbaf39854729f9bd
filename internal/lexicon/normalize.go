package lexicon

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// foldText case-folds s after NFC composition. A Caser keeps internal state,
// so a fresh one is taken per call.
func foldText(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// normalizePhrase folds s and drops everything that is not a letter, digit,
// combining mark, underscore or whitespace. Runs of whitespace collapse to a
// single space.
func normalizePhrase(s string) string {
	folded := foldText(s)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r), r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// keywordTags derives the tags for a gloss list: each normalized phrase and
// each word inside it, first occurrence wins.
func keywordTags(gloss []string) []string {
	seen := make(map[string]bool)
	var tags []string
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, g := range gloss {
		phrase := normalizePhrase(g)
		add(phrase)
		for _, word := range strings.Fields(phrase) {
			add(word)
		}
	}
	return tags
}

// queryTerms splits an English query into normalized whitespace-separated terms.
func queryTerms(query string) []string {
	return strings.Fields(normalizePhrase(query))
}

func normalizeGlyphs(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// graphemes splits s into user-perceived characters.
func graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func clusterCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
