// Package render turns lookup results into the text listings shown to users.
package render

import (
	"fmt"
	"strings"

	"tangutlex/internal/lexicon"
)

const (
	UnknownWord      = "UNKNOWN WORD"
	UnknownCharacter = "UNKNOWN CHARACTER"
	NoMeaning        = "No meaning found"
)

// Style decorates parts of a listing. Nil funcs leave text unchanged.
type Style struct {
	Heading func(string) string
	Glyph   func(string) string
	Marker  func(string) string
	Muted   func(string) string
}

func apply(fn func(string) string, s string) string {
	if fn == nil {
		return s
	}
	return fn(s)
}

// EnglishToScript lists the matches of every term under its own heading,
// followed by the combined phrase.
func EnglishToScript(results []lexicon.TermResult, phrase lexicon.Phrase, style Style) string {
	var b strings.Builder

	b.WriteString(apply(style.Heading, "--- Word-by-Word Translation (English -> Tangut) ---"))
	b.WriteString("\n")
	if len(results) == 0 {
		b.WriteString(apply(style.Muted, "(no searchable words in query)"))
		b.WriteString("\n")
	}
	for _, r := range results {
		if !r.Found() {
			fmt.Fprintf(&b, "'%s': %s\n", r.Term, apply(style.Marker, UnknownWord))
			continue
		}
		fmt.Fprintf(&b, "'%s': %d match(es)\n", r.Term, len(r.Matches)+r.Truncated)
		for _, m := range r.Matches {
			fmt.Fprintf(&b, "  '%s' (%s) [from: '%s']%s\n",
				apply(style.Glyph, m.Character), m.Phonetic, m.Source, reference(m.Reference, style))
		}
		if r.Truncated > 0 {
			b.WriteString("  ")
			b.WriteString(apply(style.Muted, fmt.Sprintf("... %d more not shown", r.Truncated)))
			b.WriteString("\n")
		}
	}
	b.WriteString("---------------------------------------------------\n\n")

	b.WriteString(apply(style.Heading, "--- Combined Phrase Details ---"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Combined Tangut Phrase: %s\n", apply(style.Glyph, phrase.Characters))
	fmt.Fprintf(&b, "Combined Pronunciation: %s\n", phrase.Phonetics)
	b.WriteString("-------------------------------\n")

	return b.String()
}

// ScriptToEnglish lists every entry found for each character position,
// followed by the combined phrase.
func ScriptToEnglish(results []lexicon.CharResult, phrase lexicon.Phrase, missingPhonetic string, style Style) string {
	var b strings.Builder

	b.WriteString(apply(style.Heading, "--- Word-by-Word Translation (Tangut -> English) ---"))
	b.WriteString("\n")
	if len(results) == 0 {
		b.WriteString(apply(style.Muted, "(no characters in query)"))
		b.WriteString("\n")
	}
	for _, r := range results {
		if !r.Known() {
			fmt.Fprintf(&b, "'%s': %s\n", apply(style.Glyph, r.Segment), apply(style.Marker, UnknownCharacter))
			continue
		}
		for _, e := range r.Entries {
			meaning := NoMeaning
			if len(e.Gloss) > 0 {
				meaning = strings.Join(e.Gloss, ", ")
			}
			fmt.Fprintf(&b, "'%s' (%s): %s%s\n",
				apply(style.Glyph, e.Character), e.PhoneticOr(missingPhonetic), meaning, reference(e.Reference, style))
		}
	}
	b.WriteString("---------------------------------------------------\n\n")

	b.WriteString(apply(style.Heading, "--- Combined Phrase Details ---"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Combined Characters: %s\n", apply(style.Glyph, phrase.Characters))
	fmt.Fprintf(&b, "Combined Meanings: %s\n", strings.Join(phrase.Meanings, ", "))
	fmt.Fprintf(&b, "Combined Pronunciation: %s\n", phrase.Phonetics)
	b.WriteString("-------------------------------\n")

	return b.String()
}

func reference(ref string, style Style) string {
	if ref == "" {
		return ""
	}
	return " " + apply(style.Muted, "[LFW "+ref+"]")
}
