package lexicon

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"tangutlex/internal/core/errors"
)

var (
	characterFields = []string{"character", "char", "glyph"}
	phoneticFields  = []string{"phonetic", "phonetics", "pronunciation"}
	glossFields     = []string{"gloss", "meaning", "meanings"}
	keywordFields   = []string{"keyword", "keywords"}
	referenceFields = []string{"referenceindex", "reference_index", "reference", "lfw", "li_fanwen", "id"}
)

// LoadFile reads and indexes the dataset at path. The format comes from the
// file extension.
func LoadFile(path string, opts Options) (*Collection, Summary, error) {
	return LoadFileAs(path, DetectFormat(path), opts)
}

// LoadFileAs is LoadFile with an explicit format.
func LoadFileAs(path string, format Format, opts Options) (*Collection, Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.CodeInternal
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		return nil, Summary{}, errors.AddContext(errors.Wrap(err, code, "read dataset"), errors.CtxPath, path)
	}

	c, summary, err := Load(bytes.NewReader(data), format, opts)
	if err != nil {
		return nil, Summary{}, errors.AddContext(err, errors.CtxPath, path)
	}
	return c, summary, nil
}

// Load decodes a record list from r and builds a Collection from it.
//
// Records without a character are skipped and counted. Records without a
// phonetic transcription or gloss are kept and counted. Only a source that
// cannot be decoded into a list of records fails the load.
func Load(r io.Reader, format Format, opts Options) (*Collection, Summary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Summary{}, errors.Wrap(err, errors.CodeInternal, "read dataset")
	}

	records, err := decodeRecords(data, format)
	if err != nil {
		return nil, Summary{}, err
	}

	entries, summary := buildEntries(records)
	return NewCollection(entries, opts), summary, nil
}

func buildEntries(records []record) ([]Entry, Summary) {
	summary := Summary{Records: len(records)}
	warned := make(map[string]bool)
	entries := make([]Entry, 0, len(records))

	for i, rec := range records {
		entry, ok := entryFromRecord(rec)
		if !ok {
			summary.Skipped++
			summary.SkippedRecords = append(summary.SkippedRecords, i)
			continue
		}

		if !entry.HasPhonetic() {
			summary.MissingPhonetics++
			if !warned[entry.Character] {
				warned[entry.Character] = true
				summary.MissingPhoneticChars = append(summary.MissingPhoneticChars, entry.Character)
			}
		}
		if len(entry.Gloss) == 0 {
			summary.MissingGloss++
		}
		entries = append(entries, entry)
	}

	summary.Total = len(entries)
	return entries, summary
}

func entryFromRecord(rec record) (Entry, bool) {
	if rec == nil {
		return Entry{}, false
	}
	character := normalizeGlyphs(rec.text(characterFields...))
	if character == "" {
		return Entry{}, false
	}

	return Entry{
		Character: character,
		Phonetic:  rec.text(phoneticFields...),
		Gloss:     glossFrom(rec),
		Reference: rec.text(referenceFields...),
	}, true
}

// glossFrom merges meaning and keyword fields. Placeholder values ("?") carry
// no meaning and are dropped.
func glossFrom(rec record) []string {
	var gloss []string
	seen := make(map[string]bool)
	for _, g := range append(rec.texts(glossFields...), rec.texts(keywordFields...)...) {
		if g == "" || g == "?" || seen[g] {
			continue
		}
		seen[g] = true
		gloss = append(gloss, g)
	}
	return gloss
}

// String renders the summary the way startup diagnostics report it.
func (s Summary) String() string {
	msg := fmt.Sprintf("Loaded %d entries.", s.Total)
	if s.MissingPhonetics > 0 {
		msg += fmt.Sprintf(" %d entries had missing phonetics.", s.MissingPhonetics)
	} else {
		msg += " No missing phonetics warnings."
	}
	if s.Skipped > 0 {
		msg += fmt.Sprintf(" %d malformed records skipped.", s.Skipped)
	}
	return msg
}

// SkippedErrors describes every skipped record as a MALFORMED_RECORD error
// carrying the record position and the missing field.
func (s Summary) SkippedErrors() []error {
	if len(s.SkippedRecords) == 0 {
		return nil
	}
	out := make([]error, 0, len(s.SkippedRecords))
	for _, pos := range s.SkippedRecords {
		err := errors.New(errors.CodeMalformedRecord, "record has no character")
		err = errors.AddContext(err, errors.CtxRecord, pos)
		out = append(out, errors.AddContext(err, errors.CtxField, "character"))
	}
	return out
}
