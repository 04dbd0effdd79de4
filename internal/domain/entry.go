package domain

import "slices"

// UnknownPartOfSpeech is used when a source provides no part of speech.
const UnknownPartOfSpeech = "Unbekannt"

// Definition is a single sense of a dictionary entry.
type Definition struct {
	Definition string
	Example    string
	Synonyms   []string
	Antonyms   []string
}

// DictionaryEntry is the unified lookup result, regardless of which source
// produced it. Entries are built per request and never cached.
type DictionaryEntry struct {
	Word          string
	Pronunciation string
	PartOfSpeech  string
	Definitions   []Definition
	Etymology     *string
	Frequency     Frequency
	Source        Source
	AudioURL      *string
	Translation   *string
}

// LexiconEntry is a curated headword of the local lexicon.
type LexiconEntry struct {
	Word          string
	Pronunciation string
	PartOfSpeech  string
	Definitions   []Definition
	Etymology     string
	Frequency     Frequency
}

// Key returns the normalized headword used for matching.
func (e LexiconEntry) Key() string {
	return NormalizeText(e.Word)
}

// Clone returns a deep copy so that callers cannot reach the lexicon's
// backing slices.
func (e LexiconEntry) Clone() LexiconEntry {
	out := e
	out.Definitions = cloneDefinitions(e.Definitions)
	return out
}

func cloneDefinitions(defs []Definition) []Definition {
	if defs == nil {
		return nil
	}
	out := make([]Definition, len(defs))
	for i, d := range defs {
		out[i] = Definition{
			Definition: d.Definition,
			Example:    d.Example,
			Synonyms:   slices.Clone(d.Synonyms),
			Antonyms:   slices.Clone(d.Antonyms),
		}
	}
	return out
}
