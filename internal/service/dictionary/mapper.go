package dictionary

import (
	"slices"
	"strings"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
	"github.com/heartmarshall/lexikon-backend/internal/provider"
)

// FromLocal converts a lexicon entry. The authored frequency is kept.
func FromLocal(e domain.LexiconEntry) domain.DictionaryEntry {
	e = e.Clone()

	var etymology *string
	if e.Etymology != "" {
		etymology = ptr(e.Etymology)
	}

	pos := e.PartOfSpeech
	if strings.TrimSpace(pos) == "" {
		pos = domain.UnknownPartOfSpeech
	}

	return domain.DictionaryEntry{
		Word:          e.Word,
		Pronunciation: e.Pronunciation,
		PartOfSpeech:  pos,
		Definitions:   nonNilDefinitions(e.Definitions),
		Etymology:     etymology,
		Frequency:     e.Frequency,
		Source:        domain.SourceLocal,
	}
}

// FromDefinitionService converts a definition-service result for term. The
// service's headword wins; term is used when the response carries none. Blank
// definitions are dropped, so the returned entry may have none; callers treat
// that as a miss.
func FromDefinitionService(term string, r *provider.DefinitionResult) domain.DictionaryEntry {
	pronunciation, audio := pickPhonetic(r)

	word := strings.TrimSpace(r.Word)
	if word == "" {
		word = term
	}

	pos := strings.TrimSpace(r.PartOfSpeech)
	if pos == "" {
		pos = domain.UnknownPartOfSpeech
	}

	defs := make([]domain.Definition, 0, len(r.Definitions))
	for _, d := range r.Definitions {
		if strings.TrimSpace(d.Definition) == "" {
			continue
		}
		defs = append(defs, domain.Definition{
			Definition: d.Definition,
			Example:    d.Example,
			Synonyms:   cloneStrings(d.Synonyms),
			Antonyms:   cloneStrings(d.Antonyms),
		})
	}

	entry := domain.DictionaryEntry{
		Word:          word,
		Pronunciation: pronunciation,
		PartOfSpeech:  pos,
		Definitions:   defs,
		Frequency:     domain.FrequencyRare,
		Source:        domain.SourceDefinitionService,
	}
	if r.Origin != "" {
		entry.Etymology = ptr(r.Origin)
	}
	if audio != "" {
		entry.AudioURL = ptr(audio)
	}
	return entry
}

// pickPhonetic prefers a phonetic with both text and audio, then any with
// text, then the top-level phonetic. Audio comes from the chosen phonetic or
// else the first one that has audio.
func pickPhonetic(r *provider.DefinitionResult) (text, audio string) {
	chosen := -1
	for i, p := range r.Phonetics {
		if p.Text != "" && p.Audio != "" {
			chosen = i
			break
		}
	}
	if chosen < 0 {
		for i, p := range r.Phonetics {
			if p.Text != "" {
				chosen = i
				break
			}
		}
	}

	if chosen >= 0 {
		text = r.Phonetics[chosen].Text
		audio = r.Phonetics[chosen].Audio
	} else {
		text = r.Phonetic
	}

	if audio == "" {
		for _, p := range r.Phonetics {
			if p.Audio != "" {
				audio = p.Audio
				break
			}
		}
	}
	return text, audio
}

// FromTranslationService builds the synthetic two-definition entry for a
// term that only the translation service knew. term is shown as typed by the
// caller, not as the lowercased lookup key.
func FromTranslationService(term, translated string) domain.DictionaryEntry {
	return domain.DictionaryEntry{
		Word:          term,
		Pronunciation: "",
		PartOfSpeech:  domain.UnknownPartOfSpeech,
		Definitions: []domain.Definition{
			{
				Definition: "Deutsche Bedeutung: " + term,
				Example:    `Beispiel: "` + term + `" wird in deutschen Sätzen verwendet.`,
				Synonyms:   []string{},
				Antonyms:   []string{},
			},
			{
				Definition: "Englische Übersetzung: " + translated,
				Example:    `English: "` + translated + `"`,
				Synonyms:   []string{},
				Antonyms:   []string{},
			},
		},
		Frequency:   domain.FrequencyRare,
		Source:      domain.SourceTranslationService,
		Translation: ptr(translated),
	}
}

func nonNilDefinitions(defs []domain.Definition) []domain.Definition {
	if defs == nil {
		return []domain.Definition{}
	}
	for i := range defs {
		if defs[i].Synonyms == nil {
			defs[i].Synonyms = []string{}
		}
		if defs[i].Antonyms == nil {
			defs[i].Antonyms = []string{}
		}
	}
	return defs
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}

func ptr[T any](v T) *T { return &v }
