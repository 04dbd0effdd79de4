// Package lexicon holds the curated local dictionary. A Lexicon is built once
// from an injected set of entries and is read-only afterwards.
package lexicon

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
)

// Lexicon is an immutable, ordered set of curated entries.
type Lexicon struct {
	entries []domain.LexiconEntry
	keys    []string
}

// New validates entries and freezes a copy of them. Headwords must be
// non-empty and unique after normalization. Each entry needs at least one
// definition and none of its definitions may be blank. An empty frequency
// defaults to common.
func New(entries []domain.LexiconEntry) (*Lexicon, error) {
	l := &Lexicon{
		entries: make([]domain.LexiconEntry, 0, len(entries)),
		keys:    make([]string, 0, len(entries)),
	}
	seen := make(map[string]struct{}, len(entries))

	var errs []domain.FieldError
	for i, e := range entries {
		field := fmt.Sprintf("entries[%d]", i)

		key := e.Key()
		if key == "" {
			errs = append(errs, domain.FieldError{Field: field + ".word", Message: "required"})
			continue
		}
		if _, dup := seen[key]; dup {
			errs = append(errs, domain.FieldError{Field: field + ".word", Message: fmt.Sprintf("duplicate headword %q", key)})
			continue
		}
		seen[key] = struct{}{}

		if len(e.Definitions) == 0 {
			errs = append(errs, domain.FieldError{Field: field + ".definitions", Message: "at least one definition required"})
			continue
		}
		if blank := blankDefinitions(field, e.Definitions); len(blank) > 0 {
			errs = append(errs, blank...)
			continue
		}
		if e.Frequency == "" {
			e.Frequency = domain.FrequencyCommon
		}
		if !e.Frequency.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".frequency", Message: fmt.Sprintf("invalid frequency %q", e.Frequency)})
			continue
		}
		if strings.TrimSpace(e.PartOfSpeech) == "" {
			e.PartOfSpeech = domain.UnknownPartOfSpeech
		}

		l.entries = append(l.entries, e.Clone())
		l.keys = append(l.keys, key)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("lexicon: %w", domain.NewValidationErrors(errs))
	}
	return l, nil
}

func blankDefinitions(field string, defs []domain.Definition) []domain.FieldError {
	var errs []domain.FieldError
	for j, d := range defs {
		if strings.TrimSpace(d.Definition) == "" {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("%s.definitions[%d].definition", field, j),
				Message: "required",
			})
		}
	}
	return errs
}

// Lookup returns copies of all entries whose normalized headword contains
// the already-normalized term, in insertion order. An empty term or no match
// yields an empty slice.
func (l *Lexicon) Lookup(normalized string) []domain.LexiconEntry {
	out := []domain.LexiconEntry{}
	if l == nil || normalized == "" {
		return out
	}
	for i, key := range l.keys {
		if strings.Contains(key, normalized) {
			out = append(out, l.entries[i].Clone())
		}
	}
	return out
}

// Headwords returns the headwords in insertion order.
func (l *Lexicon) Headwords() []string {
	if l == nil {
		return []string{}
	}
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Word
	}
	return out
}

// Entries returns copies of all entries in insertion order.
func (l *Lexicon) Entries() []domain.LexiconEntry {
	if l == nil {
		return []domain.LexiconEntry{}
	}
	out := make([]domain.LexiconEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}
