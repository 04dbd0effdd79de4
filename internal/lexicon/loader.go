package lexicon

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
)

//go:embed data/de.yaml
var embeddedDE []byte

type yamlFile struct {
	Entries []yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	Word          string           `yaml:"word"`
	Pronunciation string           `yaml:"pronunciation"`
	PartOfSpeech  string           `yaml:"part_of_speech"`
	Etymology     string           `yaml:"etymology"`
	Frequency     string           `yaml:"frequency"`
	Definitions   []yamlDefinition `yaml:"definitions"`
}

type yamlDefinition struct {
	Definition string   `yaml:"definition"`
	Example    string   `yaml:"example"`
	Synonyms   []string `yaml:"synonyms"`
	Antonyms   []string `yaml:"antonyms"`
}

// Decode parses a YAML lexicon document into entries. Unknown fields are
// rejected so that typos in curated data surface at load time.
func Decode(r io.Reader) ([]domain.LexiconEntry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f yamlFile
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return []domain.LexiconEntry{}, nil
		}
		return nil, fmt.Errorf("decode lexicon yaml: %w", err)
	}

	out := make([]domain.LexiconEntry, 0, len(f.Entries))
	for _, e := range f.Entries {
		out = append(out, e.toDomain())
	}
	return out, nil
}

func (e yamlEntry) toDomain() domain.LexiconEntry {
	defs := make([]domain.Definition, 0, len(e.Definitions))
	for _, d := range e.Definitions {
		defs = append(defs, domain.Definition{
			Definition: d.Definition,
			Example:    d.Example,
			Synonyms:   nonNil(d.Synonyms),
			Antonyms:   nonNil(d.Antonyms),
		})
	}
	return domain.LexiconEntry{
		Word:          e.Word,
		Pronunciation: e.Pronunciation,
		PartOfSpeech:  e.PartOfSpeech,
		Definitions:   defs,
		Etymology:     e.Etymology,
		Frequency:     domain.Frequency(e.Frequency),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// EmbeddedEntries returns the curated German entries shipped with the binary.
func EmbeddedEntries() ([]domain.LexiconEntry, error) {
	return Decode(bytes.NewReader(embeddedDE))
}

// LoadEmbedded builds a Lexicon from the curated German entries.
func LoadEmbedded() (*Lexicon, error) {
	entries, err := EmbeddedEntries()
	if err != nil {
		return nil, err
	}
	return New(entries)
}

// ReadFile decodes a YAML lexicon file.
func ReadFile(path string) ([]domain.LexiconEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// LoadFile builds a Lexicon from a YAML file.
func LoadFile(path string) (*Lexicon, error) {
	entries, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(entries)
}
