package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
)

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	l, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Hallo", "Haus", "lernen", "schön", "Freund", "arbeiten",
		"Zeit", "Leben", "Wasser", "Buch", "sprechen",
	}, l.Headwords())

	for _, e := range l.Entries() {
		assert.Equal(t, domain.FrequencyCommon, e.Frequency, e.Word)
		assert.NotEmpty(t, e.Definitions, e.Word)
	}

	got := l.Lookup("haus")
	require.Len(t, got, 1)
	assert.Equal(t, "/haʊs/", got[0].Pronunciation)
	assert.Equal(t, "Substantiv (n)", got[0].PartOfSpeech)
	assert.Equal(t, "Althochdeutsch 'hūs'", got[0].Etymology)
	assert.Equal(t, []string{"Wohnung", "Gebäude", "Heim", "Domizil"}, got[0].Definitions[0].Synonyms)
	assert.Equal(t, []string{}, got[0].Definitions[0].Antonyms)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	doc := `
entries:
  - word: Tisch
    part_of_speech: Substantiv (m)
    frequency: uncommon
    definitions:
      - definition: Möbelstück mit einer Platte
        example: Das Buch liegt auf dem Tisch.
`
	entries, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Tisch", e.Word)
	assert.Equal(t, domain.FrequencyUncommon, e.Frequency)
	assert.Equal(t, "Das Buch liegt auf dem Tisch.", e.Definitions[0].Example)
	assert.NotNil(t, e.Definitions[0].Synonyms)
	assert.NotNil(t, e.Definitions[0].Antonyms)
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()

	entries, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDecode_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("entries:\n  - word: Tisch\n    meaning: x\n"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	doc := "entries:\n  - word: Tisch\n    definitions:\n      - definition: Möbelstück\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	l, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, domain.FrequencyCommon, l.Lookup("tisch")[0].Frequency)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
