package provider

// DefinitionResult is the first entry of a definition-service response,
// reduced to its first meaning. Missing fields are left empty.
type DefinitionResult struct {
	Word         string
	Phonetic     string
	Phonetics    []PhoneticResult
	PartOfSpeech string
	Definitions  []DefinitionSense
	Origin       string
}

// PhoneticResult is one pronunciation variant published by the definition service.
type PhoneticResult struct {
	Text  string
	Audio string
}

// DefinitionSense is a single definition of the first meaning.
type DefinitionSense struct {
	Definition string
	Example    string
	Synonyms   []string
	Antonyms   []string
}

// TranslationResult is the output of a translation provider.
// Match is the provider's confidence in [0, 1] when it reports one.
type TranslationResult struct {
	Text  string
	Match *float64
}

// LangPair is a translation direction, e.g. de→en.
type LangPair struct {
	Source string
	Target string
}

// String renders the pair the way translation endpoints expect it ("de|en").
func (p LangPair) String() string {
	return p.Source + "|" + p.Target
}
