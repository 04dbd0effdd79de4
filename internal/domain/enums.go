package domain

// Source is the provenance tag of a DictionaryEntry.
type Source string

const (
	SourceLocal              Source = "local"
	SourceDefinitionService  Source = "definition-service"
	SourceTranslationService Source = "translation-service"
)

func (s Source) String() string { return string(s) }

func (s Source) IsValid() bool {
	switch s {
	case SourceLocal, SourceDefinitionService, SourceTranslationService:
		return true
	}
	return false
}

// Frequency is how common a word is, as authored or as assumed for
// external data.
type Frequency string

const (
	FrequencyCommon   Frequency = "common"
	FrequencyUncommon Frequency = "uncommon"
	FrequencyRare     Frequency = "rare"
)

func (f Frequency) String() string { return string(f) }

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyCommon, FrequencyUncommon, FrequencyRare:
		return true
	}
	return false
}
