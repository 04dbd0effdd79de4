package domain

// SpeechRequest carries what a client needs to play a pronunciation:
// a recorded clip when one exists, otherwise text for speech synthesis.
type SpeechRequest struct {
	Text     string
	Locale   string
	AudioURL *string
}

// SpeechLocale maps a language code to the locale used for speech synthesis.
// Unknown codes are returned unchanged.
func SpeechLocale(lang string) string {
	switch lang {
	case "de":
		return "de-DE"
	case "en":
		return "en-US"
	default:
		return lang
	}
}

// Speech builds the speech request for the entry's headword in the given language.
func (e DictionaryEntry) Speech(lang string) SpeechRequest {
	return SpeechRequest{
		Text:     e.Word,
		Locale:   SpeechLocale(lang),
		AudioURL: e.AudioURL,
	}
}
