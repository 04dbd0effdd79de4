package translation

// languageNames holds the German display names of the languages the
// translation page offers.
var languageNames = map[string]string{
	"de": "Deutsch",
	"en": "Englisch",
	"fr": "Französisch",
	"es": "Spanisch",
	"it": "Italienisch",
	"pt": "Portugiesisch",
	"ru": "Russisch",
	"zh": "Chinesisch",
	"ja": "Japanisch",
	"ar": "Arabisch",
}

// LanguageName returns the German display name of a language code, or the
// code itself when it is unknown.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
