package dictionary

// ResolveInput is a single lookup request.
type ResolveInput struct {
	Term string
	// AllowExternal enables the definition and translation service fallbacks
	// when the local lexicon has no match.
	AllowExternal bool
}
