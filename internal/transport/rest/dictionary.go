package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
	"github.com/heartmarshall/lexikon-backend/internal/service/dictionary"
)

const (
	msgTermRequired = "Search term is required"
	msgNotFound     = "No matching terms found"
)

// dictionaryService defines the minimal interface needed by DictionaryHandler.
type dictionaryService interface {
	Resolve(ctx context.Context, in dictionary.ResolveInput) ([]domain.DictionaryEntry, error)
	Suggestions() []string
}

// DictionaryHandler serves the dictionary lookup endpoints.
type DictionaryHandler struct {
	svc      dictionaryService
	language string
	log      *slog.Logger
}

// NewDictionaryHandler creates a DictionaryHandler. language is the lexicon
// language code used for speech hints.
func NewDictionaryHandler(svc dictionaryService, language string, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{svc: svc, language: language, log: logger.With("handler", "dictionary")}
}

type lookupQuery struct {
	Q        string `validate:"required,max=100"`
	External string `validate:"omitempty,oneof=true false 1 0"`
}

type DefinitionResponse struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

type SpeechResponse struct {
	Text     string  `json:"text"`
	Locale   string  `json:"locale"`
	AudioURL *string `json:"audioUrl,omitempty"`
}

// EntryResponse is the JSON shape of a resolved dictionary entry.
type EntryResponse struct {
	Word          string               `json:"word"`
	Pronunciation string               `json:"pronunciation"`
	PartOfSpeech  string               `json:"partOfSpeech"`
	Definitions   []DefinitionResponse `json:"definitions"`
	Etymology     *string              `json:"etymology,omitempty"`
	Frequency     string               `json:"frequency"`
	Source        string               `json:"source"`
	Audio         *string              `json:"audio,omitempty"`
	Translation   *string              `json:"translation,omitempty"`
	Speech        SpeechResponse       `json:"speech"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Lookup handles GET /api/dictionary?q=&external=.
func (h *DictionaryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	query := lookupQuery{
		Q:        r.URL.Query().Get("q"),
		External: r.URL.Query().Get("external"),
	}
	if err := validateQuery(query); err != nil {
		h.handleError(w, r, err)
		return
	}
	external, _ := strconv.ParseBool(query.External)

	entries, err := h.svc.Resolve(r.Context(), dictionary.ResolveInput{
		Term:          query.Q,
		AllowExternal: external,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntryResponse(e, h.language))
	}
	writeJSON(w, http.StatusOK, out)
}

// Suggestions handles GET /api/dictionary/suggestions.
func (h *DictionaryHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: h.svc.Suggestions()})
}

// NewEntryResponse renders an entry with speech hints for language.
func NewEntryResponse(e domain.DictionaryEntry, language string) EntryResponse {
	defs := make([]DefinitionResponse, 0, len(e.Definitions))
	for _, d := range e.Definitions {
		defs = append(defs, DefinitionResponse{
			Definition: d.Definition,
			Example:    d.Example,
			Synonyms:   nonNil(d.Synonyms),
			Antonyms:   nonNil(d.Antonyms),
		})
	}

	speech := e.Speech(language)
	return EntryResponse{
		Word:          e.Word,
		Pronunciation: e.Pronunciation,
		PartOfSpeech:  e.PartOfSpeech,
		Definitions:   defs,
		Etymology:     e.Etymology,
		Frequency:     e.Frequency.String(),
		Source:        e.Source.String(),
		Audio:         e.AudioURL,
		Translation:   e.Translation,
		Speech: SpeechResponse{
			Text:     speech.Text,
			Locale:   speech.Locale,
			AudioURL: speech.AudioURL,
		},
	}
}

func (h *DictionaryHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		if isTermRequired(err) {
			writeError(w, http.StatusBadRequest, msgTermRequired)
			return
		}
		writeError(w, http.StatusBadRequest, errorMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful can be written.
		h.log.DebugContext(r.Context(), "lookup canceled", slog.String("error", err.Error()))
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isTermRequired(err error) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve.Errors {
		if fe.Field == "q" && fe.Message == "required" {
			return true
		}
	}
	return false
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
