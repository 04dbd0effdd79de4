package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
	"github.com/heartmarshall/lexikon-backend/internal/service/translation"
)

// translationService defines the minimal interface needed by TranslationHandler.
type translationService interface {
	Translate(ctx context.Context, in translation.Input) (*translation.Result, error)
	Languages() []string
}

// TranslationHandler serves the free-text translation endpoints.
type TranslationHandler struct {
	svc translationService
	log *slog.Logger
}

// NewTranslationHandler creates a TranslationHandler.
func NewTranslationHandler(svc translationService, logger *slog.Logger) *TranslationHandler {
	return &TranslationHandler{svc: svc, log: logger.With("handler", "translation")}
}

type translateQuery struct {
	Q      string `validate:"required,max=500"`
	Source string `validate:"omitempty,len=2,alpha"`
	Target string `validate:"omitempty,len=2,alpha"`
}

type TranslateResponse struct {
	OriginalText   string  `json:"originalText"`
	TranslatedText string  `json:"translatedText"`
	SourceLanguage string  `json:"sourceLanguage"`
	TargetLanguage string  `json:"targetLanguage"`
	Confidence     float64 `json:"confidence"`
}

type languageResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Translate handles GET /api/translate?q=&source=de&target=en.
func (h *TranslationHandler) Translate(w http.ResponseWriter, r *http.Request) {
	query := translateQuery{
		Q:      r.URL.Query().Get("q"),
		Source: r.URL.Query().Get("source"),
		Target: r.URL.Query().Get("target"),
	}
	if query.Source == "" {
		query.Source = "de"
	}
	if query.Target == "" {
		query.Target = "en"
	}
	if err := validateQuery(query); err != nil {
		h.handleError(w, r, err)
		return
	}

	res, err := h.svc.Translate(r.Context(), translation.Input{
		Text:   query.Q,
		Source: query.Source,
		Target: query.Target,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewTranslateResponse(res))
}

// NewTranslateResponse renders a translation result.
func NewTranslateResponse(res *translation.Result) TranslateResponse {
	return TranslateResponse{
		OriginalText:   res.OriginalText,
		TranslatedText: res.TranslatedText,
		SourceLanguage: res.SourceLanguage,
		TargetLanguage: res.TargetLanguage,
		Confidence:     res.Confidence,
	}
}

// Languages handles GET /api/translate/languages.
func (h *TranslationHandler) Languages(w http.ResponseWriter, r *http.Request) {
	codes := h.svc.Languages()
	out := make([]languageResponse, 0, len(codes))
	for _, c := range codes {
		out = append(out, languageResponse{Code: c, Name: translation.LanguageName(c)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TranslationHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, errorMessage(err))
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusBadGateway, "translation service unavailable")
	case errors.Is(err, context.Canceled):
		h.log.DebugContext(r.Context(), "translation canceled", slog.String("error", err.Error()))
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
