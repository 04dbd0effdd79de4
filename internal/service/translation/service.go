// Package translation translates free text between the supported languages
// through the translation service.
package translation

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
	"github.com/heartmarshall/lexikon-backend/internal/provider"
)

// DefaultConfidence is reported when the translation service gives no
// positive match score.
const DefaultConfidence = 0.85

// MaxTextLength caps the text accepted for a single translation.
const MaxTextLength = 500

type translationProvider interface {
	Translate(ctx context.Context, text string, pair provider.LangPair) (*provider.TranslationResult, error)
}

// Input is a translation request.
type Input struct {
	Text   string
	Source string
	Target string
}

// Result is a finished translation.
type Result struct {
	OriginalText   string
	TranslatedText string
	SourceLanguage string
	TargetLanguage string
	Confidence     float64
}

// Service validates translation requests and forwards them to the provider.
type Service struct {
	log         *slog.Logger
	provider    translationProvider
	languages   []string
	callTimeout time.Duration
}

// NewService creates a translation service limited to the given language codes.
func NewService(logger *slog.Logger, p translationProvider, languages []string, callTimeout time.Duration) *Service {
	if callTimeout <= 0 {
		callTimeout = 5 * time.Second
	}
	return &Service{
		log:         logger.With("service", "translation"),
		provider:    p,
		languages:   languages,
		callTimeout: callTimeout,
	}
}

// Languages returns the supported language codes.
func (s *Service) Languages() []string {
	return slices.Clone(s.languages)
}

// Translate validates the input and translates the text. Provider failures
// are returned wrapping domain.ErrServiceUnavailable since there is no
// fallback.
func (s *Service) Translate(ctx context.Context, in Input) (*Result, error) {
	text := strings.TrimSpace(in.Text)
	source := strings.ToLower(strings.TrimSpace(in.Source))
	target := strings.ToLower(strings.TrimSpace(in.Target))

	var errs []domain.FieldError
	if text == "" {
		errs = append(errs, domain.FieldError{Field: "q", Message: "required"})
	} else if len([]rune(text)) > MaxTextLength {
		errs = append(errs, domain.FieldError{Field: "q", Message: fmt.Sprintf("must be at most %d characters", MaxTextLength)})
	}
	if !slices.Contains(s.languages, source) {
		errs = append(errs, domain.FieldError{Field: "source", Message: fmt.Sprintf("unsupported language %q", source)})
	}
	if !slices.Contains(s.languages, target) {
		errs = append(errs, domain.FieldError{Field: "target", Message: fmt.Sprintf("unsupported language %q", target)})
	}
	if source != "" && source == target {
		errs = append(errs, domain.FieldError{Field: "target", Message: "must differ from source"})
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	res, err := s.provider.Translate(callCtx, text, provider.LangPair{Source: source, Target: target})
	if err != nil {
		s.log.WarnContext(ctx, "translation failed",
			slog.String("source", source),
			slog.String("target", target),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("translate: %w", err)
	}

	confidence := DefaultConfidence
	if res.Match != nil && *res.Match > 0 {
		confidence = *res.Match
	}

	return &Result{
		OriginalText:   text,
		TranslatedText: res.Text,
		SourceLanguage: LanguageName(source),
		TargetLanguage: LanguageName(target),
		Confidence:     confidence,
	}, nil
}
