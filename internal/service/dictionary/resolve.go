package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
	"github.com/heartmarshall/lexikon-backend/internal/metrics"
)

// Resolution outcomes beyond the three entry sources.
const (
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeCanceled = "canceled"
)

// Resolve looks up a term. Local matches short-circuit and are all returned.
// Otherwise, when external lookups are allowed, the definition service and
// then the translation service are probed one after the other and the first
// usable answer becomes the single result.
//
// Errors: *domain.ValidationError for a blank term, domain.ErrNotFound when
// no source produced an entry, or the context error when the caller gave up.
// Provider failures never surface directly.
func (s *Service) Resolve(ctx context.Context, in ResolveInput) (_ []domain.DictionaryEntry, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "dictionary.Resolve")
	defer span.End()

	outcome := OutcomeNotFound
	defer func() {
		metrics.RecordResolution(outcome)
		span.SetAttributes(attribute.String("outcome", outcome))
		if err != nil && outcome != OutcomeNotFound {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
	}()

	term := domain.NormalizeText(in.Term)
	if term == "" {
		outcome = OutcomeInvalid
		return nil, domain.NewValidationError("q", "required")
	}
	// External entries display the caller's spelling; probes use the key.
	display := strings.Join(strings.Fields(in.Term), " ")
	span.SetAttributes(
		attribute.String("term", term),
		attribute.Bool("allow_external", in.AllowExternal),
	)

	// 1. Local lexicon.
	if matches := s.lexicon.Lookup(term); len(matches) > 0 {
		out := make([]domain.DictionaryEntry, 0, len(matches))
		for _, m := range matches {
			out = append(out, FromLocal(m))
		}
		outcome = domain.SourceLocal.String()
		return out, nil
	}

	if !in.AllowExternal {
		return nil, fmt.Errorf("resolve %q: %w", term, domain.ErrNotFound)
	}

	// 2. Definition service.
	if entry, ok := s.probeDefinitionService(ctx, term, display); ok {
		outcome = domain.SourceDefinitionService.String()
		return []domain.DictionaryEntry{entry}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		outcome = OutcomeCanceled
		return nil, fmt.Errorf("resolve %q: %w", term, ctxErr)
	}

	// 3. Translation service.
	if entry, ok := s.probeTranslationService(ctx, term, display); ok {
		outcome = domain.SourceTranslationService.String()
		return []domain.DictionaryEntry{entry}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		outcome = OutcomeCanceled
		return nil, fmt.Errorf("resolve %q: %w", term, ctxErr)
	}

	return nil, fmt.Errorf("resolve %q: %w", term, domain.ErrNotFound)
}

func (s *Service) probeDefinitionService(ctx context.Context, term, display string) (domain.DictionaryEntry, bool) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	res, err := s.dictProvider.FetchEntry(callCtx, term)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, domain.ErrNotFound) {
			level = slog.LevelDebug
		}
		s.log.Log(ctx, level, "definition service miss",
			slog.String("term", term),
			slog.String("error", err.Error()),
		)
		return domain.DictionaryEntry{}, false
	}
	if res == nil {
		return domain.DictionaryEntry{}, false
	}

	entry := FromDefinitionService(display, res)
	if len(entry.Definitions) == 0 {
		s.log.DebugContext(ctx, "definition service returned no definitions", slog.String("term", term))
		return domain.DictionaryEntry{}, false
	}
	return entry, true
}

func (s *Service) probeTranslationService(ctx context.Context, term, display string) (domain.DictionaryEntry, bool) {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	res, err := s.transProvider.Translate(callCtx, term, s.pair)
	if err != nil {
		s.log.WarnContext(ctx, "translation service failed",
			slog.String("term", term),
			slog.String("error", err.Error()),
		)
		return domain.DictionaryEntry{}, false
	}
	if res == nil || res.Text == "" {
		return domain.DictionaryEntry{}, false
	}

	return FromTranslationService(display, res.Text), true
}
