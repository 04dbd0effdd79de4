// Package dictionary resolves a German search term against the local
// lexicon, then the definition service, then the translation service.
package dictionary

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
	"github.com/heartmarshall/lexikon-backend/internal/provider"
)

const (
	tracerName = "lexikon/service/dictionary"

	// DefaultCallTimeout bounds a single external probe when no timeout is configured.
	DefaultCallTimeout = 5 * time.Second
)

type lexicon interface {
	Lookup(normalized string) []domain.LexiconEntry
	Headwords() []string
}

type dictionaryProvider interface {
	FetchEntry(ctx context.Context, word string) (*provider.DefinitionResult, error)
}

type translationProvider interface {
	Translate(ctx context.Context, text string, pair provider.LangPair) (*provider.TranslationResult, error)
}

// Config tunes the external probes.
type Config struct {
	CallTimeout time.Duration
	Pair        provider.LangPair
}

// Service implements the resolution pipeline. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	log           *slog.Logger
	lexicon       lexicon
	dictProvider  dictionaryProvider
	transProvider translationProvider
	callTimeout   time.Duration
	pair          provider.LangPair
}

// NewService creates a new dictionary service.
func NewService(
	logger *slog.Logger,
	lex lexicon,
	dictProvider dictionaryProvider,
	transProvider translationProvider,
	cfg Config,
) *Service {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	if cfg.Pair.Source == "" || cfg.Pair.Target == "" {
		cfg.Pair = provider.LangPair{Source: "de", Target: "en"}
	}
	return &Service{
		log:           logger.With("service", "dictionary"),
		lexicon:       lex,
		dictProvider:  dictProvider,
		transProvider: transProvider,
		callTimeout:   cfg.CallTimeout,
		pair:          cfg.Pair,
	}
}

// Suggestions returns the curated headwords in lexicon order.
func (s *Service) Suggestions() []string {
	return s.lexicon.Headwords()
}
