package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/heartmarshall/lexikon-backend/internal/config"
	"github.com/heartmarshall/lexikon-backend/internal/domain"
	"github.com/heartmarshall/lexikon-backend/internal/metrics"
	"github.com/heartmarshall/lexikon-backend/internal/provider"
)

const (
	providerName   = "freedict"
	tracerName     = "lexikon/provider/freedict"
	defaultTimeout = 5 * time.Second
)

// Provider fetches German dictionary data from the FreeDictionary API.
// Each lookup is exactly one GET; failures are not retried.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from FreeDictConfig.
func NewProvider(cfg config.FreeDictConfig, logger *slog.Logger) *Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", providerName),
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	return NewProvider(config.FreeDictConfig{BaseURL: baseURL, Timeout: defaultTimeout}, logger)
}

// FetchEntry fetches the first dictionary entry for the given word, reduced
// to its first meaning. An empty entry list is returned as an empty result.
//
// Errors wrap domain.ErrNotFound for HTTP 404 and domain.ErrServiceUnavailable
// for any other failure.
func (p *Provider) FetchEntry(ctx context.Context, word string) (result *provider.DefinitionResult, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "freedict.FetchEntry")
	defer span.End()
	span.SetAttributes(attribute.String("word", word))

	start := time.Now()
	defer func() {
		metrics.ObserveProviderCall(providerName, err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, metrics.CallStatus(err))
		}
	}()

	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: create request: %w: %w", domain.ErrServiceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.WarnContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freedict: request failed: %w: %w", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("freedict: %q: %w", word, domain.ErrNotFound)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("freedict: unexpected status %d: %w", resp.StatusCode, domain.ErrServiceUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("freedict: read body: %w: %w", domain.ErrServiceUnavailable, err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: decode json: %w: %w", domain.ErrServiceUnavailable, err)
	}

	result = mapAPIResponse(entries)

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("entries", len(entries)),
		slog.Int("definitions", len(result.Definitions)),
	)

	return result, nil
}

// mapAPIResponse reduces the API entries to the first entry and its first
// meaning. Zero entries or zero meanings yield a result without definitions.
func mapAPIResponse(entries []apiEntry) *provider.DefinitionResult {
	result := &provider.DefinitionResult{
		Phonetics:   []provider.PhoneticResult{},
		Definitions: []provider.DefinitionSense{},
	}

	if len(entries) == 0 {
		return result
	}

	entry := entries[0]
	result.Word = entry.Word
	result.Phonetic = entry.Phonetic
	result.Origin = entry.Origin

	for _, ph := range entry.Phonetics {
		if ph.Text == "" && ph.Audio == "" {
			continue
		}
		result.Phonetics = append(result.Phonetics, provider.PhoneticResult{
			Text:  ph.Text,
			Audio: ph.Audio,
		})
	}

	if len(entry.Meanings) == 0 {
		return result
	}

	meaning := entry.Meanings[0]
	result.PartOfSpeech = meaning.PartOfSpeech
	for _, def := range meaning.Definitions {
		result.Definitions = append(result.Definitions, provider.DefinitionSense{
			Definition: def.Definition,
			Example:    def.Example,
			Synonyms:   nonNil(def.Synonyms),
			Antonyms:   nonNil(def.Antonyms),
		})
	}

	return result
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
