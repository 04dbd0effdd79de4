package mymemory

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
	providerName   = "mymemory"
	tracerName     = "lexikon/provider/mymemory"
	defaultTimeout = 5 * time.Second
)

// Provider translates text through the MyMemory translation API.
// MyMemory has no notion of "not found": every failure is reported as
// domain.ErrServiceUnavailable.
type Provider struct {
	baseURL    string
	email      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from MyMemoryConfig.
func NewProvider(cfg config.MyMemoryConfig, logger *slog.Logger) *Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		email:      cfg.Email,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", providerName),
	}
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	return NewProvider(config.MyMemoryConfig{BaseURL: baseURL, Timeout: defaultTimeout}, logger)
}

// Translate translates text in the given direction.
func (p *Provider) Translate(ctx context.Context, text string, pair provider.LangPair) (result *provider.TranslationResult, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "mymemory.Translate")
	defer span.End()
	span.SetAttributes(attribute.String("langpair", pair.String()))

	start := time.Now()
	defer func() {
		metrics.ObserveProviderCall(providerName, err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, metrics.CallStatus(err))
		}
	}()

	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", pair.String())
	if p.email != "" {
		q.Set("de", p.email)
	}
	reqURL := p.baseURL + "/get?" + q.Encode()

	p.log.DebugContext(ctx, "mymemory request", slog.String("text", text), slog.String("langpair", pair.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("mymemory: create request: %w: %w", domain.ErrServiceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.WarnContext(ctx, "mymemory request failed", slog.String("text", text), slog.String("error", err.Error()))
		return nil, fmt.Errorf("mymemory: request failed: %w: %w", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("mymemory: unexpected status %d: %w", resp.StatusCode, domain.ErrServiceUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mymemory: read body: %w: %w", domain.ErrServiceUnavailable, err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("mymemory: decode json: %w: %w", domain.ErrServiceUnavailable, err)
	}

	// Quota and validation failures come back as HTTP 200 with an error
	// status embedded in the body.
	if st := parsed.status(); st != 0 && (st < 200 || st > 299) {
		return nil, fmt.Errorf("mymemory: response status %d (%s): %w", st, parsed.ResponseDetails, domain.ErrServiceUnavailable)
	}

	translated := parsed.ResponseData.TranslatedText
	if translated == nil || strings.TrimSpace(*translated) == "" {
		return nil, fmt.Errorf("mymemory: missing translatedText: %w", domain.ErrServiceUnavailable)
	}

	p.log.DebugContext(ctx, "mymemory response",
		slog.String("text", text),
		slog.Int("status", resp.StatusCode),
	)

	return &provider.TranslationResult{
		Text:  *translated,
		Match: parsed.ResponseData.Match,
	}, nil
}
