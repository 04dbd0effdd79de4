package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexikon-backend/internal/domain"
	"github.com/heartmarshall/lexikon-backend/internal/provider"
)

type mockTranslationProvider struct {
	TranslateFunc func(ctx context.Context, text string, pair provider.LangPair) (*provider.TranslationResult, error)
}

func (m *mockTranslationProvider) Translate(ctx context.Context, text string, pair provider.LangPair) (*provider.TranslationResult, error) {
	return m.TranslateFunc(ctx, text, pair)
}

var testLanguages = []string{"de", "en", "fr", "es", "it", "pt", "ru", "zh", "ja", "ar"}

func newTestService(p *mockTranslationProvider) *Service {
	return NewService(slog.Default(), p, testLanguages, time.Second)
}

func ptrFloat(f float64) *float64 { return &f }

func TestService_Translate_Success(t *testing.T) {
	t.Parallel()

	var gotText string
	var gotPair provider.LangPair
	p := &mockTranslationProvider{TranslateFunc: func(ctx context.Context, text string, pair provider.LangPair) (*provider.TranslationResult, error) {
		gotText, gotPair = text, pair
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return &provider.TranslationResult{Text: "Good morning", Match: ptrFloat(0.99)}, nil
	}}

	res, err := newTestService(p).Translate(context.Background(), Input{Text: "  Guten Morgen ", Source: "DE", Target: "en"})

	require.NoError(t, err)
	assert.Equal(t, "Guten Morgen", gotText)
	assert.Equal(t, provider.LangPair{Source: "de", Target: "en"}, gotPair)
	assert.Equal(t, &Result{
		OriginalText:   "Guten Morgen",
		TranslatedText: "Good morning",
		SourceLanguage: "Deutsch",
		TargetLanguage: "Englisch",
		Confidence:     0.99,
	}, res)
}

func TestService_Translate_DefaultConfidence(t *testing.T) {
	t.Parallel()

	for _, match := range []*float64{nil, ptrFloat(0)} {
		p := &mockTranslationProvider{TranslateFunc: func(context.Context, string, provider.LangPair) (*provider.TranslationResult, error) {
			return &provider.TranslationResult{Text: "Bonjour", Match: match}, nil
		}}

		res, err := newTestService(p).Translate(context.Background(), Input{Text: "Hallo", Source: "de", Target: "fr"})

		require.NoError(t, err)
		assert.Equal(t, DefaultConfidence, res.Confidence)
		assert.Equal(t, "Französisch", res.TargetLanguage)
	}
}

func TestService_Translate_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    Input
		field string
	}{
		{"empty text", Input{Text: " ", Source: "de", Target: "en"}, "q"},
		{"unsupported source", Input{Text: "x", Source: "xx", Target: "en"}, "source"},
		{"unsupported target", Input{Text: "x", Source: "de", Target: "nl"}, "target"},
		{"same language", Input{Text: "x", Source: "de", Target: "de"}, "target"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := &mockTranslationProvider{TranslateFunc: func(context.Context, string, provider.LangPair) (*provider.TranslationResult, error) {
				t.Error("provider must not be called")
				return nil, nil
			}}

			_, err := newTestService(p).Translate(context.Background(), tt.in)

			require.ErrorIs(t, err, domain.ErrValidation)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}
}

func TestService_Translate_TooLong(t *testing.T) {
	t.Parallel()

	long := make([]rune, MaxTextLength+1)
	for i := range long {
		long[i] = 'ä'
	}

	_, err := newTestService(&mockTranslationProvider{}).Translate(context.Background(), Input{Text: string(long), Source: "de", Target: "en"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Translate_ProviderError(t *testing.T) {
	t.Parallel()

	p := &mockTranslationProvider{TranslateFunc: func(context.Context, string, provider.LangPair) (*provider.TranslationResult, error) {
		return nil, fmt.Errorf("mymemory: %w", domain.ErrServiceUnavailable)
	}}

	res, err := newTestService(p).Translate(context.Background(), Input{Text: "Hallo", Source: "de", Target: "en"})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestLanguageName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Deutsch", LanguageName("de"))
	assert.Equal(t, "Japanisch", LanguageName("ja"))
	assert.Equal(t, "nl", LanguageName("nl"))
}

func TestService_Languages(t *testing.T) {
	t.Parallel()

	svc := newTestService(nil)
	langs := svc.Languages()
	langs[0] = "xx"

	assert.Equal(t, "de", svc.Languages()[0])
}
